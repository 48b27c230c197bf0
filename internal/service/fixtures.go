package service

import (
	"shopd/internal/domain"
	"shopd/internal/repository"
)

const (
	demoCompanyName = "Chilsmart"
	demoPassword    = "Chil2026*"
)

// demoFixture is the primary demo tenant: one company, one platform admin
// and one fully stocked store. Prices are in cents.
func demoFixture(passwordHash string) repository.Fixture {
	return repository.Fixture{
		Roles: []string{domain.RolePlatformAdmin, domain.RoleStoreAdmin, domain.RoleCustomer},
		Company: domain.Company{
			Name:  demoCompanyName,
			Email: "contacto@chilsmart.com",
			Plan:  "premium",
		},
		Users: []repository.FixtureUser{
			{Name: "Waldo", Email: "waldo@chilsmart.com", PasswordHash: passwordHash, Role: domain.RolePlatformAdmin},
		},
		Stores: []repository.FixtureStore{
			{
				Name:       "Chilsmart Store Principal",
				Domain:     "chilsmart-store.myshop.com",
				Theme:      "modern",
				Categories: []string{"Electrónica", "Ropa", "Hogar", "Deportes", "Libros"},
				Products: []repository.FixtureProduct{
					{CategoryIndex: 0, Name: "Smartphone Galaxy Pro", Description: "Teléfono inteligente con pantalla AMOLED de 6.7 pulgadas, 128GB de almacenamiento y cámara de 108MP", Price: domain.Money(89999), Stock: 25, Image: "https://via.placeholder.com/400x400?text=Smartphone"},
					{CategoryIndex: 0, Name: "Laptop UltraBook", Description: "Laptop ultradelgada con procesador Intel i7, 16GB RAM, SSD 512GB", Price: domain.Money(129999), Stock: 15, Image: "https://via.placeholder.com/400x400?text=Laptop"},
					{CategoryIndex: 0, Name: "Auriculares Inalámbricos", Description: "Auriculares con cancelación de ruido activa y batería de 30 horas", Price: domain.Money(19999), Stock: 50, Image: "https://via.placeholder.com/400x400?text=Auriculares"},
					{CategoryIndex: 1, Name: "Camiseta Premium", Description: "Camiseta de algodón 100% orgánico, disponible en varios colores", Price: domain.Money(2999), Stock: 100, Image: "https://via.placeholder.com/400x400?text=Camiseta"},
					{CategoryIndex: 1, Name: "Jeans Clásicos", Description: "Jeans de corte clásico, tela resistente y cómoda", Price: domain.Money(7999), Stock: 60, Image: "https://via.placeholder.com/400x400?text=Jeans"},
					{CategoryIndex: 2, Name: "Sofá Moderno", Description: "Sofá de 3 plazas, tela resistente, cómodo y elegante", Price: domain.Money(59999), Stock: 10, Image: "https://via.placeholder.com/400x400?text=Sofa"},
					{CategoryIndex: 2, Name: "Mesa de Centro", Description: "Mesa de centro de madera maciza, diseño minimalista", Price: domain.Money(24999), Stock: 20, Image: "https://via.placeholder.com/400x400?text=Mesa"},
					{CategoryIndex: 3, Name: "Zapatillas Deportivas", Description: "Zapatillas para running con tecnología de amortiguación avanzada", Price: domain.Money(11999), Stock: 45, Image: "https://via.placeholder.com/400x400?text=Zapatillas"},
					{CategoryIndex: 4, Name: "El Arte de la Programación", Description: "Libro sobre mejores prácticas en desarrollo de software", Price: domain.Money(3999), Stock: 30, Image: "https://via.placeholder.com/400x400?text=Libro"},
					{CategoryIndex: 0, Name: "Smartwatch Pro", Description: "Reloj inteligente con monitor de salud, GPS y resistencia al agua", Price: domain.Money(34999), Stock: 35, Image: "https://via.placeholder.com/400x400?text=Smartwatch"},
				},
				Customers: []domain.Customer{
					{Name: "María González", Email: "maria.gonzalez@email.com", Phone: "+56912345678"},
					{Name: "Juan Pérez", Email: "juan.perez@email.com", Phone: "+56987654321"},
					{Name: "Ana Martínez", Email: "ana.martinez@email.com", Phone: "+56911223344"},
					{Name: "Carlos Rodríguez", Email: "carlos.rodriguez@email.com", Phone: "+56955667788"},
					{Name: "Laura Sánchez", Email: "laura.sanchez@email.com", Phone: "+56999887766"},
				},
				Orders: []repository.FixtureOrder{
					{
						CustomerIndex: 0, Status: domain.OrderCompleted, PaymentStatus: domain.PaymentPaid,
						Items: []repository.FixtureOrderItem{
							{ProductIndex: 0, Quantity: 1},
							{ProductIndex: 3, Quantity: 2},
						},
						Payments:  []repository.FixturePayment{{Provider: "stripe", Status: "completed"}},
						Shipments: []repository.FixtureShipment{{Address: "Av. Principal 123, Depto 45", City: "Santiago", TrackingCode: "SHIP001234", Status: "delivered"}},
					},
					{
						CustomerIndex: 1, Status: domain.OrderProcessing, PaymentStatus: domain.PaymentPaid,
						Items: []repository.FixtureOrderItem{
							{ProductIndex: 2, Quantity: 1},
							{ProductIndex: 3, Quantity: 1},
							{ProductIndex: 4, Quantity: 1},
						},
						Payments:  []repository.FixturePayment{{Provider: "paypal", Status: "completed"}},
						Shipments: []repository.FixtureShipment{{Address: "Calle Los Olivos 456", City: "Valparaíso", TrackingCode: "SHIP001235", Status: "in_transit"}},
					},
					{
						CustomerIndex: 2, Status: domain.OrderPending, PaymentStatus: domain.PaymentUnpaid,
						Items: []repository.FixtureOrderItem{
							{ProductIndex: 1, Quantity: 1},
							{ProductIndex: 3, Quantity: 2},
						},
					},
					{
						CustomerIndex: 3, Status: domain.OrderShipped, PaymentStatus: domain.PaymentPaid,
						Items: []repository.FixtureOrderItem{
							{ProductIndex: 2, Quantity: 1},
						},
						Payments:  []repository.FixturePayment{{Provider: "stripe", Status: "completed"}},
						Shipments: []repository.FixtureShipment{{Address: "Pasaje Las Flores 789", City: "Concepción", TrackingCode: "SHIP001236", Status: "delivered"}},
					},
					{
						CustomerIndex: 4, Status: domain.OrderCompleted, PaymentStatus: domain.PaymentPaid,
						Items: []repository.FixtureOrderItem{
							{ProductIndex: 1, Quantity: 1},
							{ProductIndex: 0, Quantity: 1},
						},
						Payments:  []repository.FixturePayment{{Provider: "stripe", Status: "completed"}},
						Shipments: []repository.FixtureShipment{{Address: "Av. Libertador 321", City: "Santiago", TrackingCode: "SHIP001237", Status: "delivered"}},
					},
				},
			},
		},
		Memberships: []repository.FixtureMembership{
			{UserIndex: 0, StoreIndex: 0, Status: domain.UserStoreActive},
		},
	}
}

// supplementsUser and supplementsStore extend the demo tenant with a second
// store run by its own admin.
func supplementsUser(passwordHash string) repository.FixtureUser {
	return repository.FixtureUser{
		Name:         "Renato",
		Email:        "renato@chilsmart.com",
		PasswordHash: passwordHash,
		Role:         domain.RoleStoreAdmin,
	}
}

func supplementsStore() repository.FixtureStore {
	return repository.FixtureStore{
		Name:       "Suplementos Deportivos Pro",
		Domain:     "suplementos-deportivos.myshop.com",
		Theme:      "sport",
		Categories: []string{"Proteínas", "Creatina", "Pre-entrenos", "Vitaminas", "Quemadores de grasa"},
		Products: []repository.FixtureProduct{
			{CategoryIndex: 0, Name: "Proteína Whey 2kg", Description: "Proteína de suero de leche de alta calidad, 25g de proteína por porción, sabor chocolate", Price: domain.Money(4599), Stock: 50, Image: "https://via.placeholder.com/400x400?text=Proteina+Whey"},
			{CategoryIndex: 0, Name: "Proteína Caseína 1kg", Description: "Proteína de liberación lenta, ideal para tomar antes de dormir", Price: domain.Money(3299), Stock: 30, Image: "https://via.placeholder.com/400x400?text=Caseina"},
			{CategoryIndex: 0, Name: "Proteína Vegana 1.5kg", Description: "Proteína 100% vegetal, sin lactosa, sabor vainilla", Price: domain.Money(3899), Stock: 25, Image: "https://via.placeholder.com/400x400?text=Proteina+Vegana"},
			{CategoryIndex: 1, Name: "Creatina Monohidrato 500g", Description: "Creatina pura en polvo, aumenta fuerza y masa muscular", Price: domain.Money(1899), Stock: 60, Image: "https://via.placeholder.com/400x400?text=Creatina"},
			{CategoryIndex: 1, Name: "Creatina HCL 300g", Description: "Creatina hidrocloruro, mejor absorción, sin retención de agua", Price: domain.Money(2499), Stock: 40, Image: "https://via.placeholder.com/400x400?text=Creatina+HCL"},
			{CategoryIndex: 2, Name: "Pre-entreno Explosivo 300g", Description: "Aumenta energía, enfoque y resistencia durante el entrenamiento", Price: domain.Money(2999), Stock: 45, Image: "https://via.placeholder.com/400x400?text=Pre+Entreno"},
			{CategoryIndex: 2, Name: "Pre-entreno Sin Cafeína 250g", Description: "Pre-entreno sin estimulantes, ideal para entrenamientos nocturnos", Price: domain.Money(2699), Stock: 35, Image: "https://via.placeholder.com/400x400?text=Pre+Sin+Cafeina"},
			{CategoryIndex: 3, Name: "Multivitamínico Completo 120 cápsulas", Description: "Complejo vitamínico con todos los nutrientes esenciales", Price: domain.Money(2299), Stock: 80, Image: "https://via.placeholder.com/400x400?text=Multivitaminico"},
			{CategoryIndex: 3, Name: "Vitamina D3 2000 UI 120 cápsulas", Description: "Suplemento de vitamina D3 para fortalecer huesos y sistema inmune", Price: domain.Money(1599), Stock: 70, Image: "https://via.placeholder.com/400x400?text=Vitamina+D3"},
			{CategoryIndex: 4, Name: "Quemador de Grasa Termogénico 120 cápsulas", Description: "Acelera el metabolismo y ayuda a quemar grasa durante el ejercicio", Price: domain.Money(3499), Stock: 40, Image: "https://via.placeholder.com/400x400?text=Quemador"},
		},
		Customers: []domain.Customer{
			{Name: "Diego Torres", Email: "diego.torres@email.com", Phone: "+56911111111"},
			{Name: "Fernanda Silva", Email: "fernanda.silva@email.com", Phone: "+56922222222"},
			{Name: "Roberto Morales", Email: "roberto.morales@email.com", Phone: "+56933333333"},
		},
		Orders: []repository.FixtureOrder{
			{
				CustomerIndex: 0, Status: domain.OrderCompleted, PaymentStatus: domain.PaymentPaid,
				Items: []repository.FixtureOrderItem{
					{ProductIndex: 0, Quantity: 1},
					{ProductIndex: 3, Quantity: 1},
				},
				Payments:  []repository.FixturePayment{{Provider: "stripe", Status: "completed"}},
				Shipments: []repository.FixtureShipment{{Address: "Av. Deportiva 789, Depto 12", City: "Santiago", TrackingCode: "SUP001234", Status: "delivered"}},
			},
			{
				CustomerIndex: 1, Status: domain.OrderProcessing, PaymentStatus: domain.PaymentPaid,
				Items: []repository.FixtureOrderItem{
					{ProductIndex: 1, Quantity: 1},
					{ProductIndex: 4, Quantity: 1},
				},
				Payments:  []repository.FixturePayment{{Provider: "paypal", Status: "completed"}},
				Shipments: []repository.FixtureShipment{{Address: "Calle Fitness 321", City: "Valparaíso", TrackingCode: "SUP001235", Status: "in_transit"}},
			},
			{
				CustomerIndex: 2, Status: domain.OrderPending, PaymentStatus: domain.PaymentUnpaid,
				Items: []repository.FixtureOrderItem{
					{ProductIndex: 5, Quantity: 1},
					{ProductIndex: 7, Quantity: 1},
					{ProductIndex: 8, Quantity: 1},
				},
			},
		},
	}
}
