package httpapi

import (
	"net/http"

	"shopd/internal/auth"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; no third-party routing dependency.
type Router struct {
	mux    *http.ServeMux
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewRouter(tokens *auth.TokenService, logger *zap.Logger) *Router {
	return &Router{mux: http.NewServeMux(), tokens: tokens, logger: logger}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	RequestID(r.logger, r.mux).ServeHTTP(w, req)
}

// Handle registers a public route.
func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleAuthed registers a route behind bearer authentication.
func (r *Router) HandleAuthed(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, Authenticate(r.tokens, h))
}

// Handlers bundles every handler the API mounts.
type Handlers struct {
	Auth       *AuthHandler
	Stores     *StoresHandler
	Categories *CategoriesHandler
	Products   *ProductsHandler
	Customers  *CustomersHandler
	Orders     *OrdersHandler
	Payments   *PaymentsHandler
	Shipments  *ShipmentsHandler
	Roles      *RolesHandler
	UserStores *UserStoresHandler
	Seed       *SeedHandler
}

// RegisterRoutes mounts the full API surface.
func (r *Router) RegisterRoutes(h Handlers) {
	r.Handle("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]any{"status": "ok"}))
	})

	// auth
	r.Handle("/auth/register", h.Auth.Register)
	r.Handle("/auth/login", h.Auth.Login)
	r.HandleAuthed("/auth/profile", h.Auth.Profile)
	r.HandleAuthed("/auth/change-password", h.Auth.ChangePassword)

	// stores
	r.HandleAuthed("/stores", h.Stores.Collection)
	r.HandleAuthed("/stores/", h.Stores.Item)

	// catalog
	r.HandleAuthed("/categories", h.Categories.Collection)
	r.HandleAuthed("/categories/", h.Categories.Item)
	r.HandleAuthed("/products", h.Products.Collection)
	r.HandleAuthed("/products/", h.Products.Item)

	// customers
	r.HandleAuthed("/customers", h.Customers.Collection)
	r.HandleAuthed("/customers/", h.Customers.Item)

	// orders and their children
	r.HandleAuthed("/orders", h.Orders.Collection)
	r.HandleAuthed("/orders/export", h.Orders.Export)
	r.HandleAuthed("/orders/", h.Orders.Item)
	r.HandleAuthed("/payments", h.Payments.Collection)
	r.HandleAuthed("/payments/", h.Payments.Item)
	r.HandleAuthed("/shipments", h.Shipments.Collection)
	r.HandleAuthed("/shipments/", h.Shipments.Item)

	// roles
	r.HandleAuthed("/roles", h.Roles.Collection)
	r.HandleAuthed("/roles/", h.Roles.Item)

	// user-store associations
	r.HandleAuthed("/user-stores", h.UserStores.Collection)
	r.HandleAuthed("/user-stores/add-customer", h.UserStores.AddCustomer)
	r.HandleAuthed("/user-stores/user/", h.UserStores.StoresByUser)
	r.HandleAuthed("/user-stores/store/", h.UserStores.UsersByStore)
	r.HandleAuthed("/user-stores/", h.UserStores.Item)

	// development seeding
	r.Handle("/seed", h.Seed.Demo)
	r.Handle("/seed/renato", h.Seed.SupplementsStore)
}
