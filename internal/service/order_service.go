package service

import (
	"context"
	"errors"
	"fmt"

	"shopd/internal/domain"
	"shopd/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// CreateOrderItem is one requested line of a new order. Price never comes
// from the client; it is snapshotted from the product at creation time.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
}

type CreateOrderRequest struct {
	StoreID       int64
	CustomerID    *int64
	Status        string
	PaymentStatus string
	Items         []CreateOrderItem
}

// OrderService assembles orders from live product data and exposes the
// spreadsheet export of a store's order book.
type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	Export(ctx context.Context, storeID int64, filters repository.OrderFilters) (*excelize.File, error)
}

type orderService struct {
	orders   repository.OrdersRepository
	products repository.ProductsRepository
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrdersRepository, products repository.ProductsRepository, logger *zap.Logger) OrderService {
	return &orderService{orders: orders, products: products, logger: logger}
}

func (s *orderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, domain.NewValidationError("order must contain at least one item")
	}

	status := req.Status
	if status == "" {
		status = domain.OrderPending
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentUnpaid
	}

	var fields []string
	if !domain.ValidOrderStatus(status) {
		fields = append(fields, fmt.Sprintf("invalid order status %q", status))
	}
	if !domain.ValidPaymentStatus(paymentStatus) {
		fields = append(fields, fmt.Sprintf("invalid payment status %q", paymentStatus))
	}
	for i, item := range req.Items {
		if item.ProductID == 0 {
			fields = append(fields, fmt.Sprintf("item %d: product_id is required", i))
		}
		if item.Quantity < 0 {
			fields = append(fields, fmt.Sprintf("item %d: quantity must not be negative", i))
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	var (
		items []domain.OrderItem
		total domain.Money
	)
	for _, item := range req.Items {
		product, err := s.products.GetForStore(ctx, req.StoreID, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFoundf("product %d not found in store %d", item.ProductID, req.StoreID)
			}
			return nil, err
		}

		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		productID := product.ID
		items = append(items, domain.OrderItem{
			ProductID: &productID,
			Quantity:  qty,
			Price:     product.Price,
		})
		total += product.Price.Mul(qty)
	}

	order := &domain.Order{
		StoreID:       req.StoreID,
		CustomerID:    req.CustomerID,
		Total:         total,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	id, err := s.orders.Create(ctx, order, items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int64("order_id", id),
		zap.Int64("store_id", req.StoreID),
		zap.Int("items", len(items)),
		zap.String("total", total.String()),
	)
	return s.orders.GetByID(ctx, id)
}

var exportHeader = []string{"Order ID", "Customer ID", "Status", "Payment Status", "Total", "Items", "Created At"}

// Export writes the store's orders into a one-sheet workbook, one row
// per order.
func (s *orderService) Export(ctx context.Context, storeID int64, filters repository.OrderFilters) (*excelize.File, error) {
	orders, err := s.orders.List(ctx, storeID, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, o := range orders {
		customer := ""
		if o.CustomerID != nil {
			customer = fmt.Sprintf("%d", *o.CustomerID)
		}
		itemCount := 0
		for _, item := range o.Items {
			itemCount += item.Quantity
		}
		values := []any{
			o.ID,
			customer,
			o.Status,
			o.PaymentStatus,
			o.Total.String(),
			itemCount,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}
