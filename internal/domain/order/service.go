// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an order does not exist
	ErrNotFound = errors.New("Không tìm thấy đơn hàng")
	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("Trạng thái không hợp lệ")
	// ErrInvalidTransition is returned for disallowed status transitions
	ErrInvalidTransition = errors.New("Không thể chuyển sang trạng thái này")
)

// Service handles purchase order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// OrderItemRequest is one product line of an order request
type OrderItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateOrderRequest represents purchase order creation data
type CreateOrderRequest struct {
	SupplierID uint               `json:"supplier_id" binding:"required"`
	Notes      string             `json:"notes"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status Status `form:"status"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OrderListResponse represents orders with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// CreateOrder creates a purchase order with its items in one transaction.
// The total is computed server-side from the submitted line prices.
func (s *Service) CreateOrder(req *CreateOrderRequest, userID uint) (*Order, error) {
	var sup supplier.Supplier
	if err := s.db.First(&sup, req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, supplier.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	total := decimal.Zero
	items := make([]OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("số lượng phải lớn hơn 0")
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("đơn giá không được âm")
		}
		line := OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		total = total.Add(line.Extension())
		items = append(items, line)
	}

	order := &Order{
		Code:        generateOrderCode("DH"),
		UserID:      userID,
		SupplierID:  req.SupplierID,
		TotalAmount: total,
		Status:      StatusPending,
		Notes:       req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

// GetOrders retrieves orders with pagination and optional status filter
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &OrderListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetOrder retrieves an order with its items
func (s *Service) GetOrder(id uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// UpdateStatus applies a status transition to an order
func (s *Service) UpdateStatus(id uint, newStatus Status) (*Order, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if !isValidTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

// DeleteOrder removes an order and its items
func (s *Service) DeleteOrder(id uint) error {
	if _, err := s.GetOrder(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&Order{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

func isValidTransition(from, to Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending: {
			StatusConfirmed,
			StatusCancelled,
		},
		StatusConfirmed: {
			StatusCompleted,
			StatusCancelled,
		},
	}

	for _, status := range validTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}

// generateOrderCode builds a code like DH20250901-1A2B3C4D
func generateOrderCode(prefix string) string {
	return fmt.Sprintf("%s%s-%s",
		prefix,
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)
}
