// internal/domain/sales/service.go
package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a sales order does not exist
	ErrNotFound = errors.New("Không tìm thấy đơn bán hàng")
	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("Trạng thái không hợp lệ")
	// ErrInvalidTransition is returned for disallowed status transitions
	ErrInvalidTransition = errors.New("Không thể chuyển sang trạng thái này")
)

// Service handles sales order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sales service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SalesItemRequest is one product line of a sales order request
type SalesItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSalesOrderRequest represents sales order creation data
type CreateSalesOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Notes        string             `json:"notes"`
	Items        []SalesItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderListRequest represents sales order list query parameters
type SalesOrderListRequest struct {
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

// SalesOrderListResponse represents sales orders with pagination
type SalesOrderListResponse struct {
	SalesOrders []SalesOrder `json:"sales_orders"`
	Pagination  Pagination   `json:"pagination"`
}

// CreateSalesOrder creates a sales order with its items in one transaction
func (s *Service) CreateSalesOrder(req *CreateSalesOrderRequest, userID uint) (*SalesOrder, error) {
	total := decimal.Zero
	items := make([]SalesOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("số lượng phải lớn hơn 0")
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("đơn giá không được âm")
		}
		line := SalesOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		total = total.Add(line.Extension())
		items = append(items, line)
	}

	order := &SalesOrder{
		Code:         generateSalesCode(),
		UserID:       userID,
		CustomerName: req.CustomerName,
		TotalAmount:  total,
		Status:       StatusPending,
		Notes:        req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create sales order: %w", err)
		}
		for i := range items {
			items[i].SalesOrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create sales order item: %w", err)
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

// GetSalesOrders retrieves sales orders with pagination
func (s *Service) GetSalesOrders(req *SalesOrderListRequest) (*SalesOrderListResponse, error) {
	var orders []SalesOrder
	var total int64

	query := s.db.Model(&SalesOrder{}).Preload("Items")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales orders: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &SalesOrderListResponse{
		SalesOrders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetSalesOrder retrieves a sales order with its items
func (s *Service) GetSalesOrder(id uint) (*SalesOrder, error) {
	var order SalesOrder
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve sales order: %w", err)
	}
	return &order, nil
}

// UpdateStatus applies a status transition to a sales order
func (s *Service) UpdateStatus(id uint, newStatus Status) (*SalesOrder, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetSalesOrder(id)
	if err != nil {
		return nil, err
	}

	if !isValidTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update sales order status: %w", err)
	}

	return order, nil
}

// DeleteSalesOrder removes a sales order and its items
func (s *Service) DeleteSalesOrder(id uint) error {
	if _, err := s.GetSalesOrder(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_order_id = ?", id).Delete(&SalesOrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete sales order items: %w", err)
		}
		if err := tx.Delete(&SalesOrder{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete sales order: %w", err)
		}
		return nil
	})
}

func isValidTransition(from, to Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending: {
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

// generateSalesCode builds a code like BH20250901-1A2B3C4D
func generateSalesCode() string {
	return fmt.Sprintf("BH%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)
}
