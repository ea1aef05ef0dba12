// internal/domain/warehouse/service.go
package warehouse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a warehouse does not exist
	ErrNotFound = errors.New("Không tìm thấy kho")
	// ErrDuplicateCode is returned when the warehouse code is already taken
	ErrDuplicateCode = errors.New("Mã kho đã tồn tại")
)

// Service handles warehouse business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new warehouse service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateWarehouseRequest represents warehouse creation data
type CreateWarehouseRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateWarehouseRequest represents warehouse update data
type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Capacity *int    `json:"capacity"`
}

// WarehouseListRequest represents warehouse list query parameters
type WarehouseListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// WarehouseListResponse represents warehouses with pagination
type WarehouseListResponse struct {
	Warehouses []Warehouse `json:"warehouses"`
	Pagination Pagination  `json:"pagination"`
}

// CreateWarehouse creates a new warehouse
func (s *Service) CreateWarehouse(req *CreateWarehouseRequest) (*Warehouse, error) {
	var existing Warehouse
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, ErrDuplicateCode
	}

	warehouse := &Warehouse{
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	}

	if err := s.db.Create(warehouse).Error; err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}

	return warehouse, nil
}

// GetWarehouses retrieves warehouses with pagination and search
func (s *Service) GetWarehouses(req *WarehouseListRequest) (*WarehouseListResponse, error) {
	var warehouses []Warehouse
	var total int64

	query := s.db.Model(&Warehouse{})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count warehouses: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("code ASC").Offset(offset).Limit(req.Limit).Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve warehouses: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &WarehouseListResponse{
		Warehouses: warehouses,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *Service) GetWarehouse(id uint) (*Warehouse, error) {
	var warehouse Warehouse
	if err := s.db.First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve warehouse: %w", err)
	}
	return &warehouse, nil
}

// UpdateWarehouse updates a warehouse
func (s *Service) UpdateWarehouse(id uint, req *UpdateWarehouseRequest) (*Warehouse, error) {
	warehouse, err := s.GetWarehouse(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("capacity must be positive")
		}
		updates["capacity"] = *req.Capacity
	}

	if len(updates) > 0 {
		if err := s.db.Model(warehouse).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update warehouse: %w", err)
		}
	}

	return warehouse, nil
}

// DeleteWarehouse soft-deletes a warehouse
func (s *Service) DeleteWarehouse(id uint) error {
	result := s.db.Delete(&Warehouse{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete warehouse: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecomputeUsage recalculates current_usage from the inventory table.
// The stock operations maintain the running total incrementally; this
// exists for reconciling drift after manual database changes.
func (s *Service) RecomputeUsage(id uint) (*Warehouse, error) {
	warehouse, err := s.GetWarehouse(id)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Table("inventories").
		Where("warehouse_id = ?", id).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to sum inventory: %w", err)
	}

	if err := s.db.Model(warehouse).Update("current_usage", total).Error; err != nil {
		return nil, fmt.Errorf("failed to update current usage: %w", err)
	}

	warehouse.CurrentUsage = int(total)
	return warehouse, nil
}
