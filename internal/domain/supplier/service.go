// internal/domain/supplier/service.go
package supplier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a supplier does not exist
	ErrNotFound = errors.New("Không tìm thấy nhà cung cấp")
	// ErrDuplicateCode is returned when the supplier code is already taken
	ErrDuplicateCode = errors.New("Mã nhà cung cấp đã tồn tại")
)

// Service handles supplier business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new supplier service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSupplierRequest represents supplier creation data
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// UpdateSupplierRequest represents supplier update data
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// SupplierListRequest represents supplier list query parameters
type SupplierListRequest struct {
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

// SupplierListResponse represents suppliers with pagination
type SupplierListResponse struct {
	Suppliers  []Supplier `json:"suppliers"`
	Pagination Pagination `json:"pagination"`
}

// CreateSupplier creates a new supplier. The unique index on code is the
// authoritative guard; the pre-check only gives a cleaner message.
func (s *Service) CreateSupplier(req *CreateSupplierRequest) (*Supplier, error) {
	var existing Supplier
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, ErrDuplicateCode
	}

	supplier := &Supplier{
		Code:        req.Code,
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	}

	if err := s.db.Create(supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return supplier, nil
}

// GetSuppliers retrieves suppliers with pagination and search
func (s *Service) GetSuppliers(req *SupplierListRequest) (*SupplierListResponse, error) {
	var suppliers []Supplier
	var total int64

	query := s.db.Model(&Supplier{})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve suppliers: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &SupplierListResponse{
		Suppliers: suppliers,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetSupplier retrieves a supplier by ID
func (s *Service) GetSupplier(id uint) (*Supplier, error) {
	var supplier Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve supplier: %w", err)
	}
	return &supplier, nil
}

// UpdateSupplier updates a supplier
func (s *Service) UpdateSupplier(id uint, req *UpdateSupplierRequest) (*Supplier, error) {
	supplier, err := s.GetSupplier(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) > 0 {
		if err := s.db.Model(supplier).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update supplier: %w", err)
		}
	}

	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *Service) DeleteSupplier(id uint) error {
	result := s.db.Delete(&Supplier{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
