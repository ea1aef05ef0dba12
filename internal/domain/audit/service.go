// internal/domain/audit/service.go
package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an audit does not exist
	ErrNotFound = errors.New("Không tìm thấy phiếu kiểm kê")
	// ErrDuplicateCode is returned when the audit code is already taken
	ErrDuplicateCode = errors.New("Mã phiếu kiểm kê đã tồn tại")
)

// Service handles stocktake business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new audit service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AuditItemRequest is one counted product line
type AuditItemRequest struct {
	ProductID      uint   `json:"product_id" binding:"required"`
	SystemQuantity int    `json:"system_quantity"`
	ActualQuantity int    `json:"actual_quantity"`
	Notes          string `json:"notes"`
}

// CreateAuditRequest represents audit creation data
type CreateAuditRequest struct {
	Code        string             `json:"code" binding:"required"`
	Date        string             `json:"date" binding:"required"` // YYYY-MM-DD
	WarehouseID uint               `json:"warehouse_id" binding:"required"`
	Notes       string             `json:"notes"`
	Items       []AuditItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AuditListRequest represents audit list query parameters
type AuditListRequest struct {
	Page        int  `form:"page,default=1"`
	Limit       int  `form:"limit,default=20"`
	WarehouseID uint `form:"warehouseId"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// AuditListResponse represents audits with pagination
type AuditListResponse struct {
	Audits     []Audit    `json:"audits"`
	Pagination Pagination `json:"pagination"`
}

// CreateAudit creates a stocktake header and its items in one transaction.
// Each item's discrepancy is system − actual; the header total is their sum.
func (s *Service) CreateAudit(req *CreateAuditRequest, userID uint) (*Audit, error) {
	auditDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid audit date: %s", req.Date)
	}

	var wh warehouse.Warehouse
	if err := s.db.First(&wh, req.WarehouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}

	var existing Audit
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, ErrDuplicateCode
	}

	totalDiscrepancy := 0
	items := make([]AuditItem, 0, len(req.Items))
	for _, item := range req.Items {
		discrepancy := item.SystemQuantity - item.ActualQuantity
		totalDiscrepancy += discrepancy
		items = append(items, AuditItem{
			ProductID:      item.ProductID,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Discrepancy:    discrepancy,
			Notes:          item.Notes,
		})
	}

	audit := &Audit{
		Code:             req.Code,
		AuditDate:        auditDate,
		WarehouseID:      req.WarehouseID,
		CreatedBy:        userID,
		TotalDiscrepancy: totalDiscrepancy,
		Status:           StatusPending,
		Notes:            req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(audit).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCode
			}
			return fmt.Errorf("failed to create audit: %w", err)
		}
		for i := range items {
			items[i].AuditID = audit.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create audit item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Items = items
	return audit, nil
}

// GetAudits retrieves audits with pagination
func (s *Service) GetAudits(req *AuditListRequest) (*AuditListResponse, error) {
	var audits []Audit
	var total int64

	query := s.db.Model(&Audit{}).Preload("Items")

	if req.WarehouseID > 0 {
		query = query.Where("warehouse_id = ?", req.WarehouseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audits: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("audit_date DESC, id DESC").Offset(offset).Limit(req.Limit).Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve audits: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &AuditListResponse{
		Audits: audits,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetAudit retrieves an audit with its items
func (s *Service) GetAudit(id uint) (*Audit, error) {
	var audit Audit
	if err := s.db.Preload("Items").First(&audit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve audit: %w", err)
	}
	return &audit, nil
}

// DeleteAudit removes an audit and its items
func (s *Service) DeleteAudit(id uint) error {
	if _, err := s.GetAudit(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("audit_id = ?", id).Delete(&AuditItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete audit items: %w", err)
		}
		if err := tx.Delete(&Audit{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete audit: %w", err)
		}
		return nil
	})
}
