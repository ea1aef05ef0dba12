// internal/domain/transfer/service.go
package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a transfer does not exist
	ErrNotFound = errors.New("Không tìm thấy phiếu chuyển kho")
	// ErrSameWarehouse is returned when source and destination match
	ErrSameWarehouse = errors.New("Kho nguồn và kho đích phải khác nhau")
	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("Trạng thái không hợp lệ")
	// ErrInvalidTransition is returned for disallowed status transitions
	ErrInvalidTransition = errors.New("Không thể chuyển sang trạng thái này")
	// ErrDuplicateProduct is returned when a batch lists the same product twice
	ErrDuplicateProduct = errors.New("Sản phẩm bị trùng trong danh sách")
)

// Service handles inter-warehouse transfer logic
type Service struct {
	db        *gorm.DB
	config    *config.Config
	inventory *inventory.Service
}

// NewService creates a new transfer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		inventory: inventory.NewService(db, cfg),
	}
}

// TransferItemRequest is one product line of a transfer request
type TransferItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateTransferRequest represents transfer creation data
type CreateTransferRequest struct {
	FromWarehouseID uint                  `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uint                  `json:"to_warehouse_id" binding:"required"`
	Notes           string                `json:"notes"`
	Items           []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferListRequest represents transfer list query parameters
type TransferListRequest struct {
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

// TransferListResponse represents transfers with pagination
type TransferListResponse struct {
	Transfers  []Transfer `json:"transfers"`
	Pagination Pagination `json:"pagination"`
}

// CreateTransfer creates a transfer in "pending" state. Source stock is
// checked here as an early rejection but not locked; the authoritative
// check happens when the transfer completes.
func (s *Service) CreateTransfer(req *CreateTransferRequest, userID uint) (*Transfer, error) {
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, ErrSameWarehouse
	}

	for _, id := range []uint{req.FromWarehouseID, req.ToWarehouseID} {
		var wh warehouse.Warehouse
		if err := s.db.First(&wh, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, inventory.ErrWarehouseNotFound
			}
			return nil, fmt.Errorf("failed to load warehouse: %w", err)
		}
	}

	seen := map[uint]struct{}{}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("số lượng phải lớn hơn 0")
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[item.ProductID] = struct{}{}

		available, err := s.inventory.GetQuantity(item.ProductID, req.FromWarehouseID)
		if err != nil {
			return nil, err
		}
		if available < item.Quantity {
			return nil, fmt.Errorf("%w: sản phẩm %d (tồn: %d, yêu cầu: %d)",
				inventory.ErrInsufficientStock, item.ProductID, available, item.Quantity)
		}
	}

	transfer := &Transfer{
		Code:            generateTransferCode(),
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Status:          StatusPending,
		CreatedBy:       userID,
		Notes:           req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transfer).Error; err != nil {
			return fmt.Errorf("failed to create transfer: %w", err)
		}
		for _, item := range req.Items {
			transferItem := &TransferItem{
				TransferID: transfer.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
			}
			if err := tx.Create(transferItem).Error; err != nil {
				return fmt.Errorf("failed to create transfer item: %w", err)
			}
			transfer.Items = append(transfer.Items, *transferItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// GetTransfers retrieves transfers with pagination and optional status filter
func (s *Service) GetTransfers(req *TransferListRequest) (*TransferListResponse, error) {
	var transfers []Transfer
	var total int64

	query := s.db.Model(&Transfer{}).Preload("Items")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transfers: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve transfers: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &TransferListResponse{
		Transfers: transfers,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetTransfer retrieves a transfer with its items
func (s *Service) GetTransfer(id uint) (*Transfer, error) {
	var transfer Transfer
	if err := s.db.Preload("Items").First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve transfer: %w", err)
	}
	return &transfer, nil
}

// UpdateStatus applies a status transition. Completing a transfer moves the
// stock: source decrements, destination increments, both warehouses' usage
// totals and the paired ledger rows are written in the same transaction as
// the status itself.
func (s *Service) UpdateStatus(id uint, newStatus Status, userID uint) (*Transfer, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	transfer, err := s.GetTransfer(id)
	if err != nil {
		return nil, err
	}

	if !isValidTransition(transfer.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, transfer.Status, newStatus)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if newStatus == StatusCompleted {
			if err := s.moveStock(tx, transfer, userID); err != nil {
				return err
			}
			now := time.Now().UTC()
			transfer.CompletedAt = &now
		}

		transfer.Status = newStatus
		if err := tx.Save(transfer).Error; err != nil {
			return fmt.Errorf("failed to update transfer status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// DeleteTransfer removes a transfer. Completed transfers cannot be deleted;
// their stock movement is already part of the ledger.
func (s *Service) DeleteTransfer(id uint) error {
	transfer, err := s.GetTransfer(id)
	if err != nil {
		return err
	}

	if transfer.Status == StatusCompleted {
		return fmt.Errorf("%w: phiếu đã hoàn thành", ErrInvalidTransition)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", id).Delete(&TransferItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete transfer items: %w", err)
		}
		if err := tx.Delete(&Transfer{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete transfer: %w", err)
		}
		return nil
	})
}

// moveStock performs the two-sided movement for a completing transfer.
// The source decrement is a conditional update, so a transfer whose stock
// has since been exported fails here and the completion rolls back.
func (s *Service) moveStock(tx *gorm.DB, transfer *Transfer, userID uint) error {
	now := time.Now().UTC()
	total := 0

	for _, item := range transfer.Items {
		if err := s.inventory.AdjustQuantity(tx, item.ProductID, -item.Quantity, transfer.FromWarehouseID); err != nil {
			return err
		}
		if err := s.inventory.AdjustQuantity(tx, item.ProductID, item.Quantity, transfer.ToWarehouseID); err != nil {
			return err
		}

		outbound := &inventory.InventoryTransaction{
			ReferenceID:     transfer.Code + "-X",
			ProductID:       item.ProductID,
			WarehouseID:     transfer.FromWarehouseID,
			Quantity:        item.Quantity,
			Type:            inventory.TypeExport,
			Notes:           fmt.Sprintf("Chuyển kho %s", transfer.Code),
			CreatedBy:       userID,
			TransactionDate: now,
		}
		if err := s.inventory.RecordTransaction(tx, outbound); err != nil {
			return err
		}

		inbound := &inventory.InventoryTransaction{
			ReferenceID:     transfer.Code + "-N",
			ProductID:       item.ProductID,
			WarehouseID:     transfer.ToWarehouseID,
			Quantity:        item.Quantity,
			Type:            inventory.TypeImport,
			Notes:           fmt.Sprintf("Chuyển kho %s", transfer.Code),
			CreatedBy:       userID,
			TransactionDate: now,
		}
		if err := s.inventory.RecordTransaction(tx, inbound); err != nil {
			return err
		}

		total += item.Quantity
	}

	// Move the usage running totals with the stock. Capacity is an
	// import-time constraint only, so the destination update is unconditional.
	if err := tx.Model(&warehouse.Warehouse{}).
		Where("id = ?", transfer.FromWarehouseID).
		Update("current_usage", gorm.Expr("current_usage - ?", total)).Error; err != nil {
		return fmt.Errorf("failed to update source warehouse usage: %w", err)
	}
	if err := tx.Model(&warehouse.Warehouse{}).
		Where("id = ?", transfer.ToWarehouseID).
		Update("current_usage", gorm.Expr("current_usage + ?", total)).Error; err != nil {
		return fmt.Errorf("failed to update destination warehouse usage: %w", err)
	}

	return nil
}

func isValidTransition(from, to Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending: {
			StatusInProgress,
			StatusCompleted,
			StatusCancelled,
		},
		StatusInProgress: {
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

// generateTransferCode builds a code like CK20250901-1A2B3C4D
func generateTransferCode() string {
	return fmt.Sprintf("CK%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)
}
