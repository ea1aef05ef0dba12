// internal/domain/inventory/service.go
package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/product"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

var (
	// ErrWarehouseNotFound is returned when the referenced warehouse is absent
	ErrWarehouseNotFound = errors.New("Không tìm thấy kho")
	// ErrProductNotFound is returned when a line item references a missing product
	ErrProductNotFound = errors.New("Không tìm thấy sản phẩm")
	// ErrDuplicateReference is returned when a reference code is reused
	ErrDuplicateReference = errors.New("Mã phiếu đã tồn tại")
	// ErrInsufficientStock is returned when an outbound quantity exceeds on-hand stock
	ErrInsufficientStock = errors.New("Số lượng tồn kho không đủ")
	// ErrCapacityExceeded is returned when an import would overflow the warehouse
	ErrCapacityExceeded = errors.New("Vượt quá sức chứa của kho")
)

// Service is the single write path for on-hand quantity and its history.
// Every mutation runs inside one transaction: the quantity update, the
// ledger append and the warehouse usage update commit or roll back together.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// BatchItem is one line of an import or export batch
type BatchItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// ImportRequest represents a bulk inbound batch
type ImportRequest struct {
	WarehouseID uint        `json:"warehouse_id" binding:"required"`
	SupplierID  *uint       `json:"supplier_id"`
	Notes       string      `json:"notes"`
	Products    []BatchItem `json:"products" binding:"required,min=1,dive"`
}

// ExportRequest represents a bulk outbound batch
type ExportRequest struct {
	WarehouseID  uint        `json:"warehouse_id" binding:"required"`
	CustomerName string      `json:"customer_name" binding:"required"`
	Notes        string      `json:"notes"`
	Products     []BatchItem `json:"products" binding:"required,min=1,dive"`
}

// GetQuantity returns the on-hand quantity for a product in a warehouse.
// A missing row means zero, not an error.
func (s *Service) GetQuantity(productID, warehouseID uint) (int, error) {
	var inv Inventory
	err := s.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read inventory: %w", err)
	}
	return inv.Quantity, nil
}

// ImportStock applies a bulk inbound batch. The capacity guard is part of the
// warehouse update itself: the usage increment only succeeds when the result
// stays within capacity, so concurrent imports cannot race past the limit.
// All line items share one reference code.
func (s *Service) ImportStock(req *ImportRequest, userID uint) (string, error) {
	wh, err := s.loadWarehouse(req.WarehouseID)
	if err != nil {
		return "", err
	}

	total := 0
	for _, item := range req.Products {
		if item.Quantity <= 0 {
			return "", fmt.Errorf("số lượng phải lớn hơn 0")
		}
		total += item.Quantity
	}

	if err := s.checkProductsExist(req.Products); err != nil {
		return "", err
	}

	products := mergeBatchLines(req.Products)

	// the ledger stores the supplier name as a snapshot
	supplierName := ""
	if req.SupplierID != nil {
		var sup supplier.Supplier
		if err := s.db.First(&sup, *req.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", supplier.ErrNotFound
			}
			return "", fmt.Errorf("failed to load supplier: %w", err)
		}
		supplierName = sup.Name
	}

	reference := generateReference("NK")
	now := time.Now().UTC()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reserveCapacity(tx, wh, total); err != nil {
			return err
		}

		if err := s.checkReferenceFree(tx, reference); err != nil {
			return err
		}

		for _, item := range products {
			if err := s.AdjustQuantity(tx, item.ProductID, item.Quantity, req.WarehouseID); err != nil {
				return err
			}

			txn := &InventoryTransaction{
				ReferenceID:     reference,
				ProductID:       item.ProductID,
				WarehouseID:     req.WarehouseID,
				Quantity:        item.Quantity,
				Type:            TypeImport,
				SupplierName:    supplierName,
				Notes:           req.Notes,
				CreatedBy:       userID,
				TransactionDate: now,
			}
			if err := s.RecordTransaction(tx, txn); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return reference, nil
}

// ExportStock applies a bulk outbound batch. Items are processed in array
// order, so within one batch later lines observe the decrements of earlier
// ones. Any insufficient line rolls back the whole batch.
func (s *Service) ExportStock(req *ExportRequest, userID uint) (string, error) {
	if _, err := s.loadWarehouse(req.WarehouseID); err != nil {
		return "", err
	}

	total := 0
	for _, item := range req.Products {
		if item.Quantity <= 0 {
			return "", fmt.Errorf("số lượng phải lớn hơn 0")
		}
		total += item.Quantity
	}

	if err := s.checkProductsExist(req.Products); err != nil {
		return "", err
	}

	products := mergeBatchLines(req.Products)
	reference := generateReference("XK")
	now := time.Now().UTC()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferenceFree(tx, reference); err != nil {
			return err
		}

		for _, item := range products {
			if err := s.AdjustQuantity(tx, item.ProductID, -item.Quantity, req.WarehouseID); err != nil {
				return err
			}

			txn := &InventoryTransaction{
				ReferenceID:     reference,
				ProductID:       item.ProductID,
				WarehouseID:     req.WarehouseID,
				Quantity:        item.Quantity,
				Type:            TypeExport,
				CustomerName:    req.CustomerName,
				Notes:           req.Notes,
				CreatedBy:       userID,
				TransactionDate: now,
			}
			if err := s.RecordTransaction(tx, txn); err != nil {
				return err
			}
		}

		// Release the exported quantity from the usage running total
		if err := tx.Model(&warehouse.Warehouse{}).
			Where("id = ?", req.WarehouseID).
			Update("current_usage", gorm.Expr("current_usage - ?", total)).Error; err != nil {
			return fmt.Errorf("failed to update warehouse usage: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return reference, nil
}

// AdjustQuantity applies a signed delta to the on-hand quantity of one
// product/warehouse pair inside the caller's transaction. The non-negative
// bound is checked by the update predicate, not a prior read: RowsAffected
// zero on a negative delta means the stock was insufficient.
func (s *Service) AdjustQuantity(tx *gorm.DB, productID uint, delta int, warehouseID uint) error {
	result := tx.Model(&Inventory{}).
		Where("product_id = ? AND warehouse_id = ? AND quantity + ? >= 0", productID, warehouseID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust inventory: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No row updated: either the pair has no inventory row yet, or the
	// delta would push an existing row negative.
	if delta < 0 {
		current := 0
		var inv Inventory
		if err := tx.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error; err == nil {
			current = inv.Quantity
		}
		return fmt.Errorf("%w: sản phẩm %d tại kho %d (tồn: %d, yêu cầu: %d)",
			ErrInsufficientStock, productID, warehouseID, current, -delta)
	}

	inv := &Inventory{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    delta,
	}
	if err := tx.Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create inventory row: %w", err)
	}
	return nil
}

// RecordTransaction appends one immutable ledger row inside the caller's
// transaction. The unique index on (reference_id, product_id) is the
// authoritative duplicate guard.
func (s *Service) RecordTransaction(tx *gorm.DB, txn *InventoryTransaction) error {
	if txn.Quantity <= 0 {
		return fmt.Errorf("transaction quantity must be positive")
	}
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = time.Now().UTC()
	}

	var existing InventoryTransaction
	err := tx.Where("reference_id = ? AND product_id = ?", txn.ReferenceID, txn.ProductID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateReference, txn.ReferenceID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check reference: %w", err)
	}

	if err := tx.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateReference, txn.ReferenceID)
		}
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// reserveCapacity increments the warehouse running usage. The bound check is
// the update predicate itself; zero rows affected means another import got
// there first or the batch does not fit.
func (s *Service) reserveCapacity(tx *gorm.DB, wh *warehouse.Warehouse, total int) error {
	result := tx.Model(&warehouse.Warehouse{}).
		Where("id = ? AND current_usage + ? <= capacity", wh.ID, total).
		Update("current_usage", gorm.Expr("current_usage + ?", total))
	if result.Error != nil {
		return fmt.Errorf("failed to update warehouse usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var fresh warehouse.Warehouse
		current, capacity := wh.CurrentUsage, wh.Capacity
		if err := tx.First(&fresh, wh.ID).Error; err == nil {
			current, capacity = fresh.CurrentUsage, fresh.Capacity
		}
		return fmt.Errorf("%w: đang chứa %d, nhập thêm %d, sức chứa %d",
			ErrCapacityExceeded, current, total, capacity)
	}
	return nil
}

// checkReferenceFree is a fast-path duplicate check for a whole batch; the
// composite unique index remains the real guard.
func (s *Service) checkReferenceFree(tx *gorm.DB, reference string) error {
	var count int64
	if err := tx.Model(&InventoryTransaction{}).Where("reference_id = ?", reference).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check reference: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateReference, reference)
	}
	return nil
}

func (s *Service) loadWarehouse(id uint) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := s.db.First(&wh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	return &wh, nil
}

func (s *Service) checkProductsExist(items []BatchItem) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var count int64
	if err := s.db.Model(&product.Product{}).Where("id IN ?", ids).Distinct("id").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}

	unique := map[uint]struct{}{}
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if count != int64(len(unique)) {
		return ErrProductNotFound
	}
	return nil
}

// mergeBatchLines collapses repeated product lines into one line per product,
// summing their quantities and keeping first-seen order. A batch may name the
// same product more than once; the ledger stores one row per (reference,
// product) pair.
func mergeBatchLines(items []BatchItem) []BatchItem {
	merged := make([]BatchItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if at, ok := index[item.ProductID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// generateReference builds a human-readable batch code, e.g. NK20250901-1A2B3C4D
func generateReference(prefix string) string {
	return fmt.Sprintf("%s%s-%s",
		prefix,
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)
}
