// internal/domain/inventory/query.go
package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// InventoryRow is an inventory row joined with the product name for listings
type InventoryRow struct {
	ProductID   uint      `json:"product_id"`
	ProductCode *string   `json:"product_code"`
	ProductName string    `json:"product_name"`
	WarehouseID uint      `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListRequest represents ledger query parameters
type TransactionListRequest struct {
	Page        int             `form:"page,default=1"`
	Limit       int             `form:"limit,default=20"`
	Type        TransactionType `form:"type"`
	WarehouseID uint            `form:"warehouseId"`
	StartDate   string          `form:"startDate"` // YYYY-MM-DD
	EndDate     string          `form:"endDate"`   // YYYY-MM-DD
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents ledger rows with pagination
type TransactionListResponse struct {
	Transactions []InventoryTransaction `json:"transactions"`
	Pagination   Pagination             `json:"pagination"`
}

// ListInventory lists on-hand rows, optionally restricted to one warehouse,
// with the product name joined in.
func (s *Service) ListInventory(warehouseID *uint) ([]InventoryRow, error) {
	var rows []InventoryRow

	query := s.db.Table("inventories").
		Select("inventories.product_id, products.code AS product_code, products.name AS product_name, " +
			"inventories.warehouse_id, inventories.quantity, inventories.updated_at").
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Order("inventories.warehouse_id ASC, products.name ASC")

	if warehouseID != nil {
		query = query.Where("inventories.warehouse_id = ?", *warehouseID)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return rows, nil
}

// ListTransactions returns ledger rows matching the filters, newest first
func (s *Service) ListTransactions(req *TransactionListRequest) (*TransactionListResponse, error) {
	query, err := s.transactionQuery(req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var transactions []InventoryTransaction
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("transaction_date DESC, id DESC").
		Offset(offset).Limit(req.Limit).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &TransactionListResponse{
		Transactions: transactions,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// WriteTransactionsCSV streams all ledger rows matching the filters as CSV
func (s *Service) WriteTransactionsCSV(w io.Writer, req *TransactionListRequest) error {
	query, err := s.transactionQuery(req)
	if err != nil {
		return err
	}

	var transactions []InventoryTransaction
	if err := query.Order("transaction_date DESC, id DESC").Find(&transactions).Error; err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"reference_id", "type", "product_id", "warehouse_id", "quantity", "supplier_name", "customer_name", "notes", "transaction_date"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.ReferenceID,
			string(t.Type),
			strconv.FormatUint(uint64(t.ProductID), 10),
			strconv.FormatUint(uint64(t.WarehouseID), 10),
			strconv.Itoa(t.Quantity),
			t.SupplierName,
			t.CustomerName,
			t.Notes,
			t.TransactionDate.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *Service) transactionQuery(req *TransactionListRequest) (*gorm.DB, error) {
	query := s.db.Model(&InventoryTransaction{})

	if req.Type != "" {
		if req.Type != TypeImport && req.Type != TypeExport {
			return nil, fmt.Errorf("invalid transaction type: %s", req.Type)
		}
		query = query.Where("type = ?", req.Type)
	}

	if req.WarehouseID > 0 {
		query = query.Where("warehouse_id = ?", req.WarehouseID)
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %s", req.StartDate)
		}
		query = query.Where("transaction_date >= ?", start)
	}

	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %s", req.EndDate)
		}
		// Inclusive of the whole end day
		query = query.Where("transaction_date < ?", end.AddDate(0, 0, 1))
	}

	return query, nil
}
