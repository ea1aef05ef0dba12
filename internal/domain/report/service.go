// internal/domain/report/service.go
package report

import (
	"fmt"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"gorm.io/gorm"
)

// Service provides read-only aggregations over the other domains
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardSummary is the headline numbers for the dashboard
type DashboardSummary struct {
	ProductCount   int64               `json:"product_count"`
	SupplierCount  int64               `json:"supplier_count"`
	WarehouseCount int64               `json:"warehouse_count"`
	TransferCount  int64               `json:"transfer_count"`
	TotalStock     int64               `json:"total_stock"`
	StockByType    map[string]int64    `json:"stock_by_type"`
	Warehouses     []WarehouseStock    `json:"warehouses"`
	RecentActivity []RecentTransaction `json:"recent_activity"`
}

// WarehouseStock is the aggregate on-hand quantity of one warehouse
type WarehouseStock struct {
	WarehouseID uint   `json:"warehouse_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	TotalStock  int64  `json:"total_stock"`
}

// RecentTransaction is a ledger row with the product name joined in
type RecentTransaction struct {
	ReferenceID     string    `json:"reference_id"`
	Type            string    `json:"type"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	TransactionDate time.Time `json:"transaction_date"`
}

// MovementTotals sums inbound and outbound quantity over a date range
type MovementTotals struct {
	Inbound  int64 `json:"inbound"`
	Outbound int64 `json:"outbound"`
}

// GetDashboard builds the dashboard summary
func (s *Service) GetDashboard() (*DashboardSummary, error) {
	summary := &DashboardSummary{
		StockByType: map[string]int64{},
	}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"products", &summary.ProductCount},
		{"suppliers", &summary.SupplierCount},
		{"warehouses", &summary.WarehouseCount},
		{"transfers", &summary.TransferCount},
	}
	for _, c := range counts {
		if err := s.db.Table(c.table).Where("deleted_at IS NULL").Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	if err := s.db.Model(&inventory.Inventory{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalStock).Error; err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}

	var typeTotals []struct {
		Type  string
		Total int64
	}
	if err := s.db.Model(&inventory.InventoryTransaction{}).
		Select("type, COALESCE(SUM(quantity), 0) AS total").
		Group("type").
		Scan(&typeTotals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum transactions by type: %w", err)
	}
	for _, t := range typeTotals {
		summary.StockByType[t.Type] = t.Total
	}

	if err := s.db.Table("warehouses").
		Select("warehouses.id AS warehouse_id, warehouses.code, warehouses.name, warehouses.capacity, " +
			"COALESCE(SUM(inventories.quantity), 0) AS total_stock").
		Joins("LEFT JOIN inventories ON inventories.warehouse_id = warehouses.id").
		Where("warehouses.deleted_at IS NULL").
		Group("warehouses.id, warehouses.code, warehouses.name, warehouses.capacity").
		Order("warehouses.code ASC").
		Scan(&summary.Warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate warehouse stock: %w", err)
	}

	if err := s.db.Table("inventory_transactions").
		Select("inventory_transactions.reference_id, inventory_transactions.type, products.name AS product_name, " +
			"inventory_transactions.quantity, inventory_transactions.transaction_date").
		Joins("JOIN products ON products.id = inventory_transactions.product_id").
		Order("inventory_transactions.transaction_date DESC, inventory_transactions.id DESC").
		Limit(10).
		Scan(&summary.RecentActivity).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return summary, nil
}

// LowStockItem is a product/warehouse pair at or below the threshold
type LowStockItem struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	WarehouseID uint   `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// GetLowStock lists product/warehouse pairs at or below the threshold
func (s *Service) GetLowStock(threshold int) ([]LowStockItem, error) {
	if threshold < 0 {
		threshold = 0
	}

	var items []LowStockItem
	if err := s.db.Table("inventories").
		Select("inventories.product_id, products.name AS product_name, inventories.warehouse_id, inventories.quantity").
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Where("inventories.quantity <= ?", threshold).
		Order("inventories.quantity ASC").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load low stock items: %w", err)
	}
	return items, nil
}

// GetMovementTotals sums inbound and outbound quantities over a date range
func (s *Service) GetMovementTotals(start, end time.Time) (*MovementTotals, error) {
	totals := &MovementTotals{}

	query := s.db.Model(&inventory.InventoryTransaction{}).
		Where("transaction_date >= ? AND transaction_date < ?", start, end)

	if err := query.Session(&gorm.Session{}).
		Where("type = ?", inventory.TypeImport).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.Inbound).Error; err != nil {
		return nil, fmt.Errorf("failed to sum inbound: %w", err)
	}

	if err := query.Session(&gorm.Session{}).
		Where("type = ?", inventory.TypeExport).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.Outbound).Error; err != nil {
		return nil, fmt.Errorf("failed to sum outbound: %w", err)
	}

	return totals, nil
}
