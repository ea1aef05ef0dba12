// internal/domain/inventory/entity.go
package inventory

import (
	"time"
)

// TransactionType represents the direction of a stock movement
type TransactionType string

const (
	// TypeImport is an inbound movement (phiếu nhập)
	TypeImport TransactionType = "nhap"
	// TypeExport is an outbound movement (phiếu xuất)
	TypeExport TransactionType = "xuat"
)

// Inventory holds the on-hand quantity for one product in one warehouse.
// The row is created on the first inbound movement and updated in place
// thereafter. Quantity never goes below zero; the conditional updates in
// the service enforce that as part of the write itself.
type Inventory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse" json:"product_id"`
	WarehouseID uint      `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse" json:"warehouse_id"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for Inventory
func (Inventory) TableName() string {
	return "inventories"
}

// InventoryTransaction is an append-only ledger row. Quantity is always
// positive; the sign is implied by Type. One batch reference maps to N rows,
// one per product, so uniqueness is enforced on (reference_id, product_id).
type InventoryTransaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ReferenceID     string          `gorm:"not null;size:40;uniqueIndex:idx_txn_reference_product" json:"reference_id"`
	ProductID       uint            `gorm:"not null;uniqueIndex:idx_txn_reference_product" json:"product_id"`
	WarehouseID     uint            `gorm:"not null;index" json:"warehouse_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Type            TransactionType `gorm:"not null;size:10;index" json:"type"`
	SupplierName    string          `gorm:"size:150" json:"supplier_name,omitempty"`
	CustomerName    string          `gorm:"size:150" json:"customer_name,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       uint            `gorm:"index" json:"created_by"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
}

// TableName overrides the table name for InventoryTransaction
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// SignedQuantity returns the quantity with the sign implied by the type
func (t *InventoryTransaction) SignedQuantity() int {
	if t.Type == TypeExport {
		return -t.Quantity
	}
	return t.Quantity
}
