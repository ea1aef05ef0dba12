// internal/domain/audit/entity.go
package audit

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the lifecycle state of an audit
type Status string

const (
	StatusPending Status = "pending"
)

// Audit is a stocktake header. TotalDiscrepancy equals the sum of its
// items' discrepancies at creation time. An audit is a report artifact;
// it never adjusts the ledger.
type Audit struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Code             string         `gorm:"uniqueIndex;not null;size:40" json:"code"`
	AuditDate        time.Time      `gorm:"not null" json:"audit_date"`
	WarehouseID      uint           `gorm:"not null;index" json:"warehouse_id"`
	CreatedBy        uint           `gorm:"index" json:"created_by"`
	TotalDiscrepancy int            `gorm:"not null;default:0" json:"total_discrepancy"`
	Status           Status         `gorm:"not null;size:20;default:'pending'" json:"status"`
	Notes            string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []AuditItem `gorm:"foreignKey:AuditID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name for Audit
func (Audit) TableName() string {
	return "audits"
}

// AuditItem compares the system quantity snapshot against the counted
// quantity for one product. Discrepancy = system − actual.
type AuditItem struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AuditID        uint   `gorm:"not null;index" json:"audit_id"`
	ProductID      uint   `gorm:"not null;index" json:"product_id"`
	SystemQuantity int    `gorm:"not null" json:"system_quantity"`
	ActualQuantity int    `gorm:"not null" json:"actual_quantity"`
	Discrepancy    int    `gorm:"not null" json:"discrepancy"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`
}

// TableName overrides the table name for AuditItem
func (AuditItem) TableName() string {
	return "audit_items"
}
