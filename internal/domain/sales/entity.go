// internal/domain/sales/entity.go
package sales

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents a sales order status
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether the value is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// SalesOrder is an outbound order for a customer. TotalAmount equals the
// sum of item quantity × unit price at creation; unit prices are snapshots.
type SalesOrder struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Code         string          `gorm:"uniqueIndex;not null;size:40" json:"code"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	CustomerName string          `gorm:"not null;size:150" json:"customer_name"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Status       Status          `gorm:"not null;size:20;default:'pending'" json:"status"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []SalesOrderItem `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name for SalesOrder
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem is one product line with its price captured at order time
type SalesOrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SalesOrderID uint            `gorm:"not null;index" json:"sales_order_id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
}

// TableName overrides the table name for SalesOrderItem
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// Extension returns quantity × unit price for the line
func (i *SalesOrderItem) Extension() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
