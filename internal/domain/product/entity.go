// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a stocked product. Code is the human-facing custom
// identifier and must be unique when present.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        *string         `gorm:"uniqueIndex;size:30" json:"code"`
	Name        string          `gorm:"not null;size:150" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Category    string          `gorm:"size:50;index" json:"category"`
	Brand       string          `gorm:"size:50;index" json:"brand"`
	SupplierID  *uint           `gorm:"index" json:"supplier_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Supplier *supplier.Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}
