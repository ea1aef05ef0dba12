// internal/domain/warehouse/entity.go
package warehouse

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a storage location. CurrentUsage is a denormalized
// running total of on-hand quantity, maintained by the stock operations
// inside their own transactions. Capacity is enforced at import time only.
type Warehouse struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"uniqueIndex;not null;size:20" json:"code"`
	Name         string         `gorm:"not null;size:100" json:"name"`
	Location     string         `gorm:"size:255" json:"location"`
	Capacity     int            `gorm:"not null;default:0" json:"capacity"`
	CurrentUsage int            `gorm:"not null;default:0" json:"current_usage"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Warehouse
func (Warehouse) TableName() string {
	return "warehouses"
}

// RemainingCapacity returns how much quantity can still be imported
func (w *Warehouse) RemainingCapacity() int {
	remaining := w.Capacity - w.CurrentUsage
	if remaining < 0 {
		return 0
	}
	return remaining
}
