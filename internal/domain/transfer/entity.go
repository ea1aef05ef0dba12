// internal/domain/transfer/entity.go
package transfer

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the lifecycle state of a transfer
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether the value is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Transfer moves stock between two warehouses. Stock does not move at
// creation; it moves atomically with the transition into "completed".
type Transfer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex;not null;size:40" json:"code"`
	FromWarehouseID uint           `gorm:"not null;index" json:"from_warehouse_id"`
	ToWarehouseID   uint           `gorm:"not null;index" json:"to_warehouse_id"`
	Status          Status         `gorm:"not null;size:20;default:'pending'" json:"status"`
	CreatedBy       uint           `gorm:"index" json:"created_by"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []TransferItem `gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name for Transfer
func (Transfer) TableName() string {
	return "transfers"
}

// TransferItem is one product line of a transfer
type TransferItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TransferID uint `gorm:"not null;index" json:"transfer_id"`
	ProductID  uint `gorm:"not null;index" json:"product_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`
}

// TableName overrides the table name for TransferItem
func (TransferItem) TableName() string {
	return "transfer_items"
}
