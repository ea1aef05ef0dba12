// internal/infrastructure/database/sqldb/migration.go
package sqldb

import (
	"fmt"
	"log"

	"github.com/hiennd325/QL-kho-sub000/internal/domain/audit"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/order"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/product"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/sales"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/transfer"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/user"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Base tables
		&user.User{},
		&supplier.Supplier{},
		&product.Product{},
		&warehouse.Warehouse{},

		// Stock state and ledger
		&inventory.Inventory{},
		&inventory.InventoryTransaction{},

		// Documents that reference the base tables
		&transfer.Transfer{},
		&transfer.TransferItem{},
		&order.Order{},
		&order.OrderItem{},
		&sales.SalesOrder{},
		&sales.SalesOrderItem{},
		&audit.Audit{},
		&audit.AuditItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// Ledger lookups by warehouse and date range
		"CREATE INDEX IF NOT EXISTS idx_txn_warehouse_date ON inventory_transactions(warehouse_id, transaction_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_txn_type_date ON inventory_transactions(type, transaction_date DESC)",

		// Stock lookups by warehouse
		"CREATE INDEX IF NOT EXISTS idx_inventory_warehouse ON inventories(warehouse_id)",

		// Document listings
		"CREATE INDEX IF NOT EXISTS idx_transfers_status ON transfers(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_orders_status_created ON sales_orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audits_warehouse_date ON audits(warehouse_id, audit_date DESC)",

		// Product filters
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}

	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Username: "admin",
		Password: string(hashedPassword),
		Role:     user.RoleAdmin,
		Email:    "admin@example.com",
		IsActive: true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin (password: admin123)")
	return nil
}
