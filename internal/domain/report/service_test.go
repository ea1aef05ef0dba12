package report

import (
	"testing"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/product"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/transfer"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	svc       *Service
	stock     *inventory.Service
	warehouse *warehouse.Warehouse
	products  []product.Product
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&supplier.Supplier{},
		&product.Product{},
		&warehouse.Warehouse{},
		&inventory.Inventory{},
		&inventory.InventoryTransaction{},
		&transfer.Transfer{},
		&transfer.TransferItem{},
	))

	cfg := &config.Config{}

	wh := &warehouse.Warehouse{Code: "KHO-01", Name: "Kho A", Capacity: 10000}
	require.NoError(t, db.Create(wh).Error)

	products := []product.Product{
		{Name: "Gạo ST25", Category: "Thực phẩm", Price: decimal.NewFromInt(35000)},
		{Name: "Đường", Category: "Thực phẩm", Price: decimal.NewFromInt(20000)},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}

	return &testEnv{
		svc:       NewService(db, cfg),
		stock:     inventory.NewService(db, cfg),
		warehouse: wh,
		products:  products,
	}
}

func TestGetDashboard(t *testing.T) {
	env := setupEnv(t)

	_, err := env.stock.ImportStock(&inventory.ImportRequest{
		WarehouseID: env.warehouse.ID,
		Products: []inventory.BatchItem{
			{ProductID: env.products[0].ID, Quantity: 80},
			{ProductID: env.products[1].ID, Quantity: 20},
		},
	}, 1)
	require.NoError(t, err)

	_, err = env.stock.ExportStock(&inventory.ExportRequest{
		WarehouseID:  env.warehouse.ID,
		CustomerName: "Khách lẻ",
		Products:     []inventory.BatchItem{{ProductID: env.products[0].ID, Quantity: 30}},
	}, 1)
	require.NoError(t, err)

	summary, err := env.svc.GetDashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.ProductCount)
	assert.Equal(t, int64(1), summary.WarehouseCount)
	assert.Equal(t, int64(0), summary.TransferCount)
	assert.Equal(t, int64(70), summary.TotalStock)
	assert.Equal(t, int64(100), summary.StockByType[string(inventory.TypeImport)])
	assert.Equal(t, int64(30), summary.StockByType[string(inventory.TypeExport)])

	require.Len(t, summary.Warehouses, 1)
	assert.Equal(t, "KHO-01", summary.Warehouses[0].Code)
	assert.Equal(t, int64(70), summary.Warehouses[0].TotalStock)

	require.Len(t, summary.RecentActivity, 3)
	assert.Equal(t, string(inventory.TypeExport), summary.RecentActivity[0].Type)
}

func TestGetDashboardEmptyDatabase(t *testing.T) {
	env := setupEnv(t)

	summary, err := env.svc.GetDashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalStock)
	assert.Empty(t, summary.StockByType)
	assert.Empty(t, summary.RecentActivity)
	require.Len(t, summary.Warehouses, 1)
	assert.Equal(t, int64(0), summary.Warehouses[0].TotalStock)
}

func TestGetLowStock(t *testing.T) {
	env := setupEnv(t)

	_, err := env.stock.ImportStock(&inventory.ImportRequest{
		WarehouseID: env.warehouse.ID,
		Products: []inventory.BatchItem{
			{ProductID: env.products[0].ID, Quantity: 5},
			{ProductID: env.products[1].ID, Quantity: 500},
		},
	}, 1)
	require.NoError(t, err)

	items, err := env.svc.GetLowStock(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, env.products[0].ID, items[0].ProductID)
	assert.Equal(t, "Gạo ST25", items[0].ProductName)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestGetMovementTotals(t *testing.T) {
	env := setupEnv(t)

	_, err := env.stock.ImportStock(&inventory.ImportRequest{
		WarehouseID: env.warehouse.ID,
		Products:    []inventory.BatchItem{{ProductID: env.products[0].ID, Quantity: 100}},
	}, 1)
	require.NoError(t, err)

	_, err = env.stock.ExportStock(&inventory.ExportRequest{
		WarehouseID:  env.warehouse.ID,
		CustomerName: "Khách lẻ",
		Products:     []inventory.BatchItem{{ProductID: env.products[0].ID, Quantity: 25}},
	}, 1)
	require.NoError(t, err)

	now := time.Now().UTC()
	totals, err := env.svc.GetMovementTotals(now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(100), totals.Inbound)
	assert.Equal(t, int64(25), totals.Outbound)

	// a window that ends before the activity sees nothing
	past, err := env.svc.GetMovementTotals(now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), past.Inbound)
	assert.Equal(t, int64(0), past.Outbound)
}
