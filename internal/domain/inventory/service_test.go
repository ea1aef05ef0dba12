package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/product"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&supplier.Supplier{},
		&product.Product{},
		&warehouse.Warehouse{},
		&Inventory{},
		&InventoryTransaction{},
	)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewService(db, &config.Config{}), db
}

func seedWarehouse(t *testing.T, db *gorm.DB, capacity int) *warehouse.Warehouse {
	t.Helper()
	wh := &warehouse.Warehouse{
		Code:     "KHO-01",
		Name:     "Kho trung tâm",
		Capacity: capacity,
	}
	require.NoError(t, db.Create(wh).Error)
	return wh
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *supplier.Supplier {
	t.Helper()
	sup := &supplier.Supplier{
		Code: "NCC-01",
		Name: name,
	}
	require.NoError(t, db.Create(sup).Error)
	return sup
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *product.Product {
	t.Helper()
	p := &product.Product{
		Name:  name,
		Price: decimal.NewFromInt(1000),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestGetQuantityMissingRowIsZero(t *testing.T) {
	svc, _ := newTestService(t)

	quantity, err := svc.GetQuantity(42, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}

func TestImportStock(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	sup := seedSupplier(t, db, "Công ty ABC")
	p1 := seedProduct(t, db, "Bàn phím")
	p2 := seedProduct(t, db, "Chuột")

	reference, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		SupplierID:  &sup.ID,
		Products: []BatchItem{
			{ProductID: p1.ID, Quantity: 30},
			{ProductID: p2.ID, Quantity: 20},
		},
	}, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reference, "NK"))

	q1, err := svc.GetQuantity(p1.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, q1)

	q2, err := svc.GetQuantity(p2.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, q2)

	// Both line items share the reference code
	var txns []InventoryTransaction
	require.NoError(t, db.Where("reference_id = ?", reference).Find(&txns).Error)
	assert.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, TypeImport, txn.Type)
		assert.Equal(t, "Công ty ABC", txn.SupplierName)
	}

	var fresh warehouse.Warehouse
	require.NoError(t, db.First(&fresh, wh.ID).Error)
	assert.Equal(t, 50, fresh.CurrentUsage)
}

func TestImportStockCapacityExceeded(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 40)
	p := seedProduct(t, db, "Màn hình")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 50}},
	}, 1)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// Nothing committed
	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	var count int64
	require.NoError(t, db.Model(&InventoryTransaction{}).Count(&count).Error)
	assert.Zero(t, count)

	var fresh warehouse.Warehouse
	require.NoError(t, db.First(&fresh, wh.ID).Error)
	assert.Equal(t, 0, fresh.CurrentUsage)
}

func TestImportStockSecondBatchFillsToCapacity(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 100)
	p := seedProduct(t, db, "Ổ cứng")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 60}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 40}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 1}},
	}, 1)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestImportStockWarehouseNotFound(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Loa")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: 999,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 5}},
	}, 1)
	assert.ErrorIs(t, err, ErrWarehouseNotFound)
}

func TestImportStockProductNotFound(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 100)

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: 999, Quantity: 5}},
	}, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestImportStockSupplierNotFound(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 100)
	p := seedProduct(t, db, "Ổ cứng")

	missing := uint(999)
	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		SupplierID:  &missing,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 5}},
	}, 1)
	assert.ErrorIs(t, err, supplier.ErrNotFound)

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Zero(t, quantity)
}

func TestExportStock(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Máy in")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 100}},
	}, 1)
	require.NoError(t, err)

	reference, err := svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products:     []BatchItem{{ProductID: p.ID, Quantity: 30}},
	}, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reference, "XK"))

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, quantity)

	// Export releases usage
	var fresh warehouse.Warehouse
	require.NoError(t, db.First(&fresh, wh.ID).Error)
	assert.Equal(t, 70, fresh.CurrentUsage)
}

func TestExportStockInsufficient(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p1 := seedProduct(t, db, "Bàn")
	p2 := seedProduct(t, db, "Ghế")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products: []BatchItem{
			{ProductID: p1.ID, Quantity: 50},
			{ProductID: p2.ID, Quantity: 5},
		},
	}, 1)
	require.NoError(t, err)

	// Second line exceeds on-hand stock, the whole batch rolls back
	_, err = svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products: []BatchItem{
			{ProductID: p1.ID, Quantity: 10},
			{ProductID: p2.ID, Quantity: 8},
		},
	}, 1)
	require.ErrorIs(t, err, ErrInsufficientStock)

	q1, err := svc.GetQuantity(p1.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, q1)

	q2, err := svc.GetQuantity(p2.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, q2)

	var count int64
	require.NoError(t, db.Model(&InventoryTransaction{}).Where("type = ?", TypeExport).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExportStockMissingRowTreatedAsZero(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Tủ")

	_, err := svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products:     []BatchItem{{ProductID: p.ID, Quantity: 1}},
	}, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAdjustQuantityCreatesRowOnFirstInbound(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Đèn")

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.AdjustQuantity(tx, p.ID, 12, wh.ID)
	})
	require.NoError(t, err)

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, quantity)
}

func TestImportStockDuplicateLinesMerged(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Loa")

	reference, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products: []BatchItem{
			{ProductID: p.ID, Quantity: 10},
			{ProductID: p.ID, Quantity: 5},
		},
	}, 1)
	require.NoError(t, err)

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, quantity)

	// one ledger row per product, quantities summed
	var txns []InventoryTransaction
	require.NoError(t, db.Where("reference_id = ?", reference).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, 15, txns[0].Quantity)

	var fresh warehouse.Warehouse
	require.NoError(t, db.First(&fresh, wh.ID).Error)
	assert.Equal(t, 15, fresh.CurrentUsage)
}

func TestExportStockDuplicateLinesMerged(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Loa")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 100}},
	}, 1)
	require.NoError(t, err)

	reference, err := svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products: []BatchItem{
			{ProductID: p.ID, Quantity: 10},
			{ProductID: p.ID, Quantity: 5},
		},
	}, 1)
	require.NoError(t, err)

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, quantity)

	var txns []InventoryTransaction
	require.NoError(t, db.Where("reference_id = ?", reference).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, 15, txns[0].Quantity)

	// merged lines exceeding stock still reject the whole batch
	_, err = svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products: []BatchItem{
			{ProductID: p.ID, Quantity: 60},
			{ProductID: p.ID, Quantity: 50},
		},
	}, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	quantity, err = svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, quantity)
}

func TestRecordTransactionDuplicateReference(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Quạt")

	txn := &InventoryTransaction{
		ReferenceID:     "NK20250901-AAAA1111",
		ProductID:       p.ID,
		WarehouseID:     wh.ID,
		Quantity:        5,
		Type:            TypeImport,
		TransactionDate: time.Now().UTC(),
	}
	require.NoError(t, svc.RecordTransaction(db, txn))

	dup := &InventoryTransaction{
		ReferenceID:     "NK20250901-AAAA1111",
		ProductID:       p.ID,
		WarehouseID:     wh.ID,
		Quantity:        3,
		Type:            TypeImport,
		TransactionDate: time.Now().UTC(),
	}
	err := svc.RecordTransaction(db, dup)
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestRecordTransactionSameReferenceDifferentProduct(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p1 := seedProduct(t, db, "Két sắt")
	p2 := seedProduct(t, db, "Máy chiếu")

	first := &InventoryTransaction{
		ReferenceID: "NK20250901-BBBB2222",
		ProductID:   p1.ID,
		WarehouseID: wh.ID,
		Quantity:    5,
		Type:        TypeImport,
	}
	require.NoError(t, svc.RecordTransaction(db, first))

	// One batch reference covers several products
	second := &InventoryTransaction{
		ReferenceID: "NK20250901-BBBB2222",
		ProductID:   p2.ID,
		WarehouseID: wh.ID,
		Quantity:    7,
		Type:        TypeImport,
	}
	assert.NoError(t, svc.RecordTransaction(db, second))
}

func TestDuplicateLedgerRowTranslated(t *testing.T) {
	_, db := newTestService(t)

	row := InventoryTransaction{
		ReferenceID:     "NK20250901-AAAA1111",
		ProductID:       1,
		WarehouseID:     1,
		Quantity:        5,
		Type:            TypeImport,
		TransactionDate: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&row).Error)

	// the composite unique index rejects a second row for the same
	// (reference, product) pair and the driver error is translated
	dup := row
	dup.ID = 0
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestQuantityMatchesLedgerSum(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Ghế xoay")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 40}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products:     []BatchItem{{ProductID: p.ID, Quantity: 30}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 25}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products:     []BatchItem{{ProductID: p.ID, Quantity: 10}},
	}, 1)
	require.NoError(t, err)

	// on-hand quantity always equals the signed sum of the ledger
	var txns []InventoryTransaction
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", p.ID, wh.ID).Find(&txns).Error)

	sum := 0
	for _, txn := range txns {
		sum += txn.SignedQuantity()
	}

	quantity, err := svc.GetQuantity(p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, quantity)
	assert.Equal(t, 25, quantity)
}

func TestGenerateReferenceFormat(t *testing.T) {
	reference := generateReference("NK")

	assert.True(t, strings.HasPrefix(reference, "NK"))
	parts := strings.Split(reference, "-")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 2+8) // prefix + YYYYMMDD
	assert.Len(t, parts[1], 8)
	assert.Equal(t, strings.ToUpper(parts[1]), parts[1])
}

func TestSignedQuantity(t *testing.T) {
	in := InventoryTransaction{Quantity: 10, Type: TypeImport}
	out := InventoryTransaction{Quantity: 10, Type: TypeExport}

	assert.Equal(t, 10, in.SignedQuantity())
	assert.Equal(t, -10, out.SignedQuantity())
}
