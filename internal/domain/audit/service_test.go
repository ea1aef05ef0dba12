package audit

import (
	"testing"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) (*Service, *warehouse.Warehouse) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&warehouse.Warehouse{}, &Audit{}, &AuditItem{}))

	wh := &warehouse.Warehouse{Code: "KHO-01", Name: "Kho chính", Capacity: 1000}
	require.NoError(t, db.Create(wh).Error)

	return NewService(db, &config.Config{}), wh
}

func TestCreateAudit(t *testing.T) {
	svc, wh := setupTestService(t)

	created, err := svc.CreateAudit(&CreateAuditRequest{
		Code:        "KK2025-001",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items: []AuditItemRequest{
			{ProductID: 1, SystemQuantity: 50, ActualQuantity: 48},
			{ProductID: 2, SystemQuantity: 20, ActualQuantity: 25},
		},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	require.Len(t, created.Items, 2)

	// discrepancy = system − actual
	assert.Equal(t, 2, created.Items[0].Discrepancy)
	assert.Equal(t, -5, created.Items[1].Discrepancy)
	assert.Equal(t, -3, created.TotalDiscrepancy)
}

func TestCreateAuditDuplicateCode(t *testing.T) {
	svc, wh := setupTestService(t)

	req := &CreateAuditRequest{
		Code:        "KK2025-002",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items:       []AuditItemRequest{{ProductID: 1, SystemQuantity: 10, ActualQuantity: 10}},
	}

	_, err := svc.CreateAudit(req, 1)
	require.NoError(t, err)

	_, err = svc.CreateAudit(req, 1)
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestCreateAuditBadDate(t *testing.T) {
	svc, wh := setupTestService(t)

	_, err := svc.CreateAudit(&CreateAuditRequest{
		Code:        "KK2025-003",
		Date:        "01/09/2025",
		WarehouseID: wh.ID,
		Items:       []AuditItemRequest{{ProductID: 1}},
	}, 1)
	assert.Error(t, err)
}

func TestCreateAuditWarehouseNotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.CreateAudit(&CreateAuditRequest{
		Code:        "KK2025-004",
		Date:        "2025-09-01",
		WarehouseID: 999,
		Items:       []AuditItemRequest{{ProductID: 1}},
	}, 1)
	assert.ErrorIs(t, err, warehouse.ErrNotFound)
}

func TestGetAuditsFiltersByWarehouse(t *testing.T) {
	svc, wh := setupTestService(t)

	_, err := svc.CreateAudit(&CreateAuditRequest{
		Code:        "KK2025-005",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items:       []AuditItemRequest{{ProductID: 1, SystemQuantity: 3, ActualQuantity: 3}},
	}, 1)
	require.NoError(t, err)

	matched, err := svc.GetAudits(&AuditListRequest{WarehouseID: wh.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched.Pagination.Total)

	empty, err := svc.GetAudits(&AuditListRequest{WarehouseID: 999})
	require.NoError(t, err)
	assert.Empty(t, empty.Audits)
}

func TestDeleteAudit(t *testing.T) {
	svc, wh := setupTestService(t)

	created, err := svc.CreateAudit(&CreateAuditRequest{
		Code:        "KK2025-006",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items:       []AuditItemRequest{{ProductID: 1, SystemQuantity: 3, ActualQuantity: 2}},
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAudit(created.ID))

	_, err = svc.GetAudit(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
