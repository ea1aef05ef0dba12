package inventory

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListInventory(t *testing.T) {
	svc, db := newTestService(t)
	wh1 := seedWarehouse(t, db, 1000)
	wh2 := seedWarehouse2(t, db)
	p := seedProduct(t, db, "Router")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh1.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 10}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ImportStock(&ImportRequest{
		WarehouseID: wh2.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 4}},
	}, 1)
	require.NoError(t, err)

	all, err := svc.ListInventory(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListInventory(&wh2.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, 4, scoped[0].Quantity)
	assert.Equal(t, "Router", scoped[0].ProductName)
}

func TestListTransactionsFilters(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	p := seedProduct(t, db, "Switch")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 50}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.ExportStock(&ExportRequest{
		WarehouseID:  wh.ID,
		CustomerName: "Khách lẻ",
		Products:     []BatchItem{{ProductID: p.ID, Quantity: 20}},
	}, 1)
	require.NoError(t, err)

	all, err := svc.ListTransactions(&TransactionListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.Total)

	imports, err := svc.ListTransactions(&TransactionListRequest{Type: TypeImport})
	require.NoError(t, err)
	require.Len(t, imports.Transactions, 1)
	assert.Equal(t, TypeImport, imports.Transactions[0].Type)

	none, err := svc.ListTransactions(&TransactionListRequest{WarehouseID: 999})
	require.NoError(t, err)
	assert.Empty(t, none.Transactions)
}

func TestListTransactionsRejectsBadType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListTransactions(&TransactionListRequest{Type: "unknown"})
	assert.Error(t, err)
}

func TestListTransactionsRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListTransactions(&TransactionListRequest{StartDate: "01/09/2025"})
	assert.Error(t, err)
}

func TestWriteTransactionsCSV(t *testing.T) {
	svc, db := newTestService(t)
	wh := seedWarehouse(t, db, 1000)
	sup := seedSupplier(t, db, "Công ty ABC")
	p := seedProduct(t, db, "Cáp mạng")

	_, err := svc.ImportStock(&ImportRequest{
		WarehouseID: wh.ID,
		SupplierID:  &sup.ID,
		Products:    []BatchItem{{ProductID: p.ID, Quantity: 15}},
	}, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTransactionsCSV(&buf, &TransactionListRequest{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2) // header + one row

	assert.Equal(t, "reference_id", records[0][0])
	assert.Equal(t, "nhap", records[1][1])
	assert.Equal(t, "15", records[1][4])
	assert.Equal(t, "Công ty ABC", records[1][5])
}

func seedWarehouse2(t *testing.T, db *gorm.DB) *warehouse.Warehouse {
	t.Helper()
	wh := &warehouse.Warehouse{
		Code:     "KHO-02",
		Name:     "Kho chi nhánh",
		Capacity: 500,
	}
	require.NoError(t, db.Create(wh).Error)
	return wh
}
