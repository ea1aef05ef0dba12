package sales

import (
	"strings"
	"testing"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SalesOrder{}, &SalesOrderItem{}))

	return NewService(db, &config.Config{})
}

func newOrder(t *testing.T, svc *Service) *SalesOrder {
	t.Helper()
	created, err := svc.CreateSalesOrder(&CreateSalesOrderRequest{
		CustomerName: "Nguyễn Văn A",
		Items: []SalesItemRequest{
			{ProductID: 1, Quantity: 4, UnitPrice: decimal.NewFromInt(25000)},
		},
	}, 1)
	require.NoError(t, err)
	return created
}

func TestCreateSalesOrder(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.CreateSalesOrder(&CreateSalesOrderRequest{
		CustomerName: "Nguyễn Văn A",
		Notes:        "Giao trong ngày",
		Items: []SalesItemRequest{
			{ProductID: 1, Quantity: 4, UnitPrice: decimal.NewFromInt(25000)},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromFloat(9999.99)},
		},
	}, 3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Code, "BH"))
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, uint(3), created.UserID)
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromFloat(109999.99)),
		"total was %s", created.TotalAmount)
}

func TestCreateSalesOrderNegativePrice(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.CreateSalesOrder(&CreateSalesOrderRequest{
		CustomerName: "Nguyễn Văn A",
		Items:        []SalesItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	}, 1)
	assert.Error(t, err)
}

func TestUpdateStatusCompletes(t *testing.T) {
	svc := setupTestService(t)
	created := newOrder(t, svc)

	completed, err := svc.UpdateStatus(created.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	// completed is terminal
	_, err = svc.UpdateStatus(created.ID, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusCancelledIsTerminal(t *testing.T) {
	svc := setupTestService(t)
	created := newOrder(t, svc)

	_, err := svc.UpdateStatus(created.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(created.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := setupTestService(t)
	created := newOrder(t, svc)

	_, err := svc.UpdateStatus(created.ID, Status("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetSalesOrdersFiltersByStatus(t *testing.T) {
	svc := setupTestService(t)

	first := newOrder(t, svc)
	newOrder(t, svc)

	_, err := svc.UpdateStatus(first.ID, StatusCompleted)
	require.NoError(t, err)

	pending, err := svc.GetSalesOrders(&SalesOrderListRequest{Status: StatusPending})
	require.NoError(t, err)
	require.Len(t, pending.SalesOrders, 1)
	assert.Equal(t, int64(1), pending.Pagination.Total)

	_, err = svc.GetSalesOrders(&SalesOrderListRequest{Status: Status("shipped")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteSalesOrderRemovesItems(t *testing.T) {
	svc := setupTestService(t)
	created := newOrder(t, svc)

	require.NoError(t, svc.DeleteSalesOrder(created.ID))

	_, err := svc.GetSalesOrder(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var itemCount int64
	require.NoError(t, svc.db.Model(&SalesOrderItem{}).Where("sales_order_id = ?", created.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}
