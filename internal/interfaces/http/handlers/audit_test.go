package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/audit"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuditRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&warehouse.Warehouse{}, &audit.Audit{}, &audit.AuditItem{}))

	handler := NewAuditHandler(db, &config.Config{})
	router := gin.New()
	router.POST("/inventory/audits", handler.CreateAudit)
	return router, db
}

func postAudit(t *testing.T, router *gin.Engine, req *audit.CreateAuditRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/inventory/audits", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestCreateAuditHandler(t *testing.T) {
	router, db := setupAuditRouter(t)

	wh := &warehouse.Warehouse{Code: "KHO-01", Name: "Kho A", Capacity: 100}
	require.NoError(t, db.Create(wh).Error)

	w := postAudit(t, router, &audit.CreateAuditRequest{
		Code:        "KK-2025-001",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items:       []audit.AuditItemRequest{{ProductID: 1, SystemQuantity: 10, ActualQuantity: 8}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAuditHandlerWarehouseNotFound(t *testing.T) {
	router, _ := setupAuditRouter(t)

	w := postAudit(t, router, &audit.CreateAuditRequest{
		Code:        "KK-2025-001",
		Date:        "2025-09-01",
		WarehouseID: 999,
		Items:       []audit.AuditItemRequest{{ProductID: 1, SystemQuantity: 10, ActualQuantity: 8}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAuditHandlerDuplicateCode(t *testing.T) {
	router, db := setupAuditRouter(t)

	wh := &warehouse.Warehouse{Code: "KHO-01", Name: "Kho A", Capacity: 100}
	require.NoError(t, db.Create(wh).Error)

	req := &audit.CreateAuditRequest{
		Code:        "KK-2025-001",
		Date:        "2025-09-01",
		WarehouseID: wh.ID,
		Items:       []audit.AuditItemRequest{{ProductID: 1, SystemQuantity: 10, ActualQuantity: 8}},
	}
	assert.Equal(t, http.StatusCreated, postAudit(t, router, req).Code)
	assert.Equal(t, http.StatusConflict, postAudit(t, router, req).Code)
}
