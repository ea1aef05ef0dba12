// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/supplier"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// InventoryHandler handles stock state, batch movements and the ledger
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg),
		config:           cfg,
	}
}

// GetInventory handles GET /inventory
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	var warehouseID *uint
	if param := c.Query("warehouse"); param != "" {
		id, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "ID kho không hợp lệ",
			})
			return
		}
		value := uint(id)
		warehouseID = &value
	}

	rows, err := h.inventoryService.ListInventory(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải dữ liệu tồn kho",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
	})
}

// GetQuantity handles GET /inventory/quantity
func (h *InventoryHandler) GetQuantity(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Query("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID sản phẩm không hợp lệ",
		})
		return
	}

	warehouseID, err := strconv.ParseUint(c.Query("warehouseId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID kho không hợp lệ",
		})
		return
	}

	quantity, err := h.inventoryService.GetQuantity(uint(productID), uint(warehouseID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải số lượng tồn kho",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"product_id":   uint(productID),
			"warehouse_id": uint(warehouseID),
			"quantity":     quantity,
		},
	})
}

// ImportStock handles POST /inventory/import
func (h *InventoryHandler) ImportStock(c *gin.Context) {
	var req inventory.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	reference, err := h.inventoryService.ImportStock(&req, userID)
	if err != nil {
		c.JSON(movementErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Nhập kho thành công",
		"reference_id": reference,
	})
}

// ExportStock handles POST /inventory/export
func (h *InventoryHandler) ExportStock(c *gin.Context) {
	var req inventory.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	reference, err := h.inventoryService.ExportStock(&req, userID)
	if err != nil {
		c.JSON(movementErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Xuất kho thành công",
		"reference_id": reference,
	})
}

// GetTransactions handles GET /inventory/transactions
func (h *InventoryHandler) GetTransactions(c *gin.Context) {
	var req inventory.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	response, err := h.inventoryService.ListTransactions(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải lịch sử giao dịch",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// ExportTransactionsCSV handles GET /inventory/transactions/export
func (h *InventoryHandler) ExportTransactionsCSV(c *gin.Context) {
	var req inventory.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("giao-dich-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.inventoryService.WriteTransactionsCSV(c.Writer, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể xuất tệp CSV",
		})
		return
	}
}

// movementErrorStatus maps stock movement failures to HTTP status codes
func movementErrorStatus(err error) int {
	switch {
	case errors.Is(err, inventory.ErrWarehouseNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, supplier.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateReference):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrCapacityExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
