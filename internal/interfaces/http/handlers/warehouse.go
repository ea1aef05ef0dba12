// internal/interfaces/http/handlers/warehouse.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	warehouseService *warehouse.Service
	config           *config.Config
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(db *gorm.DB, cfg *config.Config) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouse.NewService(db, cfg),
		config:           cfg,
	}
}

// GetWarehouses handles GET /warehouses
func (h *WarehouseHandler) GetWarehouses(c *gin.Context) {
	var req warehouse.WarehouseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	response, err := h.warehouseService.GetWarehouses(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải danh sách kho",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetWarehouse handles GET /warehouses/:id
func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	found, err := h.warehouseService.GetWarehouse(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, warehouse.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": found,
	})
}

// CreateWarehouse handles POST /warehouses
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req warehouse.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	created, err := h.warehouseService.CreateWarehouse(&req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, warehouse.ErrDuplicateCode) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo kho thành công",
		"data":    created,
	})
}

// UpdateWarehouse handles PUT /warehouses/:id
func (h *WarehouseHandler) UpdateWarehouse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	var req warehouse.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.warehouseService.UpdateWarehouse(uint(id), &req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, warehouse.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật kho thành công",
		"data":    updated,
	})
}

// DeleteWarehouse handles DELETE /warehouses/:id
func (h *WarehouseHandler) DeleteWarehouse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	if err := h.warehouseService.DeleteWarehouse(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, warehouse.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Xóa kho thành công",
	})
}

// RecomputeUsage handles POST /warehouses/:id/recompute
func (h *WarehouseHandler) RecomputeUsage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	updated, err := h.warehouseService.RecomputeUsage(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, warehouse.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đồng bộ sức chứa thành công",
		"data":    updated,
	})
}
