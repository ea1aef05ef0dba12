// internal/interfaces/http/handlers/sales.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/sales"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SalesHandler handles sales order endpoints
type SalesHandler struct {
	salesService *sales.Service
	config       *config.Config
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(db *gorm.DB, cfg *config.Config) *SalesHandler {
	return &SalesHandler{
		salesService: sales.NewService(db, cfg),
		config:       cfg,
	}
}

// GetSalesOrders handles GET /sales
func (h *SalesHandler) GetSalesOrders(c *gin.Context) {
	var req sales.SalesOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	response, err := h.salesService.GetSalesOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải danh sách đơn bán hàng",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetSalesOrder handles GET /sales/:id
func (h *SalesHandler) GetSalesOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	found, err := h.salesService.GetSalesOrder(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sales.ErrNotFound) {
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

// CreateSalesOrder handles POST /sales
func (h *SalesHandler) CreateSalesOrder(c *gin.Context) {
	var req sales.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	created, err := h.salesService.CreateSalesOrder(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo đơn bán hàng thành công",
		"data":    created,
	})
}

// UpdateSalesOrderStatus handles PUT /sales/:id/status
func (h *SalesHandler) UpdateSalesOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	var req struct {
		Status sales.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.salesService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sales.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật trạng thái thành công",
		"data":    updated,
	})
}

// DeleteSalesOrder handles DELETE /sales/:id
func (h *SalesHandler) DeleteSalesOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	if err := h.salesService.DeleteSalesOrder(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sales.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Xóa đơn bán hàng thành công",
	})
}
