// internal/interfaces/http/handlers/transfer.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/inventory"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/transfer"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// TransferHandler handles inter-warehouse transfer endpoints
type TransferHandler struct {
	transferService *transfer.Service
	config          *config.Config
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(db *gorm.DB, cfg *config.Config) *TransferHandler {
	return &TransferHandler{
		transferService: transfer.NewService(db, cfg),
		config:          cfg,
	}
}

// GetTransfers handles GET /transfers
func (h *TransferHandler) GetTransfers(c *gin.Context) {
	var req transfer.TransferListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	response, err := h.transferService.GetTransfers(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải danh sách phiếu chuyển kho",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetTransfer handles GET /transfers/:id
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	found, err := h.transferService.GetTransfer(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, transfer.ErrNotFound) {
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

// CreateTransfer handles POST /transfers
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req transfer.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	created, err := h.transferService.CreateTransfer(&req, userID)
	if err != nil {
		c.JSON(transferErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo phiếu chuyển kho thành công",
		"data":    created,
	})
}

// UpdateTransferStatus handles PUT /transfers/:id/status
func (h *TransferHandler) UpdateTransferStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	var req struct {
		Status transfer.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	updated, err := h.transferService.UpdateStatus(uint(id), req.Status, userID)
	if err != nil {
		c.JSON(transferErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật trạng thái thành công",
		"data":    updated,
	})
}

// DeleteTransfer handles DELETE /transfers/:id
func (h *TransferHandler) DeleteTransfer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	if err := h.transferService.DeleteTransfer(uint(id)); err != nil {
		c.JSON(transferErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Xóa phiếu chuyển kho thành công",
	})
}

// transferErrorStatus maps transfer failures to HTTP status codes
func transferErrorStatus(err error) int {
	switch {
	case errors.Is(err, transfer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transfer.ErrSameWarehouse),
		errors.Is(err, transfer.ErrInvalidStatus),
		errors.Is(err, transfer.ErrInvalidTransition),
		errors.Is(err, transfer.ErrDuplicateProduct),
		errors.Is(err, inventory.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
