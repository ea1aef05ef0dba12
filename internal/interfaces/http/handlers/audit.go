// internal/interfaces/http/handlers/audit.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/audit"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/warehouse"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// AuditHandler handles inventory audit endpoints
type AuditHandler struct {
	auditService *audit.Service
	config       *config.Config
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(db *gorm.DB, cfg *config.Config) *AuditHandler {
	return &AuditHandler{
		auditService: audit.NewService(db, cfg),
		config:       cfg,
	}
}

// GetAudits handles GET /inventory/audits
func (h *AuditHandler) GetAudits(c *gin.Context) {
	var req audit.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Tham số không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	response, err := h.auditService.GetAudits(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải danh sách phiếu kiểm kê",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetAudit handles GET /inventory/audits/:id
func (h *AuditHandler) GetAudit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	found, err := h.auditService.GetAudit(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, audit.ErrNotFound) {
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

// CreateAudit handles POST /inventory/audits
func (h *AuditHandler) CreateAudit(c *gin.Context) {
	var req audit.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dữ liệu không hợp lệ",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	created, err := h.auditService.CreateAudit(&req, userID)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, audit.ErrDuplicateCode):
			status = http.StatusConflict
		case errors.Is(err, warehouse.ErrNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo phiếu kiểm kê thành công",
		"data":    created,
	})
}

// DeleteAudit handles DELETE /inventory/audits/:id
func (h *AuditHandler) DeleteAudit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ID không hợp lệ",
		})
		return
	}

	if err := h.auditService.DeleteAudit(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, audit.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Xóa phiếu kiểm kê thành công",
	})
}
