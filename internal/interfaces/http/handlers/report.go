// internal/interfaces/http/handlers/report.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/domain/report"
	"gorm.io/gorm"
)

// ReportHandler handles dashboard and reporting endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db, cfg),
		config:        cfg,
	}
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.reportService.GetDashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải dữ liệu tổng quan",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// GetLowStock handles GET /reports/low-stock
func (h *ReportHandler) GetLowStock(c *gin.Context) {
	threshold := 10
	if param := c.Query("threshold"); param != "" {
		value, err := strconv.Atoi(param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Ngưỡng không hợp lệ",
			})
			return
		}
		threshold = value
	}

	items, err := h.reportService.GetLowStock(threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải danh sách sắp hết hàng",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
	})
}

// GetMovementTotals handles GET /reports/movements
func (h *ReportHandler) GetMovementTotals(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	if param := c.Query("startDate"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Ngày bắt đầu không hợp lệ",
			})
			return
		}
		start = parsed
	}
	if param := c.Query("endDate"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Ngày kết thúc không hợp lệ",
			})
			return
		}
		// end date is inclusive
		end = parsed.AddDate(0, 0, 1)
	}

	totals, err := h.reportService.GetMovementTotals(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Không thể tải thống kê nhập xuất",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.AddDate(0, 0, -1).Format("2006-01-02"),
			"totals":     totals,
		},
	})
}
