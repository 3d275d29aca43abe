package reports

import (
	"net/http"

	"github.com/YC815/Miaoli/internal/ledger"
	"github.com/YC815/Miaoli/pkg/models"
	"github.com/YC815/Miaoli/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *ReportHandler {
	return &ReportHandler{Ledger: l}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", security.Authorize("volunteer"), h.GetStats)
	router.GET("/reports/inventory", security.Authorize("volunteer"), h.GetInventoryReport)
	router.GET("/reports/distribution", security.Authorize("volunteer"), h.GetDistributionReport)
}

func (h *ReportHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Stats())
}

func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.InventoryReport())
}

func (h *ReportHandler) GetDistributionReport(c *gin.Context) {
	var filter models.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	c.JSON(http.StatusOK, h.Ledger.DistributionReport(filter))
}
