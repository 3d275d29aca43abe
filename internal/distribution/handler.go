package distribution

import (
	"net/http"
	"strconv"

	"github.com/YC815/Miaoli/internal/httputil"
	"github.com/YC815/Miaoli/internal/ledger"
	"github.com/YC815/Miaoli/internal/metrics"
	"github.com/YC815/Miaoli/pkg/auditlog"
	"github.com/YC815/Miaoli/pkg/models"
	"github.com/YC815/Miaoli/pkg/security"

	"github.com/gin-gonic/gin"
)

type DistributionHandler struct {
	Ledger     *ledger.Ledger
	Reconciler *ledger.Reconciler
	AuditLog   *auditlog.Auditlog
}

func NewHandler(l *ledger.Ledger, r *ledger.Reconciler, a *auditlog.Auditlog) *DistributionHandler {
	return &DistributionHandler{
		Ledger:     l,
		Reconciler: r,
		AuditLog:   a,
	}
}

func (h *DistributionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/pickups", security.Authorize("volunteer"), h.ListPickups)
	router.POST("/pickups", security.Authorize("staff"), h.CreatePickup)
	router.POST("/pickups/batch", security.Authorize("staff"), h.CreatePickupBatch)
	router.PUT("/pickups/:index", security.Authorize("staff"), h.UpdatePickup)
	router.DELETE("/pickups/:index", security.Authorize("admin"), h.DeletePickup)
}

func (h *DistributionHandler) ListPickups(c *gin.Context) {
	var filter models.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	c.JSON(http.StatusOK, h.Ledger.PickupRecords(filter))
}

func (h *DistributionHandler) CreatePickup(c *gin.Context) {
	var input models.PickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Ledger.Pickup(input)
	metrics.Mutation("pickup", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	item, err := h.Ledger.Item(input.Name)
	if err == nil {
		go h.AuditLog.Log(
			"pickup",
			map[string]interface{}{
				"quantity":  input.Quantity,
				"recipient": input.Recipient.Name,
			},
			&item,
		)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Distribution recorded"})
}

// CreatePickupBatch distributes several items to one recipient unit and
// reports per-item outcomes instead of aborting on the first failure.
func (h *DistributionHandler) CreatePickupBatch(c *gin.Context) {
	var req models.BatchPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	results := h.Ledger.PickupBatch(req)

	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   succeeded == len(results),
		"succeeded": succeeded,
		"total":     len(results),
		"results":   results,
	})
}

func (h *DistributionHandler) UpdatePickup(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid record index"})
		return
	}

	var update models.RecordUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err = h.Reconciler.EditPickup(index, update)
	metrics.Mutation("edit_pickup", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup record updated"})
}

func (h *DistributionHandler) DeletePickup(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid record index"})
		return
	}

	err = h.Reconciler.DeletePickup(index)
	metrics.Mutation("delete_pickup", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup record deleted"})
}
