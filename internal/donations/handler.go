package donations

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/YC815/Miaoli/internal/httputil"
	"github.com/YC815/Miaoli/internal/ledger"
	"github.com/YC815/Miaoli/internal/metrics"
	"github.com/YC815/Miaoli/internal/validation"
	"github.com/YC815/Miaoli/pkg/auditlog"
	"github.com/YC815/Miaoli/pkg/models"
	"github.com/YC815/Miaoli/pkg/security"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	Ledger     *ledger.Ledger
	Reconciler *ledger.Reconciler
	AuditLog   *auditlog.Auditlog
}

func NewHandler(l *ledger.Ledger, r *ledger.Reconciler, a *auditlog.Auditlog) *DonationHandler {
	return &DonationHandler{
		Ledger:     l,
		Reconciler: r,
		AuditLog:   a,
	}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/donations", security.Authorize("volunteer"), h.ListDonations)
	router.POST("/donations", security.Authorize("staff"), h.CreateDonation)
	router.POST("/donations/batch", security.Authorize("staff"), h.CreateDonationBatch)
	router.PUT("/donations/:index", security.Authorize("staff"), h.UpdateDonation)
	router.DELETE("/donations/:index", security.Authorize("admin"), h.DeleteDonation)
}

func (h *DonationHandler) ListDonations(c *gin.Context) {
	var filter models.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	c.JSON(http.StatusOK, h.Ledger.DonationRecords(filter))
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var input models.DonationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if errs := validation.ValidateDonor(input.Donor); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	err := h.Ledger.Donate(input)
	metrics.Mutation("donate", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	item, err := h.Ledger.Item(input.Name)
	if err == nil {
		go h.AuditLog.Log(
			"donate",
			map[string]interface{}{
				"quantity": input.Quantity,
				"donor":    input.Donor.Name,
			},
			&item,
		)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Donation recorded"})
}

// CreateDonationBatch rejects the whole submission when any row is invalid;
// nothing is recorded until every row passes.
func (h *DonationHandler) CreateDonationBatch(c *gin.Context) {
	var req models.BatchDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if errs := validation.ValidateItemsBatch(req.Items); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	results := h.Ledger.DonateBatch(req.Items)

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

func (h *DonationHandler) UpdateDonation(c *gin.Context) {
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

	err = h.Reconciler.EditDonation(index, update)
	metrics.Mutation("edit_donation", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donation record updated"})
}

// DeleteDonation reverses the donation's stock effect and removes its log
// entry. When that empties the item, ?delete_item=true also removes the item.
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid record index"})
		return
	}

	outcome, err := h.Reconciler.DeleteDonation(index)
	metrics.Mutation("delete_donation", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	if outcome.ItemEmptied && c.Query("delete_item") == "true" {
		if err := h.Reconciler.DeleteItem(outcome.ItemName); err != nil {
			httputil.RespondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Donation record deleted",
		"outcome": outcome,
	})
}
