package inventory

import (
	"net/http"

	"github.com/YC815/Miaoli/internal/httputil"
	"github.com/YC815/Miaoli/internal/ledger"
	"github.com/YC815/Miaoli/internal/metrics"
	"github.com/YC815/Miaoli/pkg/auditlog"
	"github.com/YC815/Miaoli/pkg/models"
	"github.com/YC815/Miaoli/pkg/security"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Ledger   *ledger.Ledger
	AuditLog *auditlog.Auditlog
}

func NewHandler(l *ledger.Ledger, a *auditlog.Auditlog) *InventoryHandler {
	return &InventoryHandler{
		Ledger:   l,
		AuditLog: a,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", security.Authorize("volunteer"), h.ListItems)
	router.GET("/items/:name", security.Authorize("volunteer"), h.GetItem)
	router.POST("/items", security.Authorize("staff"), h.CreateCatalogItem)
	router.PUT("/items/:name", security.Authorize("staff"), h.EditItem)
	router.PATCH("/items/:name/stock", security.Authorize("staff"), h.AdjustStock)
	router.PATCH("/items/:name/safety-stock", security.Authorize("staff"), h.UpdateSafetyStock)
	router.DELETE("/items/:name", security.Authorize("admin"), h.DeleteItem)
	router.GET("/warnings", security.Authorize("volunteer"), h.ListWarnings)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Items())
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.Ledger.Item(c.Param("name"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) CreateCatalogItem(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Ledger.AddCatalogItem(req.Name)
	metrics.Mutation("add_catalog_item", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Catalog item created"})
}

func (h *InventoryHandler) EditItem(c *gin.Context) {
	var input models.EditItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Ledger.EditItem(c.Param("name"), input)
	metrics.Mutation("edit_item", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	name := c.Param("name")
	err := h.Ledger.AdjustStock(name, req.Quantity, req.Reason)
	metrics.Mutation("adjust_stock", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	item, err := h.Ledger.Item(name)
	if err == nil {
		go h.AuditLog.Log(
			"adjust",
			map[string]interface{}{
				"quantity": req.Quantity,
				"reason":   req.Reason,
			},
			&item,
		)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock adjusted"})
}

func (h *InventoryHandler) UpdateSafetyStock(c *gin.Context) {
	var req models.SafetyStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Ledger.UpdateSafetyStock(c.Param("name"), req.SafetyStock)
	metrics.Mutation("update_safety_stock", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Safety stock updated"})
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	name := c.Param("name")

	err := h.Ledger.DeleteItem(name)
	metrics.Mutation("delete_item", err)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *InventoryHandler) ListWarnings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Warnings())
}
