package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
	"stocktake/internal/service/inventory"
	"stocktake/internal/service/reporting"
)

// InventoryHandler exposes inventory snapshots and their entry
// reconciliation operations over HTTP.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns all inventories, most recent date first. Optional sort
// and order query parameters re-sort the view.
func (h *InventoryHandler) List(c *gin.Context) {
	inventories, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch inventories")
		return
	}

	if field := c.Query("sort"); field != "" {
		ascending := c.DefaultQuery("order", "asc") != "desc"
		inventories = reporting.SortInventories(inventories, reporting.InventorySortField(field), ascending)
	}
	c.JSON(http.StatusOK, inventories)
}

type createInventoryRequest struct {
	Name        string `json:"name"`
	StoreName   string `json:"storeName"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Create stores a new inventory snapshot.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Name == "" || req.Date == "" {
		badRequest(c, "Missing required fields", "Name and date are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "Invalid date", err.Error())
		return
	}

	inv := &models.Inventory{
		Name:        req.Name,
		StoreName:   req.StoreName,
		Date:        date,
		Description: req.Description,
	}
	created, err := h.svc.Create(c.Request.Context(), inv)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create inventory")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get returns one inventory by path id.
func (h *InventoryHandler) Get(c *gin.Context) {
	inv, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

type updateInventoryRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	StoreName   *string `json:"storeName"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

// Update applies a header patch to the inventory identified in the body.
func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ID == "" {
		badRequest(c, "Inventory ID is required", "")
		return
	}

	patch := models.InventoryPatch{
		Name:        req.Name,
		StoreName:   req.StoreName,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			badRequest(c, "Invalid date", err.Error())
			return
		}
		patch.Date = &date
	}

	inv, err := h.svc.Update(c.Request.Context(), req.ID, patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// Delete removes an inventory by path id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete inventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory deleted successfully"})
}

type addEntryRequest struct {
	ProductID string   `json:"productId"`
	Quantity  *float64 `json:"quantity"`
	Notes     *string  `json:"notes"`
}

// AddEntry adds the posted quantity to the inventory's entry for the
// product, creating the entry when it is not tracked yet.
func (h *InventoryHandler) AddEntry(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity == nil {
		badRequest(c, "Missing required fields", "Product ID and quantity are required")
		return
	}

	inv, err := h.svc.AddOrIncrement(c.Request.Context(), c.Param("id"), req.ProductID, *req.Quantity, req.Notes)
	if err != nil {
		respondError(c, h.logger, err, "Failed to add product to inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

type quickAddRequest struct {
	ProductID      string  `json:"productId"`
	BoxesOrPackets float64 `json:"boxesOrPackets"`
	ExtraUnits     float64 `json:"extraUnits"`
	Notes          *string `json:"notes"`
}

// QuickAdd converts a (boxes/packets, extra units) pair into base units
// for the product and adds the result to the inventory.
func (h *InventoryHandler) QuickAdd(c *gin.Context) {
	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ProductID == "" {
		badRequest(c, "Missing required fields", "Product ID is required")
		return
	}

	inv, err := h.svc.QuickAdd(c.Request.Context(), c.Param("id"), req.ProductID, req.BoxesOrPackets, req.ExtraUnits, req.Notes)
	if err != nil {
		respondError(c, h.logger, err, "Failed to add product to inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

type updateEntryRequest struct {
	Quantity *float64 `json:"quantity"`
	Notes    *string  `json:"notes"`
	Action   string   `json:"action"`
}

// UpdateEntry adjusts a tracked entry. action=replace sets the absolute
// quantity; anything else adds to it.
func (h *InventoryHandler) UpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Quantity == nil {
		badRequest(c, "Missing required fields", "Quantity is required")
		return
	}

	inventoryID := c.Param("id")
	productID := c.Param("productId")

	var inv *models.Inventory
	var err error
	if req.Action == "replace" {
		inv, err = h.svc.Replace(c.Request.Context(), inventoryID, productID, *req.Quantity, req.Notes)
	} else {
		inv, err = h.svc.AddOrIncrement(c.Request.Context(), inventoryID, productID, *req.Quantity, req.Notes)
	}
	if err != nil {
		respondError(c, h.logger, err, "Failed to update product in inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// RemoveEntry deletes the product's entry from the inventory's list.
// The product's running quantity is left as-is.
func (h *InventoryHandler) RemoveEntry(c *gin.Context) {
	inv, err := h.svc.Remove(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to remove product from inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
