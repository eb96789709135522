package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
	"stocktake/internal/service/catalog"
	"stocktake/internal/service/reporting"
)

// ProductHandler exposes the product catalog over HTTP.
type ProductHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc *catalog.Service, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// List returns all products, newest first. Optional q, sort and order
// query parameters filter and re-sort the view.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch products")
		return
	}

	if q := c.Query("q"); q != "" {
		products = reporting.FilterProducts(products, q)
	}
	if field := c.Query("sort"); field != "" {
		ascending := c.DefaultQuery("order", "asc") != "desc"
		products = reporting.SortProducts(products, reporting.ProductSortField(field), ascending)
	}
	c.JSON(http.StatusOK, products)
}

// Create stores a new catalog entry.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if product.Name == "" || product.Unit == "" || product.Category == "" || product.Location == "" {
		badRequest(c, "Missing required fields", "Name, unit, category, and location are required")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &product)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, created)
}

type updateProductRequest struct {
	ID string `json:"id"`
	models.ProductPatch
}

// Update applies a patch to the product identified in the request body.
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ID == "" {
		badRequest(c, "Product ID is required", "")
		return
	}

	product, err := h.svc.Update(c.Request.Context(), req.ID, req.ProductPatch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes the product identified by the id query parameter.
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "Product ID is required", "")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
