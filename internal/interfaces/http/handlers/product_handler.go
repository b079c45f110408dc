package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/interfaces/http/middleware"
	"qfifat.backend/internal/interfaces/http/response"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/utils"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productUsecase *usecases.ProductUsecase
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase *usecases.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// List lists active products
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)

	products, total, err := h.productUsecase.List(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, products, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Get returns one product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Create adds a product to the calling merchant's shop
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var input entities.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	product, err := h.productUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// Update updates a product owned by the calling merchant
// PATCH /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	product, err := h.productUsecase.Update(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Delete removes a product from the calling merchant's shop
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.productUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine lists the calling merchant's products
// GET /api/v1/products/mine
func (h *ProductHandler) ListMine(c *gin.Context) {
	p := paginationFromQuery(c)
	userID, _ := middleware.GetUserID(c)

	products, total, err := h.productUsecase.ListMine(c.Request.Context(), userID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, products, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}
