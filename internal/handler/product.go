package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/middleware"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category"})
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product ID"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := toProduct(req)
	err := h.catalog.CreateProduct(c.Request.Context(), middleware.GetUserEmail(c), &product)
	if err != nil {
		writeCatalogError(c, err, "failed to add product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product ID"})
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := toProduct(req)
	product.ID = id
	if err := h.catalog.UpdateProduct(c.Request.Context(), middleware.GetUserEmail(c), &product); err != nil {
		writeCatalogError(c, err, "failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product ID"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), middleware.GetUserEmail(c), id); err != nil {
		writeCatalogError(c, err, "failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func toProduct(req dto.ProductRequest) model.Product {
	return model.Product{
		Name:         req.Name,
		Category:     model.Category(req.Category),
		Description:  req.Description,
		StylingNotes: req.StylingNotes,
		ImageURLs:    req.ImageURLs,
		BuyPrice:     req.BuyPrice,
		RentPrice:    req.RentPrice,
	}
}

func writeCatalogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrOffline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "product belongs to another seller"})
	case errors.Is(err, service.ErrNoImages), errors.Is(err, service.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
