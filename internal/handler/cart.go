package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peacockstore/peacock-api/internal/cart"
	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/service"
)

type CartHandler struct {
	carts   *cart.Store
	catalog *service.CatalogService
}

func NewCartHandler(carts *cart.Store, catalog *service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

func (h *CartHandler) Create(c *gin.Context) {
	created := h.carts.Create()
	c.JSON(http.StatusCreated, dto.CartResponse{ID: created.ID, Items: []model.CartItem{}})
}

func (h *CartHandler) Get(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart ID"})
		return
	}

	items, err := h.carts.Items(cartID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
		return
	}
	if items == nil {
		items = []model.CartItem{}
	}
	c.JSON(http.StatusOK, dto.CartResponse{ID: cartID, Items: items, Subtotal: cart.Subtotal(items)})
}

// AddItem resolves the product to a snapshot at add time; cart rows keep
// the prices they were added with. Adding stays available in offline
// mode against the sample catalog.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart ID"})
		return
	}

	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add item"})
		return
	}

	if err := h.carts.Add(cartID, *product, model.CartAction(req.Action)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": product.Name + " added to cart"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart ID"})
		return
	}

	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.carts.Remove(cartID, req.ProductID, model.CartAction(req.Action)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
