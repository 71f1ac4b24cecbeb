package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder is the direct ledger submission used when the client drove
// the checkout itself and posts the finished order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), req.UserEmail, req.Items, req.Total, req.ShippingDetails)
	if err != nil {
		if errors.Is(err, service.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create order"})
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	email := c.Param("email")

	orders, err := h.orderService.ListForUser(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch orders"})
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		UserEmail:       order.UserEmail,
		Date:            order.Date,
		Items:           order.Items,
		Total:           order.Total,
		Status:          order.Status,
		StatusProgress:  order.Status.Progress(),
		TrackingNumber:  order.TrackingNumber,
		ShippingDetails: order.ShippingDetails,
	}
}
