package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peacockstore/peacock-api/internal/cart"
	"github.com/peacockstore/peacock-api/internal/checkout"
	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func (h *CheckoutHandler) Start(c *gin.Context) {
	var req dto.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sess, err := h.checkoutService.Start(req.CartID)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "your cart is empty"})
			return
		}
		if errors.Is(err, cart.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start checkout"})
		return
	}
	c.JSON(http.StatusCreated, toCheckoutResponse(sess))
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout ID"})
		return
	}

	sess, err := h.checkoutService.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "checkout session not found"})
		return
	}
	c.JSON(http.StatusOK, toCheckoutResponse(sess))
}

func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout ID"})
		return
	}

	var req dto.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.checkoutService.SubmitShipping(sessionID, req.Details(), req.TermsAccepted); err != nil {
		writeCheckoutError(c, err)
		return
	}

	sess, err := h.checkoutService.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "checkout session not found"})
		return
	}
	c.JSON(http.StatusOK, toCheckoutResponse(sess))
}

func (h *CheckoutHandler) Pay(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout ID"})
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var card checkout.CardDetails
	if req.Card != nil {
		card = checkout.CardDetails{Number: req.Card.Number, Expiry: req.Card.Expiry, CVC: req.Card.CVC}
	}

	order, err := h.checkoutService.Pay(c.Request.Context(), sessionID, service.PaymentMethod(req.Method), card, req.ProviderOrderID)
	if err != nil {
		writeCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Finish is the "continue shopping" exit from the confirmation screen.
func (h *CheckoutHandler) Finish(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout ID"})
		return
	}
	h.checkoutService.Finish(sessionID)
	c.Status(http.StatusNoContent)
}

func toCheckoutResponse(sess checkout.Session) dto.CheckoutResponse {
	totals := sess.Totals()
	return dto.CheckoutResponse{
		ID:       sess.ID,
		Step:     string(sess.Step),
		Items:    sess.Items,
		Subtotal: totals.Subtotal,
		Taxes:    totals.Taxes,
		Total:    totals.Total,
	}
}

func writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "checkout session not found"})
	case errors.Is(err, checkout.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, checkout.ErrIncompleteShipping),
		errors.Is(err, checkout.ErrTermsNotAccepted),
		errors.Is(err, checkout.ErrInvalidCardNumber),
		errors.Is(err, checkout.ErrInvalidExpiry),
		errors.Is(err, checkout.ErrInvalidCVC),
		errors.Is(err, service.ErrUnknownPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{"message": service.ErrPaymentFailed.Error()})
	case errors.Is(err, service.ErrOffline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
	case errors.Is(err, service.ErrOrderFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"message": service.ErrOrderFailed.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "checkout failed"})
	}
}
