package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/service"
)

type ReviewHandler struct {
	catalog *service.CatalogService
}

func NewReviewHandler(catalog *service.CatalogService) *ReviewHandler {
	return &ReviewHandler{catalog: catalog}
}

func (h *ReviewHandler) List(c *gin.Context) {
	var productID int64
	if raw := c.Query("productId"); raw != "" {
		var err error
		productID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product ID"})
			return
		}
	}

	reviews, err := h.catalog.ListReviews(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch reviews"})
		return
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	review := model.Review{
		ProductID: req.ProductID,
		Author:    req.Author,
		Location:  req.Location,
		Text:      req.Text,
		Rating:    req.Rating,
	}
	if err := h.catalog.AddReview(c.Request.Context(), &review); err != nil {
		if errors.Is(err, service.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add review"})
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(review))
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Author:    r.Author,
		Location:  r.Location,
		Text:      r.Text,
		Rating:    r.Rating,
	}
}
