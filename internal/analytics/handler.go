package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/analytics/sentiment
func (h *Handler) Sentiment(c *gin.Context) {
	report, err := h.service.Sentiment(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// POST /api/analytics/sentiment/recompute
func (h *Handler) Recompute(c *gin.Context) {
	result, err := h.service.Recompute(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GET /api/analytics/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": d})
}

// GET /api/analytics/health-insights
func (h *Handler) HealthInsights(c *gin.Context) {
	insights, err := h.service.HealthInsights(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": insights})
}
