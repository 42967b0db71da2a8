package review

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

// POST /api/reviews
func (h *Handler) Create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid request body"))
		return
	}
	in.UserID = c.GetString("userID")

	rev, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rev})
}

// GET /api/reviews/food/:foodId
func (h *Handler) ListForFood(c *gin.Context) {
	res, err := h.service.ListForFood(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"data":              res.Reviews,
		"sentiment_summary": res.Summary,
		"total_reviews":     res.Total,
	})
}

// POST /api/reviews/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req struct {
		Text any `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid request body"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.service.Analyze(req.Text)})
}
