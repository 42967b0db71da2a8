package favorite

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

// POST /api/favorites/:foodId
func (h *Handler) Toggle(c *gin.Context) {
	res, err := h.service.Toggle(c.Request.Context(), c.GetString("userID"), c.Param("foodId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"is_favorite": res.IsFavorite,
		"favorites":   res.Favorites,
	})
}

// GET /api/favorites
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
