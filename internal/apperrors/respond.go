package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/metrics"
)

// Response is the JSON body written for failed requests.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Type    Type           `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// Respond writes err as JSON and aborts the request. Internal causes are
// logged, never sent to the client.
func Respond(c *gin.Context, err error) {
	e := As(err)

	metrics.HTTPErrorsTotal.WithLabelValues(string(e.Type)).Inc()

	if e.Type == TypeInternal {
		slog.ErrorContext(c.Request.Context(), "Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}

	c.AbortWithStatusJSON(e.HTTPStatus(), Response{
		Success: false,
		Message: e.Message,
		Type:    e.Type,
		Context: e.Context,
	})
}
