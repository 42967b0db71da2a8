package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/auth"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/correlation"
)

const testSecret = "test-secret-key-for-testing-only"

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager(testSecret, clockwork.NewRealClock())
}

func newProtectedRouter(tokens *auth.TokenManager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	if len(roles) > 0 {
		router.Use(RequireRole(roles...))
	}
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString(ContextUserID),
			"userEmail": c.GetString(ContextUserEmail),
		})
	})
	return router
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	w := get(newProtectedRouter(newTokens()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	w := get(newProtectedRouter(newTokens()), "InvalidFormat")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := get(newProtectedRouter(newTokens()), "Bearer invalid_token_xyz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens()
	token, err := tokens.GenerateToken("test-user-id", "test@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	w := get(newProtectedRouter(tokens), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-user-id")
}

func TestRequireRole(t *testing.T) {
	tokens := newTokens()
	customer, err := tokens.GenerateToken("u1", "c@example.com", auth.RoleCustomer)
	require.NoError(t, err)
	admin, err := tokens.GenerateToken("u2", "a@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	r := newProtectedRouter(tokens, auth.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+customer).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+admin).Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireRole(auth.RoleAdmin))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, get(r, "").Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := clockwork.NewFakeClock()
	rl := NewRateLimiter(1, 2, clock)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
}

func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func TestRateLimiter_SweepsIdleVisitorsPeriodically(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rl := NewRateLimiter(1, 2, clock)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))

	// idle long enough to expire, but the sweep is not due until the
	// next request after the interval
	clock.Advance(rateLimiterExpiry + time.Second)
	assert.Equal(t, 2, rl.tracked())

	assert.True(t, rl.allow("10.0.0.3"))
	assert.Equal(t, 1, rl.tracked())

	// requests inside the interval do not sweep
	clock.Advance(rateLimiterExpiry + time.Second)
	rl.mu.Lock()
	rl.sweepAt = clock.Now().Add(sweepInterval)
	rl.mu.Unlock()
	assert.True(t, rl.allow("10.0.0.4"))
	assert.Equal(t, 2, rl.tracked())

	clock.Advance(sweepInterval)
	assert.True(t, rl.allow("10.0.0.4"))
	assert.Equal(t, 1, rl.tracked())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Observe())
	r.GET("/test", func(c *gin.Context) {
		id, _ := correlation.ID(c.Request.Context())
		c.String(http.StatusOK, id)
	})

	w := get(r, "")
	generated := w.Header().Get(correlation.Header)
	assert.Len(t, generated, 8)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(correlation.Header, "client-supplied")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Body.String())
}
