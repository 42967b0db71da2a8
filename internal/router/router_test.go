package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/analytics"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/auth"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/favorite"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/order"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/review"
)

const testSecret = "router-test-secret-0123456789"

type app struct {
	engine *gin.Engine
	tokens *auth.TokenManager
	users  *auth.InMemoryUserRepository
	foods  *food.Service
}

func newApp(t *testing.T, checks map[string]Pinger) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := clockwork.NewRealClock()
	tokens := auth.NewTokenManager(testSecret, clock)
	users := auth.NewInMemoryUserRepository()
	authSvc := auth.NewService(users, tokens)

	foodSvc := food.NewService(food.NewInMemoryRepository(), clock)
	reviewSvc := review.NewService(review.NewInMemoryRepository(), foodSvc, nil, nil, clock)
	orderSvc := order.NewService(order.NewInMemoryRepository(), foodSvc, clock)
	favoriteSvc := favorite.NewService(favorite.NewInMemoryRepository(), foodSvc)
	analyticsSvc := analytics.NewService(reviewSvc, foodSvc, orderSvc, authSvc)

	engine := NewRouter(Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		Clock:          clock,
	}, Deps{
		Tokens:    tokens,
		Auth:      auth.NewHandler(authSvc),
		Foods:     food.NewHandler(foodSvc),
		Reviews:   review.NewHandler(reviewSvc),
		Orders:    order.NewHandler(orderSvc),
		Favorites: favorite.NewHandler(favoriteSvc),
		Analytics: analytics.NewHandler(analyticsSvc),
		Checks:    checks,
	})

	return &app{engine: engine, tokens: tokens, users: users, foods: foodSvc}
}

func (a *app) do(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *app) token(t *testing.T, email, role string) string {
	t.Helper()
	user := &auth.User{Name: email, Email: email, Password: "x", Role: role}
	require.NoError(t, a.users.Save(context.Background(), user))
	tok, err := a.tokens.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return tok
}

func TestHealthCheck(t *testing.T) {
	a := newApp(t, map[string]Pinger{"postgres": func(context.Context) error { return nil }})

	w := a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","components":{"postgres":"up"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthCheck_Degraded(t *testing.T) {
	a := newApp(t, map[string]Pinger{"redis": func(context.Context) error { return errors.New("down") }})

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newApp(t, nil)
	a.do(http.MethodGet, "/health", "", nil)

	w := a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestReviewFlow(t *testing.T) {
	a := newApp(t, nil)
	admin := a.token(t, "admin@example.com", auth.RoleAdmin)
	customer := a.token(t, "eater@example.com", auth.RoleCustomer)

	w := a.do(http.MethodPost, "/api/foods", customer, food.Input{
		Name: "Ragi Malt", Category: food.CategoryDrinks, Price: 60, Description: "Warm ragi drink",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/foods", admin, food.Input{
		Name: "Ragi Malt", Category: food.CategoryDrinks, Price: 60, Description: "Warm ragi drink",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data food.FoodItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	foodID := created.Data.ID

	w = a.do(http.MethodPost, "/api/reviews", "", map[string]any{"food_item_id": foodID, "rating": 5, "text": "good"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/reviews", customer, map[string]any{
		"food_item_id": foodID, "rating": 5, "text": "very tasty and healthy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/foods/"+foodID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"review_count":1`)
	assert.Contains(t, w.Body.String(), `"sentiment_score":1`)

	w = a.do(http.MethodGet, "/api/foods/most-loved", "", nil)
	assert.Contains(t, w.Body.String(), foodID)

	w = a.do(http.MethodGet, "/api/analytics/sentiment", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/analytics/sentiment", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_reviews":1`)

	w = a.do(http.MethodPost, "/api/reviews/analyze", "", map[string]string{"text": "not good"})
	assert.JSONEq(t, `{"success":true,"data":{"score":-1,"label":"negative"}}`, w.Body.String())
}

func TestOrderFlow(t *testing.T) {
	a := newApp(t, nil)
	admin := a.token(t, "admin@example.com", auth.RoleAdmin)
	customer := a.token(t, "eater@example.com", auth.RoleCustomer)

	item, err := a.foods.Create(context.Background(), food.Input{
		Name: "Jowar Roti", Category: food.CategoryJowar, Price: 45, Description: "Soft jowar flatbread",
	})
	require.NoError(t, err)

	place := map[string]any{
		"items": []map[string]any{{"food_item_id": item.ID, "quantity": 2}},
		"delivery_address": map[string]string{
			"street": "7 Brigade Road", "city": "Bengaluru", "state": "Karnataka", "pincode": "560001",
		},
	}
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/orders", "", place).Code)

	w := a.do(http.MethodPost, "/api/orders", customer, place)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data order.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 90.0, created.Data.TotalAmount)

	w = a.do(http.MethodGet, "/api/foods/"+item.ID, "", nil)
	assert.Contains(t, w.Body.String(), `"total_orders":2`)

	w = a.do(http.MethodGet, "/api/foods/most-selling", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), item.ID)

	w = a.do(http.MethodGet, "/api/foods/trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"trending_orders":2`)

	w = a.do(http.MethodGet, "/api/orders/my", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.ID)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/orders", customer, nil).Code)
	assert.Equal(t, http.StatusForbidden,
		a.do(http.MethodPut, "/api/orders/"+created.Data.ID+"/status", customer, map[string]string{"status": "delivered"}).Code)

	w = a.do(http.MethodPut, "/api/orders/"+created.Data.ID+"/status", admin, map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/orders", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"delivered"`)

	w = a.do(http.MethodGet, "/api/analytics/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_orders":1`)
	assert.Contains(t, w.Body.String(), `"total_revenue":90`)

	w = a.do(http.MethodGet, "/api/analytics/health-insights", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFavoriteRoutes(t *testing.T) {
	a := newApp(t, nil)
	customer := a.token(t, "eater@example.com", auth.RoleCustomer)

	item, err := a.foods.Create(context.Background(), food.Input{
		Name: "Ragi Ladoo", Category: food.CategorySnacks, Price: 30, Description: "Jaggery ragi ladoo",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/favorites", "", nil).Code)

	w := a.do(http.MethodPost, "/api/favorites/"+item.ID, customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_favorite":true`)

	w = a.do(http.MethodGet, "/api/favorites", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ragi Ladoo"`)
}

func TestAuthRoutes(t *testing.T) {
	a := newApp(t, nil)

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data auth.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = a.do(http.MethodGet, "/api/auth/me", resp.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
}

func TestPanicRecovery(t *testing.T) {
	a := newApp(t, nil)
	a.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := a.do(http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
