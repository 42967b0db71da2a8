package analytics

import (
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/order"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

// ItemSentiment is one reviewed item as shown on the dashboard.
type ItemSentiment struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	SentimentScore float64 `json:"sentiment_score"`
	AverageRating  float64 `json:"average_rating"`
	ReviewCount    int     `json:"review_count"`
}

// Report is the store-wide sentiment dashboard.
type Report struct {
	TotalReviews   int               `json:"total_reviews"`
	Distribution   sentiment.Summary `json:"distribution"`
	AverageScore   float64           `json:"average_score"`
	MostLoved      *ItemSentiment    `json:"most_loved"`
	MostCriticized *ItemSentiment    `json:"most_criticized"`
}

// WeeklyTrend is the item ordered most over the last seven days.
type WeeklyTrend struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	OrdersThisWeek int    `json:"orders_this_week"`
}

// Dashboard is the admin overview of orders, users, menu and reviews.
type Dashboard struct {
	TotalOrders           int                    `json:"total_orders"`
	TotalUsers            int                    `json:"total_users"`
	TotalFoodItems        int                    `json:"total_food_items"`
	TotalReviews          int                    `json:"total_reviews"`
	TotalRevenue          float64                `json:"total_revenue"`
	MostSelling           *food.FoodItem         `json:"most_selling"`
	HighestRated          *food.FoodItem         `json:"highest_rated"`
	MostLoved             *food.FoodItem         `json:"most_loved"`
	TrendingItem          *WeeklyTrend           `json:"trending_item"`
	OrdersByStatus        map[order.Status]int   `json:"orders_by_status"`
	RevenueByDay          []order.DayRevenue     `json:"revenue_by_day"`
	SentimentDistribution sentiment.Summary      `json:"sentiment_distribution"`
	OrdersByCategory      []order.CategoryOrders `json:"orders_by_category"`
}

// TagInsight is the best selling available item for one health tag.
type TagInsight struct {
	Tag     string         `json:"tag"`
	TopItem *food.FoodItem `json:"top_item"`
}

type HealthInsights struct {
	HealthTagInsights []TagInsight   `json:"health_tag_insights"`
	MostReviewedDrink *food.FoodItem `json:"most_reviewed_drink"`
}
