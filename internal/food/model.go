package food

import "time"

// Categories on the menu.
const (
	CategoryRagi    = "Ragi"
	CategoryJowar   = "Jowar"
	CategoryFoxtail = "Foxtail"
	CategorySnacks  = "Snacks"
	CategoryDrinks  = "Drinks"
)

var Categories = []string{CategoryRagi, CategoryJowar, CategoryFoxtail, CategorySnacks, CategoryDrinks}

var HealthTags = []string{
	"Diabetic Friendly",
	"High Calcium",
	"Iron Rich",
	"Good for Bone Health",
	"Low Glycemic Index",
	"Weight Management",
	"High Fiber",
	"Gluten Free",
	"Heart Healthy",
	"Rich in Antioxidants",
	"Gut Health",
	"Immunity Booster",
	"Protein Rich",
	"Kid Friendly",
}

const DefaultImage = "/images/default-food.jpg"

type FoodItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	HealthTags     []string  `json:"health_tags"`
	TotalOrders    int       `json:"total_orders"`
	AverageRating  float64   `json:"average_rating"`
	ReviewCount    int       `json:"review_count"`
	SentimentScore float64   `json:"sentiment_score"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReviewStats are the review-derived aggregates kept on each item.
type ReviewStats struct {
	AverageRating  float64 `json:"average_rating"`
	ReviewCount    int     `json:"review_count"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Input is the admin payload for create and update.
type Input struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	HealthTags  []string `json:"health_tags"`
	IsAvailable *bool    `json:"is_available"`
}

// Sort orders accepted by List.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortPopular   = "popular"
)

type ListFilter struct {
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
