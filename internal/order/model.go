package order

import (
	"time"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Item is a snapshot of a food item at the time it was ordered.
type Item struct {
	FoodItemID string  `json:"food_item_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image"`
}

type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	UserName        string        `json:"user_name,omitempty"`
	UserEmail       string        `json:"user_email,omitempty"`
	Items           []Item        `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	Status          Status        `json:"status"`
	DeliveryAddress Address       `json:"delivery_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DeliveredAt     *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type ItemInput struct {
	FoodItemID string `json:"food_item_id"`
	Quantity   int    `json:"quantity"`
}

// CreateInput is the checkout payload.
type CreateInput struct {
	UserID          string        `json:"-"`
	Items           []ItemInput   `json:"items"`
	DeliveryAddress Address       `json:"delivery_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
}

type ListFilter struct {
	Status Status
	Page   int
	Limit  int
}

// ItemCount is the quantity ordered of one food item.
type ItemCount struct {
	FoodItemID string
	Quantity   int
}

// TrendingItem is a food item with its recent order quantity.
type TrendingItem struct {
	*food.FoodItem
	TrendingOrders int `json:"trending_orders"`
}

type DayRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type CategoryOrders struct {
	Category    string  `json:"category"`
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
}

// Stats are the order figures shown on the admin dashboard. Revenue
// excludes cancelled orders.
type Stats struct {
	TotalOrders  int              `json:"total_orders"`
	TotalRevenue float64          `json:"total_revenue"`
	ByStatus     map[Status]int   `json:"orders_by_status"`
	RevenueByDay []DayRevenue     `json:"revenue_by_day"`
	ByCategory   []CategoryOrders `json:"orders_by_category"`
}
