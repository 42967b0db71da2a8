package order

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
)

type fixture struct {
	svc    *Service
	repo   *InMemoryRepository
	foods  *food.Service
	clock  *clockwork.FakeClock
	malt   string
	roti   string
	hidden string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	foods := food.NewService(food.NewInMemoryRepository(), clock)
	ctx := context.Background()

	create := func(name, category string, price float64, available bool) string {
		item, err := foods.Create(ctx, food.Input{
			Name:        name,
			Category:    category,
			Price:       price,
			Description: name + " made fresh",
			IsAvailable: &available,
		})
		require.NoError(t, err)
		return item.ID
	}

	f := &fixture{
		repo:   NewInMemoryRepository(),
		foods:  foods,
		clock:  clock,
		malt:   create("Ragi Malt", food.CategoryDrinks, 60, true),
		roti:   create("Jowar Roti", food.CategoryJowar, 40.5, true),
		hidden: create("Foxtail Kheer", food.CategoryFoxtail, 80, false),
	}
	f.svc = NewService(f.repo, foods, clock)
	return f
}

var homeAddress = Address{Street: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"}

func (f *fixture) place(t *testing.T, user string, lines ...ItemInput) *Order {
	t.Helper()
	o, err := f.svc.Create(context.Background(), CreateInput{
		UserID: user, Items: lines, DeliveryAddress: homeAddress,
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) totalOrders(t *testing.T, id string) int {
	t.Helper()
	item, err := f.foods.Get(context.Background(), id)
	require.NoError(t, err)
	return item.TotalOrders
}

func TestCreate_PricesAndCountsOrders(t *testing.T) {
	f := newFixture(t)

	o := f.place(t, "u1",
		ItemInput{FoodItemID: f.malt, Quantity: 2},
		ItemInput{FoodItemID: f.roti, Quantity: 3},
	)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, 241.5, o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentCOD, o.PaymentMethod)
	assert.Equal(t, f.clock.Now().UTC(), o.CreatedAt)
	require.Len(t, o.Items, 2)
	assert.Equal(t, Item{
		FoodItemID: f.malt,
		Name:       "Ragi Malt",
		Category:   food.CategoryDrinks,
		Price:      60,
		Quantity:   2,
		Image:      food.DefaultImage,
	}, o.Items[0])

	assert.Equal(t, 2, f.totalOrders(t, f.malt))
	assert.Equal(t, 3, f.totalOrders(t, f.roti))

	f.place(t, "u2", ItemInput{FoodItemID: f.malt, Quantity: 1})
	assert.Equal(t, 3, f.totalOrders(t, f.malt))

	stored, err := f.repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o, stored)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []ItemInput{{FoodItemID: f.malt, Quantity: 1}}

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"no items", CreateInput{DeliveryAddress: homeAddress}},
		{"zero quantity", CreateInput{Items: []ItemInput{{FoodItemID: f.malt}}, DeliveryAddress: homeAddress}},
		{"missing food id", CreateInput{Items: []ItemInput{{Quantity: 1}}, DeliveryAddress: homeAddress}},
		{"missing address", CreateInput{Items: line}},
		{"blank pincode", CreateInput{Items: line, DeliveryAddress: Address{Street: "a", City: "b", State: "c", Pincode: " "}}},
		{"bad payment", CreateInput{Items: line, DeliveryAddress: homeAddress, PaymentMethod: "barter"}},
		{"unavailable item", CreateInput{
			Items:           []ItemInput{{FoodItemID: f.malt, Quantity: 1}, {FoodItemID: f.hidden, Quantity: 1}},
			DeliveryAddress: homeAddress,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.in)
			assert.True(t, apperrors.IsType(err, apperrors.TypeValidation), "got %v", err)
		})
	}

	_, err := f.svc.Create(ctx, CreateInput{
		Items:           []ItemInput{{FoodItemID: "missing", Quantity: 1}},
		DeliveryAddress: homeAddress,
	})
	require.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
	assert.Contains(t, err.Error(), "missing")

	// rejected orders never touch the counters
	assert.Zero(t, f.totalOrders(t, f.malt))
	orders, _, err := f.repo.List(ctx, ListFilter{Limit: 10}.Normalize())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreate_OnlinePayment(t *testing.T) {
	f := newFixture(t)

	o, err := f.svc.Create(context.Background(), CreateInput{
		UserID:          "u1",
		Items:           []ItemInput{{FoodItemID: f.roti, Quantity: 1}},
		DeliveryAddress: Address{Street: " 1 Main St ", City: "Mysuru", State: "Karnataka", Pincode: "570001"},
		PaymentMethod:   PaymentOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentOnline, o.PaymentMethod)
	assert.Equal(t, "1 Main St", o.DeliveryAddress.Street)
}

func TestMine_NewestFirst(t *testing.T) {
	f := newFixture(t)

	first := f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 1})
	f.clock.Advance(time.Hour)
	second := f.place(t, "u1", ItemInput{FoodItemID: f.roti, Quantity: 1})
	f.place(t, "u2", ItemInput{FoodItemID: f.roti, Quantity: 1})

	orders, err := f.svc.Mine(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	orders, err = f.svc.Mine(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestList_StatusFilterAndPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for range 3 {
		ids = append(ids, f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 1}).ID)
		f.clock.Advance(time.Minute)
	}
	_, err := f.svc.UpdateStatus(ctx, ids[0], StatusConfirmed)
	require.NoError(t, err)

	orders, page, err := f.svc.List(ctx, ListFilter{Status: StatusPending})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, food.Pagination{Page: 1, Limit: 20, Total: 2, Pages: 1}, page)

	orders, page, err = f.svc.List(ctx, ListFilter{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ids[1], orders[0].ID)
	assert.Equal(t, 3, page.Pages)

	_, _, err = f.svc.List(ctx, ListFilter{Status: "lost"})
	assert.True(t, apperrors.IsType(err, apperrors.TypeValidation))
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 1})

	updated, err := f.svc.UpdateStatus(ctx, o.ID, StatusOutForDelivery)
	require.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, updated.Status)
	assert.Nil(t, updated.DeliveredAt)

	f.clock.Advance(30 * time.Minute)
	updated, err = f.svc.UpdateStatus(ctx, o.ID, StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	assert.Equal(t, f.clock.Now().UTC(), *updated.DeliveredAt)

	stored, err := f.repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, stored.Status)
	assert.Equal(t, updated.DeliveredAt, stored.DeliveredAt)

	_, err = f.svc.UpdateStatus(ctx, "missing", StatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.UpdateStatus(ctx, o.ID, "teleported")
	assert.True(t, apperrors.IsType(err, apperrors.TypeValidation))
}

func TestTrending_RecentOrdersOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 5})
	f.clock.Advance(8 * 24 * time.Hour)
	f.place(t, "u1", ItemInput{FoodItemID: f.roti, Quantity: 2})
	f.place(t, "u2", ItemInput{FoodItemID: f.malt, Quantity: 1})

	items, err := f.svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, f.roti, items[0].ID)
	assert.Equal(t, 2, items[0].TrendingOrders)
	assert.Equal(t, f.malt, items[1].ID)
	assert.Equal(t, 1, items[1].TrendingOrders)
	assert.Equal(t, 6, items[1].TotalOrders)

	// deleted items drop out
	require.NoError(t, f.foods.Delete(ctx, f.roti))
	items, err = f.svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, f.malt, items[0].ID)
}

func TestTrending_FallsBackToMostSelling(t *testing.T) {
	f := newFixture(t)

	f.place(t, "u1", ItemInput{FoodItemID: f.roti, Quantity: 4}, ItemInput{FoodItemID: f.malt, Quantity: 1})
	f.clock.Advance(10 * 24 * time.Hour)

	items, err := f.svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, f.roti, items[0].ID)
	assert.Zero(t, items[0].TrendingOrders)
	assert.Equal(t, 4, items[0].TotalOrders)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 1})
	f.clock.Advance(8 * 24 * time.Hour)
	f.place(t, "u1", ItemInput{FoodItemID: f.malt, Quantity: 2})
	cancelled := f.place(t, "u2", ItemInput{FoodItemID: f.roti, Quantity: 2})
	_, err := f.svc.UpdateStatus(ctx, cancelled.ID, StatusCancelled)
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)
	f.place(t, "u2", ItemInput{FoodItemID: f.roti, Quantity: 1})

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 220.5, stats.TotalRevenue)
	assert.Equal(t, map[Status]int{StatusPending: 3, StatusCancelled: 1}, stats.ByStatus)
	assert.Equal(t, []DayRevenue{
		{Date: "2024-05-09", Revenue: 120, Orders: 1},
		{Date: "2024-05-10", Revenue: 40.5, Orders: 1},
	}, stats.RevenueByDay)
	assert.Equal(t, []CategoryOrders{
		{Category: food.CategoryDrinks, TotalOrders: 3, Revenue: 180},
		{Category: food.CategoryJowar, TotalOrders: 3, Revenue: 121.5},
	}, stats.ByCategory)
}

func TestStats_Empty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.Empty(t, stats.ByStatus)
	assert.NotNil(t, stats.RevenueByDay)
	assert.NotNil(t, stats.ByCategory)
}

func TestPostgresRepository_MalformedIDIsNotFound(t *testing.T) {
	_, err := NewPostgresRepository(nil).FindByID(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
