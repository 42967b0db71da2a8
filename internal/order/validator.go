package order

import (
	"slices"
	"strings"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Validate checks and normalizes a checkout payload in place.
func (in *CreateInput) Validate() error {
	if len(in.Items) == 0 {
		return apperrors.Validation("No items in order")
	}
	for _, item := range in.Items {
		if item.FoodItemID == "" {
			return apperrors.Validation("food_item_id is required for every item")
		}
		if item.Quantity < 1 {
			return apperrors.Validation("quantity must be at least 1").WithField("food_item_id", item.FoodItemID)
		}
	}

	addr := &in.DeliveryAddress
	addr.Street = strings.TrimSpace(addr.Street)
	addr.City = strings.TrimSpace(addr.City)
	addr.State = strings.TrimSpace(addr.State)
	addr.Pincode = strings.TrimSpace(addr.Pincode)
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.Pincode == "" {
		return apperrors.Validation("Please provide a complete delivery address")
	}

	switch in.PaymentMethod {
	case "":
		in.PaymentMethod = PaymentCOD
	case PaymentCOD, PaymentOnline:
	default:
		return apperrors.Validation("payment_method must be cod or online")
	}
	return nil
}

// Normalize fills defaults and clamps paging.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
