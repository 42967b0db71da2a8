package food

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	defaultLimit         = 20
	maxLimit             = 100
)

// Validate checks and normalizes an admin payload in place.
func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Name == "":
		return apperrors.Validation("Please provide a food item name")
	case utf8.RuneCountInString(in.Name) > maxNameLength:
		return apperrors.Validation(fmt.Sprintf("name must be at most %d characters", maxNameLength))
	case !slices.Contains(Categories, in.Category):
		return apperrors.Validation("Please provide a valid category").WithField("allowed", Categories)
	case in.Price < 0:
		return apperrors.Validation("price must not be negative")
	case in.Description == "":
		return apperrors.Validation("Please provide a description")
	case utf8.RuneCountInString(in.Description) > maxDescriptionLength:
		return apperrors.Validation(fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}

	for _, tag := range in.HealthTags {
		if !slices.Contains(HealthTags, tag) {
			return apperrors.Validation("unknown health tag").WithField("tag", tag)
		}
	}

	if in.Image == "" {
		in.Image = DefaultImage
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
	switch f.Sort {
	case SortPriceAsc, SortPriceDesc, SortRating, SortPopular:
	default:
		f.Sort = SortNewest
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func NewPagination(f ListFilter, total int) Pagination {
	pages := 0
	if f.Limit > 0 {
		pages = (total + f.Limit - 1) / f.Limit
	}
	return Pagination{Page: f.Page, Limit: f.Limit, Total: total, Pages: pages}
}
