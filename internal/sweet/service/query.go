package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
)

// SortField names a sortable sweet attribute.
type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByQuantity SortField = "quantity"
	SortByCategory SortField = "category"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Filter holds combined search criteria. Zero values match everything.
type Filter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

var comparators = map[SortField]func(a, b SweetDto) int{
	SortByName:     func(a, b SweetDto) int { return strings.Compare(a.Name, b.Name) },
	SortByPrice:    func(a, b SweetDto) int { return cmp.Compare(a.Price, b.Price) },
	SortByQuantity: func(a, b SweetDto) int { return cmp.Compare(a.Quantity, b.Quantity) },
	SortByCategory: func(a, b SweetDto) int { return strings.Compare(a.Category, b.Category) },
}

// SearchByName returns sweets whose name contains term, ignoring case.
func (s *Service) SearchByName(_ context.Context, term string) []SweetDto {
	all := s.snapshot()
	if isBlank(term) {
		return all
	}
	return filter(all, nameContains(term))
}

// SearchByCategory returns sweets whose category matches term exactly, ignoring case.
func (s *Service) SearchByCategory(_ context.Context, term string) []SweetDto {
	all := s.snapshot()
	if isBlank(term) {
		return all
	}
	return filter(all, categoryEquals(term))
}

// SearchByPriceRange returns sweets priced within the inclusive range.
func (s *Service) SearchByPriceRange(_ context.Context, minPrice, maxPrice float64) ([]SweetDto, error) {
	if err := validatePriceRange(minPrice, maxPrice); err != nil {
		return nil, err
	}
	return filter(s.snapshot(), priceBetween(minPrice, maxPrice)), nil
}

// Filter applies every non-empty criterion of f.
func (s *Service) Filter(_ context.Context, f Filter) ([]SweetDto, error) {
	var predicates []func(SweetDto) bool
	if !isBlank(f.Name) {
		predicates = append(predicates, nameContains(f.Name))
	}
	if !isBlank(f.Category) {
		predicates = append(predicates, categoryEquals(f.Category))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		minPrice, maxPrice := 0.0, math.Inf(1)
		if f.MinPrice != nil {
			minPrice = *f.MinPrice
		}
		if f.MaxPrice != nil {
			maxPrice = *f.MaxPrice
		}
		if err := validatePriceRange(minPrice, maxPrice); err != nil {
			return nil, err
		}
		predicates = append(predicates, priceBetween(minPrice, maxPrice))
	}

	return filter(s.snapshot(), func(d SweetDto) bool {
		for _, p := range predicates {
			if !p(d) {
				return false
			}
		}
		return true
	}), nil
}

// SortedByName returns sweets sorted by name, ascending.
func (s *Service) SortedByName(ctx context.Context) []SweetDto {
	sorted, _ := s.Sorted(ctx, SortByName, Ascending)
	return sorted
}

// SortedByPrice returns sweets sorted by price, ascending.
func (s *Service) SortedByPrice(ctx context.Context) []SweetDto {
	sorted, _ := s.Sorted(ctx, SortByPrice, Ascending)
	return sorted
}

// Sorted returns a stably sorted copy of the inventory.
func (s *Service) Sorted(_ context.Context, field SortField, order SortOrder) ([]SweetDto, error) {
	compare, ok := comparators[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", sweeterrors.ErrInvalidArgument, field)
	}
	if order == Descending {
		asc := compare
		compare = func(a, b SweetDto) int { return asc(b, a) }
	} else if order != Ascending {
		return nil, fmt.Errorf("%w: unknown sort order %q", sweeterrors.ErrInvalidArgument, order)
	}

	sweets := s.snapshot()
	slices.SortStableFunc(sweets, compare)
	return sweets, nil
}

// Categories returns the distinct categories in ascending order.
func (s *Service) Categories(_ context.Context) []string {
	categories := make([]string, 0)
	for _, sweet := range s.repository.FindAll() {
		categories = append(categories, sweet.Category)
	}
	slices.Sort(categories)
	return slices.Compact(categories)
}

// LowStock returns sweets below the low-stock threshold.
func (s *Service) LowStock(_ context.Context) []SweetDto {
	return filter(s.snapshot(), SweetDto.IsLowStock)
}

// snapshot returns the current inventory as DTOs, ordered by ID.
func (s *Service) snapshot() []SweetDto {
	return toDtos(s.repository.FindAll())
}

func validatePriceRange(minPrice, maxPrice float64) error {
	if math.IsNaN(minPrice) || math.IsNaN(maxPrice) || minPrice < 0 || maxPrice < 0 || minPrice > maxPrice {
		return fmt.Errorf("%w: invalid price range [%.2f, %.2f]", sweeterrors.ErrInvalidArgument, minPrice, maxPrice)
	}
	return nil
}

func nameContains(term string) func(SweetDto) bool {
	lower := strings.ToLower(term)
	return func(d SweetDto) bool {
		return strings.Contains(strings.ToLower(d.Name), lower)
	}
}

func categoryEquals(term string) func(SweetDto) bool {
	return func(d SweetDto) bool {
		return strings.EqualFold(d.Category, term)
	}
}

func priceBetween(minPrice, maxPrice float64) func(SweetDto) bool {
	return func(d SweetDto) bool {
		return d.Price >= minPrice && d.Price <= maxPrice
	}
}

func filter(sweets []SweetDto, keep func(SweetDto) bool) []SweetDto {
	result := make([]SweetDto, 0, len(sweets))
	for _, sweet := range sweets {
		if keep(sweet) {
			result = append(result, sweet)
		}
	}
	return result
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
