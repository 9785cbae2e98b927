package service

import (
	"context"
	"math"
	"testing"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
	"github.com/abgdnv/sweetshop/internal/sweet/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// newSeededService returns a service over a fresh in-memory store holding the given sweets.
func newSeededService(t *testing.T, sweets ...store.Sweet) *Service {
	t.Helper()
	repo := store.NewInMemoryStore()
	for _, s := range sweets {
		sweet := s
		require.NoError(t, repo.Insert(&sweet))
	}
	return NewService(repo)
}

func threeSweets() []store.Sweet {
	return []store.Sweet{
		{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50.0, Quantity: 20},
		{ID: 1002, Name: "Gajar Halwa", Category: "Vegetable-Based", Price: 30.0, Quantity: 15},
		{ID: 1003, Name: "Gulab Jamun", Category: "Milk-Based", Price: 10.0, Quantity: 50},
	}
}

func ids(sweets []SweetDto) []int {
	result := make([]int, len(sweets))
	for i, s := range sweets {
		result[i] = s.ID
	}
	return result
}

func Test_SweetService_Create(t *testing.T) {
	testCases := []struct {
		name        string
		dto         SweetCreateDto
		expected    *SweetDto
		expectError error
	}{
		{
			name:     "Success - explicit ID",
			dto:      SweetCreateDto{ID: intPtr(1001), Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			expected: &SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
		},
		{
			name:     "Success - generated ID",
			dto:      SweetCreateDto{Name: "Gulab Jamun", Category: "Milk-Based", Price: 10, Quantity: 50},
			expected: &SweetDto{ID: store.FirstGeneratedID, Name: "Gulab Jamun", Category: "Milk-Based", Price: 10, Quantity: 50},
		},
		{
			name:        "Error - blank name",
			dto:         SweetCreateDto{ID: intPtr(1001), Name: "  ", Price: 10, Quantity: 50},
			expectError: sweeterrors.ErrValidation,
		},
		{
			name:        "Error - negative price with generated ID",
			dto:         SweetCreateDto{Name: "Jalebi", Price: -8, Quantity: 60},
			expectError: sweeterrors.ErrValidation,
		},
		{
			name:        "Error - negative quantity",
			dto:         SweetCreateDto{ID: intPtr(1005), Name: "Jalebi", Price: 8, Quantity: -60},
			expectError: sweeterrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newSeededService(t)
			// when
			created, err := service.Create(context.Background(), tc.dto)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				assert.Equal(t, 0, service.Size(context.Background()))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
			assert.Equal(t, 1, service.Size(context.Background()))
		})
	}
}

func Test_SweetService_Create_DuplicateID(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)
	_, err := service.Create(ctx, SweetCreateDto{ID: intPtr(1001), Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20})
	require.NoError(t, err)

	_, err = service.Create(ctx, SweetCreateDto{ID: intPtr(1001), Name: "Different Sweet", Category: "Chocolate", Price: 30, Quantity: 10})

	assert.ErrorIs(t, err, sweeterrors.ErrDuplicateID)
	found, ok := service.FindByID(ctx, 1001)
	require.True(t, ok)
	assert.Equal(t, "Kaju Katli", found.Name)
	assert.Equal(t, 1, service.Size(ctx))
}

func Test_SweetService_FindByID(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t, threeSweets()...)

	found, ok := service.FindByID(ctx, 1002)
	require.True(t, ok)
	assert.Equal(t, &SweetDto{ID: 1002, Name: "Gajar Halwa", Category: "Vegetable-Based", Price: 30, Quantity: 15}, found)

	missing, ok := service.FindByID(ctx, 9999)
	assert.False(t, ok)
	assert.Nil(t, missing)
}

func Test_SweetService_FindAll(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, newSeededService(t).FindAll(ctx))

	service := newSeededService(t, threeSweets()...)
	assert.Equal(t, []int{1001, 1002, 1003}, ids(service.FindAll(ctx)))
}

func Test_SweetService_DeleteByID(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t, threeSweets()...)

	assert.True(t, service.DeleteByID(ctx, 1001))
	assert.Equal(t, 2, service.Size(ctx))
	_, ok := service.FindByID(ctx, 1001)
	assert.False(t, ok)

	assert.False(t, service.DeleteByID(ctx, 9999))
	assert.Equal(t, 2, service.Size(ctx))
}

func Test_SweetService_SearchByName(t *testing.T) {
	sweets := []store.Sweet{
		{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
		{ID: 1002, Name: "Kaju Barfi", Category: "Nut-Based", Price: 45, Quantity: 15},
		{ID: 1003, Name: "Gulab Jamun", Category: "Milk-Based", Price: 10, Quantity: 50},
	}
	testCases := []struct {
		name     string
		term     string
		expected []int
	}{
		{name: "Prefix match", term: "Kaju", expected: []int{1001, 1002}},
		{name: "Case insensitive", term: "kAJU", expected: []int{1001, 1002}},
		{name: "Substring in the middle", term: "jam", expected: []int{1003}},
		{name: "No match", term: "Ladoo", expected: []int{}},
		{name: "Empty term returns all", term: "", expected: []int{1001, 1002, 1003}},
		{name: "Blank term returns all", term: "   ", expected: []int{1001, 1002, 1003}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newSeededService(t, sweets...)
			// when
			found := service.SearchByName(context.Background(), tc.term)
			// then
			assert.Equal(t, tc.expected, ids(found))
		})
	}
}

func Test_SweetService_SearchByCategory(t *testing.T) {
	sweets := []store.Sweet{
		{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
		{ID: 1002, Name: "Almond Barfi", Category: "Nut-Based", Price: 60, Quantity: 10},
		{ID: 1003, Name: "Gulab Jamun", Category: "Milk-Based", Price: 10, Quantity: 50},
		{ID: 1004, Name: "Pista Roll", Category: "Nut-Based Premium", Price: 70, Quantity: 5},
	}
	testCases := []struct {
		name     string
		term     string
		expected []int
	}{
		{name: "Exact match", term: "Nut-Based", expected: []int{1001, 1002}},
		{name: "Different casing matches", term: "NUT-BASED", expected: []int{1001, 1002}},
		{name: "Substring does not match", term: "Nut", expected: []int{}},
		{name: "Empty term returns all", term: "", expected: []int{1001, 1002, 1003, 1004}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newSeededService(t, sweets...)
			// when
			found := service.SearchByCategory(context.Background(), tc.term)
			// then
			assert.Equal(t, tc.expected, ids(found))
		})
	}
}

func Test_SweetService_SearchByPriceRange(t *testing.T) {
	testCases := []struct {
		name        string
		minPrice    float64
		maxPrice    float64
		expected    []int
		expectError error
	}{
		{name: "Success - middle of the range", minPrice: 20, maxPrice: 40, expected: []int{1002}},
		{name: "Success - bounds are inclusive", minPrice: 10, maxPrice: 30, expected: []int{1002, 1003}},
		{name: "Success - single point", minPrice: 50, maxPrice: 50, expected: []int{1001}},
		{name: "Success - nothing in range", minPrice: 60, maxPrice: 100, expected: []int{}},
		{name: "Error - negative min", minPrice: -1, maxPrice: 10, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - negative max", minPrice: 0, maxPrice: -10, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - min greater than max", minPrice: 40, maxPrice: 20, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - NaN min", minPrice: math.NaN(), maxPrice: 10, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - NaN max", minPrice: 0, maxPrice: math.NaN(), expectError: sweeterrors.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newSeededService(t, threeSweets()...)
			// when
			found, err := service.SearchByPriceRange(context.Background(), tc.minPrice, tc.maxPrice)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ids(found))
		})
	}
}

func Test_SweetService_ThreeSweetScenario(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t, threeSweets()...)

	found, err := service.SearchByPriceRange(ctx, 20.0, 40.0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gajar Halwa", found[0].Name)

	stats := service.Statistics(ctx)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, "85", stats.TotalQuantity.String())
	assert.Equal(t, 1950.0, stats.TotalValue)
	assert.Equal(t, 30.0, stats.AveragePrice)
	assert.Equal(t, 0, stats.LowStockCount)
	assert.Equal(t, 3, stats.Categories)
}

func Test_SweetService_Purchase(t *testing.T) {
	testCases := []struct {
		name        string
		id          int
		amount      int
		expectQty   int
		expectError error
	}{
		{name: "Success - partial purchase", id: 1001, amount: 5, expectQty: 15},
		{name: "Success - whole stock", id: 1001, amount: 20, expectQty: 0},
		{name: "Error - unknown sweet", id: 9999, amount: 1, expectQty: 20, expectError: sweeterrors.ErrSweetNotFound},
		{name: "Error - unknown sweet wins over bad amount", id: 9999, amount: 0, expectQty: 20, expectError: sweeterrors.ErrSweetNotFound},
		{name: "Error - zero amount", id: 1001, amount: 0, expectQty: 20, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - negative amount", id: 1001, amount: -3, expectQty: 20, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - insufficient stock", id: 1001, amount: 21, expectQty: 20, expectError: sweeterrors.ErrInsufficientStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			service := newSeededService(t, threeSweets()...)
			// when
			updated, err := service.Purchase(ctx, tc.id, tc.amount)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectQty, updated.Quantity)
			}
			stored, ok := service.FindByID(ctx, 1001)
			require.True(t, ok)
			assert.Equal(t, tc.expectQty, stored.Quantity)
		})
	}
}

func Test_SweetService_Purchase_DownToZero(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t, threeSweets()...)

	updated, err := service.Purchase(ctx, 1001, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	_, err = service.Purchase(ctx, 1001, 1)
	assert.ErrorIs(t, err, sweeterrors.ErrInsufficientStock)

	// the failure is idempotent
	_, err = service.Purchase(ctx, 1001, 1)
	assert.ErrorIs(t, err, sweeterrors.ErrInsufficientStock)
	stored, _ := service.FindByID(ctx, 1001)
	assert.Equal(t, 0, stored.Quantity)
}

func Test_SweetService_Restock(t *testing.T) {
	testCases := []struct {
		name        string
		id          int
		amount      int
		expectQty   int
		expectError error
	}{
		{name: "Success - restock doubles stock", id: 1002, amount: 15, expectQty: 30},
		{name: "Success - no upper bound", id: 1002, amount: 1_000_000, expectQty: 1_000_015},
		{name: "Error - unknown sweet", id: 9999, amount: 5, expectQty: 15, expectError: sweeterrors.ErrSweetNotFound},
		{name: "Error - zero amount", id: 1002, amount: 0, expectQty: 15, expectError: sweeterrors.ErrInvalidArgument},
		{name: "Error - negative amount", id: 1002, amount: -5, expectQty: 15, expectError: sweeterrors.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			service := newSeededService(t, threeSweets()...)
			// when
			updated, err := service.Restock(ctx, tc.id, tc.amount)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectQty, updated.Quantity)
			}
			stored, ok := service.FindByID(ctx, 1002)
			require.True(t, ok)
			assert.Equal(t, tc.expectQty, stored.Quantity)
		})
	}
}

func Test_SweetService_PurchaseThenRestock_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, amount := range []int{1, 7, 15} {
		service := newSeededService(t, threeSweets()...)
		before, _ := service.FindByID(ctx, 1002)

		_, err := service.Purchase(ctx, 1002, amount)
		require.NoError(t, err)
		after, err := service.Restock(ctx, 1002, amount)
		require.NoError(t, err)

		assert.Equal(t, before.Quantity, after.Quantity, "amount %d", amount)
	}
}

func Test_SweetService_FieldUpdates(t *testing.T) {
	testCases := []struct {
		name        string
		update      func(ctx context.Context, s *Service) (*SweetDto, error)
		expected    SweetDto
		expectError error
	}{
		{
			name: "Success - rename",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Rename(ctx, 1001, "Kaju Barfi")
			},
			expected: SweetDto{ID: 1001, Name: "Kaju Barfi", Category: "Nut-Based", Price: 50, Quantity: 20},
		},
		{
			name: "Success - recategorize to empty",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Recategorize(ctx, 1001, "")
			},
			expected: SweetDto{ID: 1001, Name: "Kaju Katli", Category: "", Price: 50, Quantity: 20},
		},
		{
			name: "Success - reprice",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Reprice(ctx, 1001, 55.5)
			},
			expected: SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 55.5, Quantity: 20},
		},
		{
			name: "Success - resize",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Resize(ctx, 1001, 3)
			},
			expected: SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 3},
		},
		{
			name: "Error - blank name",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Rename(ctx, 1001, " ")
			},
			expected:    SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			expectError: sweeterrors.ErrValidation,
		},
		{
			name: "Error - negative price",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Reprice(ctx, 1001, -1)
			},
			expected:    SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			expectError: sweeterrors.ErrValidation,
		},
		{
			name: "Error - negative quantity",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Resize(ctx, 1001, -1)
			},
			expected:    SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			expectError: sweeterrors.ErrValidation,
		},
		{
			name: "Error - unknown sweet",
			update: func(ctx context.Context, s *Service) (*SweetDto, error) {
				return s.Rename(ctx, 9999, "Ghost")
			},
			expected:    SweetDto{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			expectError: sweeterrors.ErrSweetNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			service := newSeededService(t, threeSweets()...)
			// when
			updated, err := tc.update(ctx, service)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, *updated)
			}
			stored, _ := service.FindByID(ctx, 1001)
			assert.Equal(t, tc.expected, *stored)
		})
	}
}

func Test_SweetService_Clear(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t, threeSweets()...)
	ladoo := SweetCreateDto{Name: "Ladoo", Category: "Gram-Based", Price: 15, Quantity: 30}
	before, err := service.Create(ctx, ladoo)
	require.NoError(t, err)
	assert.Equal(t, 1004, before.ID)

	service.Clear(ctx)

	assert.Equal(t, 0, service.Size(ctx))
	assert.Empty(t, service.FindAll(ctx))
	after, err := service.Create(ctx, ladoo)
	require.NoError(t, err)
	assert.Equal(t, 1005, after.ID)
}
