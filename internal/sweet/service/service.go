// Package service provides the implementation of sweet inventory business logic.
package service

import (
	"context"
	"fmt"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
	"github.com/abgdnv/sweetshop/internal/sweet/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abgdnv/sweetshop/internal/sweet/service"

// SweetService defines the methods for managing the sweet inventory.
// It abstracts the underlying business logic and data access.
type SweetService interface {
	// Create adds a new sweet. A nil ID asks the store to generate one.
	// Returns ErrValidation for invalid fields and ErrDuplicateID if the ID is taken.
	Create(ctx context.Context, sweet SweetCreateDto) (*SweetDto, error)

	// DeleteByID removes a sweet and reports whether it existed.
	DeleteByID(ctx context.Context, id int) bool

	// FindByID retrieves a single sweet. The boolean is false when no sweet has the ID.
	FindByID(ctx context.Context, id int) (*SweetDto, bool)

	// FindAll returns all sweets ordered by ID.
	// Returns an empty slice if no sweets exist.
	FindAll(ctx context.Context) []SweetDto

	// SearchByName returns sweets whose name contains term, ignoring case.
	// A blank term returns every sweet.
	SearchByName(ctx context.Context, term string) []SweetDto

	// SearchByCategory returns sweets whose category equals term, ignoring case.
	// A blank term returns every sweet.
	SearchByCategory(ctx context.Context, term string) []SweetDto

	// SearchByPriceRange returns sweets priced within [minPrice, maxPrice].
	// Returns ErrInvalidArgument for a negative bound or minPrice > maxPrice.
	SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]SweetDto, error)

	// Filter combines name, category and price criteria.
	Filter(ctx context.Context, filter Filter) ([]SweetDto, error)

	// SortedByName returns sweets in ascending name order.
	SortedByName(ctx context.Context) []SweetDto

	// SortedByPrice returns sweets in ascending price order, equal prices keep ID order.
	SortedByPrice(ctx context.Context) []SweetDto

	// Sorted returns sweets ordered by any sortable field in either direction.
	// Returns ErrInvalidArgument for an unknown field or order.
	Sorted(ctx context.Context, field SortField, order SortOrder) ([]SweetDto, error)

	// Purchase takes amount units out of stock.
	// Returns ErrSweetNotFound, ErrInvalidArgument for a non-positive amount
	// or ErrInsufficientStock when amount exceeds the stock.
	Purchase(ctx context.Context, id int, amount int) (*SweetDto, error)

	// Restock adds amount units to stock.
	// Returns ErrSweetNotFound or ErrInvalidArgument for a non-positive amount.
	Restock(ctx context.Context, id int, amount int) (*SweetDto, error)

	// Rename changes the name. Returns ErrValidation for a blank name.
	Rename(ctx context.Context, id int, name string) (*SweetDto, error)

	// Recategorize changes the category.
	Recategorize(ctx context.Context, id int, category string) (*SweetDto, error)

	// Reprice changes the price. Returns ErrValidation for a negative price.
	Reprice(ctx context.Context, id int, price float64) (*SweetDto, error)

	// Resize overwrites the stock level. Returns ErrValidation for a negative quantity.
	Resize(ctx context.Context, id int, quantity int) (*SweetDto, error)

	// Categories returns the distinct categories in ascending order.
	Categories(ctx context.Context) []string

	// LowStock returns sweets whose quantity is below the low-stock threshold.
	LowStock(ctx context.Context) []SweetDto

	// Statistics computes aggregates over the current inventory.
	Statistics(ctx context.Context) Statistics

	// Size returns the number of sweets.
	Size(ctx context.Context) int

	// Clear removes every sweet.
	Clear(ctx context.Context)
}

// Service implements SweetService and provides methods to manage sweets.
type Service struct {
	repository store.SweetStore
	tracer     trace.Tracer
}

// NewService creates a new instance of SweetService with the provided repository.
func NewService(repo store.SweetStore) *Service {
	return &Service{
		repository: repo,
		tracer:     otel.Tracer(tracerName),
	}
}

// SweetCreateDto represents the data transfer object for creating a new sweet.
type SweetCreateDto struct {
	ID       *int
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetDto represents the data transfer object for a sweet.
type SweetDto struct {
	ID       int
	Name     string
	Category string
	Price    float64
	Quantity int
}

// IsLowStock reports whether the sweet is below the low-stock threshold.
func (d SweetDto) IsLowStock() bool {
	return d.Quantity < store.LowStockThreshold
}

// String renders the sweet in the same form as store.Sweet.
func (d SweetDto) String() string {
	sweet := store.Sweet{ID: d.ID, Name: d.Name, Category: d.Category, Price: d.Price, Quantity: d.Quantity}
	return sweet.String()
}

// Create creates a new sweet and returns it as a SweetDto.
func (s *Service) Create(ctx context.Context, sweet SweetCreateDto) (_ *SweetDto, err error) {
	_, span := s.tracer.Start(ctx, "SweetService.Create")
	defer func() { finishSpan(span, err) }()

	var created *store.Sweet
	if sweet.ID == nil {
		created, err = s.repository.Create(sweet.Name, sweet.Category, sweet.Price, sweet.Quantity)
	} else {
		created, err = store.NewSweet(*sweet.ID, sweet.Name, sweet.Category, sweet.Price, sweet.Quantity)
		if err == nil {
			err = s.repository.Insert(created)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create sweet: %w", err)
	}
	span.SetAttributes(attribute.Int("sweet.id", created.ID))

	return toDto(created), nil
}

// DeleteByID deletes a sweet by its ID.
func (s *Service) DeleteByID(ctx context.Context, id int) bool {
	_, span := s.tracer.Start(ctx, "SweetService.DeleteByID", trace.WithAttributes(attribute.Int("sweet.id", id)))
	defer span.End()

	deleted := s.repository.DeleteByID(id)
	span.SetAttributes(attribute.Bool("sweet.deleted", deleted))
	return deleted
}

// FindByID retrieves a sweet by its ID and returns it as a SweetDto.
func (s *Service) FindByID(_ context.Context, id int) (*SweetDto, bool) {
	sweet, ok := s.repository.FindByID(id)
	if !ok {
		return nil, false
	}
	return toDto(sweet), true
}

// FindAll retrieves a list of all sweets and returns them as SweetDTOs.
func (s *Service) FindAll(_ context.Context) []SweetDto {
	return s.snapshot()
}

// Purchase decrements the stock of a sweet and returns the updated sweet.
func (s *Service) Purchase(ctx context.Context, id int, amount int) (_ *SweetDto, err error) {
	_, span := s.tracer.Start(ctx, "SweetService.Purchase", trace.WithAttributes(
		attribute.Int("sweet.id", id),
		attribute.Int("sweet.amount", amount),
	))
	defer func() { finishSpan(span, err) }()

	if _, ok := s.repository.FindByID(id); !ok {
		return nil, fmt.Errorf("failed to purchase sweet with ID %d: %w", id, sweeterrors.ErrSweetNotFound)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("failed to purchase sweet with ID %d: %w: purchase quantity must be positive", id, sweeterrors.ErrInvalidArgument)
	}
	updated, err := s.repository.Update(id, func(sweet *store.Sweet) error {
		return sweet.Decrease(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to purchase sweet with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// Restock increments the stock of a sweet and returns the updated sweet.
func (s *Service) Restock(ctx context.Context, id int, amount int) (_ *SweetDto, err error) {
	_, span := s.tracer.Start(ctx, "SweetService.Restock", trace.WithAttributes(
		attribute.Int("sweet.id", id),
		attribute.Int("sweet.amount", amount),
	))
	defer func() { finishSpan(span, err) }()

	if _, ok := s.repository.FindByID(id); !ok {
		return nil, fmt.Errorf("failed to restock sweet with ID %d: %w", id, sweeterrors.ErrSweetNotFound)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("failed to restock sweet with ID %d: %w: restock quantity must be positive", id, sweeterrors.ErrInvalidArgument)
	}
	updated, err := s.repository.Update(id, func(sweet *store.Sweet) error {
		return sweet.Increase(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restock sweet with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// Rename changes the name of a sweet.
func (s *Service) Rename(ctx context.Context, id int, name string) (*SweetDto, error) {
	return s.update(ctx, "Rename", id, func(sweet *store.Sweet) error {
		return sweet.SetName(name)
	})
}

// Recategorize changes the category of a sweet.
func (s *Service) Recategorize(ctx context.Context, id int, category string) (*SweetDto, error) {
	return s.update(ctx, "Recategorize", id, func(sweet *store.Sweet) error {
		sweet.SetCategory(category)
		return nil
	})
}

// Reprice changes the price of a sweet.
func (s *Service) Reprice(ctx context.Context, id int, price float64) (*SweetDto, error) {
	return s.update(ctx, "Reprice", id, func(sweet *store.Sweet) error {
		return sweet.SetPrice(price)
	})
}

// Resize overwrites the stock level of a sweet.
func (s *Service) Resize(ctx context.Context, id int, quantity int) (*SweetDto, error) {
	return s.update(ctx, "Resize", id, func(sweet *store.Sweet) error {
		return sweet.SetQuantity(quantity)
	})
}

// Size returns the number of sweets in the inventory.
func (s *Service) Size(_ context.Context) int {
	return s.repository.Size()
}

// Clear empties the inventory.
func (s *Service) Clear(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "SweetService.Clear")
	defer span.End()

	s.repository.Clear()
}

func (s *Service) update(ctx context.Context, op string, id int, fn func(sweet *store.Sweet) error) (_ *SweetDto, err error) {
	_, span := s.tracer.Start(ctx, "SweetService."+op, trace.WithAttributes(attribute.Int("sweet.id", id)))
	defer func() { finishSpan(span, err) }()

	updated, err := s.repository.Update(id, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to update sweet with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

// finishSpan records err on the span, if any, and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// toDto converts a store.Sweet to a SweetDto.
func toDto(sweet *store.Sweet) *SweetDto {
	return &SweetDto{
		ID:       sweet.ID,
		Name:     sweet.Name,
		Category: sweet.Category,
		Price:    sweet.Price,
		Quantity: sweet.Quantity,
	}
}

func toDtos(sweets []store.Sweet) []SweetDto {
	dtos := make([]SweetDto, len(sweets))
	for i, item := range sweets {
		dtos[i] = *toDto(&item)
	}
	return dtos
}
