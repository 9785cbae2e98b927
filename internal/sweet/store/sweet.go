package store

import (
	"errors"
	"fmt"
	"math"
	"strings"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
	"github.com/go-playground/validator/v10"
)

// LowStockThreshold is the quantity below which a sweet counts as low on stock.
const LowStockThreshold = 10

var validate = newValidator()

// Sweet is one inventory record.
type Sweet struct {
	ID       int
	Name     string  `validate:"notblank"`
	Category string
	Price    float64 `validate:"finite,gte=0"`
	Quantity int     `validate:"gte=0"`
}

// NewSweet creates a sweet with the given ID after validating every field.
func NewSweet(id int, name, category string, price float64, quantity int) (*Sweet, error) {
	s := &Sweet{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the sweet against its invariants.
func (s *Sweet) Validate() error {
	if err := validate.Struct(s); err != nil {
		return toValidationError(err)
	}
	return nil
}

// SetName renames the sweet. The sweet is left untouched on error.
func (s *Sweet) SetName(name string) error {
	if err := validateField("Name", name, "notblank"); err != nil {
		return err
	}
	s.Name = name
	return nil
}

// SetCategory changes the category. Any text is accepted.
func (s *Sweet) SetCategory(category string) {
	s.Category = category
}

// SetPrice changes the price. The sweet is left untouched on error.
func (s *Sweet) SetPrice(price float64) error {
	if err := validateField("Price", price, "finite,gte=0"); err != nil {
		return err
	}
	s.Price = price
	return nil
}

// SetQuantity overwrites the stock level. The sweet is left untouched on error.
func (s *Sweet) SetQuantity(quantity int) error {
	if err := validateField("Quantity", quantity, "gte=0"); err != nil {
		return err
	}
	s.Quantity = quantity
	return nil
}

// Decrease takes amount units out of stock.
// Returns ErrInsufficientStock without touching the quantity if amount exceeds the stock.
func (s *Sweet) Decrease(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", sweeterrors.ErrInvalidArgument)
	}
	if amount > s.Quantity {
		return fmt.Errorf("%w: available %d, requested %d", sweeterrors.ErrInsufficientStock, s.Quantity, amount)
	}
	s.Quantity -= amount
	return nil
}

// Increase adds amount units to stock.
func (s *Sweet) Increase(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", sweeterrors.ErrInvalidArgument)
	}
	if s.Quantity > math.MaxInt-amount {
		return fmt.Errorf("%w: quantity would overflow", sweeterrors.ErrInvalidArgument)
	}
	s.Quantity += amount
	return nil
}

// IsLowStock reports whether the quantity is below LowStockThreshold.
func (s *Sweet) IsLowStock() bool {
	return s.Quantity < LowStockThreshold
}

// Equal reports whether both sweets share the same ID. Other fields are ignored.
func (s *Sweet) Equal(other *Sweet) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

func (s *Sweet) String() string {
	return fmt.Sprintf("Sweet[id=%d, name='%s', category='%s', price=%.2f, quantity=%d]",
		s.ID, s.Name, s.Category, s.Price, s.Quantity)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects strings that are empty once surrounding whitespace is removed
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

func validateField(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fmt.Errorf("%w: %s failed on rule: %s", sweeterrors.ErrValidation, field, validationErrors[0].Tag())
	}
	return fmt.Errorf("%w: %s: %v", sweeterrors.ErrValidation, field, err)
}

// toValidationError flattens validator errors into a single ErrValidation.
func toValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", sweeterrors.ErrValidation, err)
	}
	rules := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		rules = append(rules, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
	}
	return fmt.Errorf("%w: %s", sweeterrors.ErrValidation, strings.Join(rules, ", "))
}
