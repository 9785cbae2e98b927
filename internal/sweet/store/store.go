// Package store provides an interface for sweet storage operations.
package store

// FirstGeneratedID is the first identifier handed out by a store's generator.
const FirstGeneratedID = 1001

// SweetStore is an interface for sweet storage operations.
// It is the sole authority for inserting and removing sweets; callers only ever receive copies.
type SweetStore interface {
	// Insert adds a sweet that already carries its identifier.
	// Returns ErrInvalidArgument for a nil sweet, ErrValidation if the sweet breaks an invariant
	// and ErrDuplicateID if the identifier is taken. The first sweet with an ID is kept.
	Insert(sweet *Sweet) error

	// Create validates the fields, assigns the next available identifier and stores the sweet.
	// Returns ErrValidation if any field is invalid; no identifier is consumed in that case.
	Create(name, category string, price float64, quantity int) (*Sweet, error)

	// FindByID returns a copy of the sweet and true, or nil and false when no sweet has the ID.
	FindByID(id int) (*Sweet, bool)

	// FindAll returns a snapshot of all sweets ordered by ascending ID.
	// Returns an empty slice if no sweets exist.
	FindAll() []Sweet

	// Update applies fn to a working copy of the sweet and commits it only if fn succeeds
	// and the result still satisfies every invariant.
	// Returns ErrSweetNotFound if no sweet exists with the given ID.
	Update(id int, fn func(s *Sweet) error) (*Sweet, error)

	// DeleteByID removes a sweet and reports whether it existed.
	DeleteByID(id int) bool

	// Size returns the number of stored sweets.
	Size() int

	// Clear removes every sweet. The ID generator is not rewound.
	Clear()
}
