// Package errors provides custom error types for sweet inventory operations.
package errors

import "errors"

var (
	// ErrValidation is returned when a sweet fails field validation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateID is returned when inserting a sweet whose ID is taken.
	ErrDuplicateID = errors.New("sweet with this ID already exists")
	// ErrSweetNotFound is returned when no sweet has the requested ID.
	ErrSweetNotFound = errors.New("sweet not found")
	// ErrInvalidArgument is returned when an operation argument is out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock is returned when a purchase exceeds the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)
