package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownIngredient rejects a mutation referencing an ingredient
	// that is not in the caller's available set; prior state is kept.
	ErrUnknownIngredient = errors.New("ingredient not found in available set")

	// ErrForbidden guards the shared default library: its entries are
	// never mutated or deleted through the API.
	ErrForbidden = errors.New("default library entries are read-only")

	ErrNotFound  = errors.New("not found")
	ErrEmptySlot = errors.New("meal slot is empty")
)

// StorageError wraps a persistence failure at the collaborator boundary.
// It is surfaced as a notification, never propagated into the numeric core.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
