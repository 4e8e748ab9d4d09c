package zease

import (
	"errors"

	"github.com/zigrok/zease/store"
)

var _ error = (*Error)(nil)

// ErrorName represents the name of an error.
type ErrorName string

const (
	// StoreClosedError is emitted when a store is mutated after Close.
	StoreClosedError ErrorName = "StoreClosedError"

	// EntryBudgetExceededError is emitted when an insert would exceed
	// the configured MaxEntries cap.
	EntryBudgetExceededError ErrorName = "EntryBudgetExceededError"

	// KeyBudgetExceededError is emitted when an insert would exceed the
	// configured MaxKeyBytes cap.
	KeyBudgetExceededError ErrorName = "KeyBudgetExceededError"

	// InvalidEngineError is emitted when Options name an unknown engine.
	InvalidEngineError ErrorName = "InvalidEngineError"

	// InvalidShardCountError is emitted when a shard count cannot be used.
	InvalidShardCountError ErrorName = "InvalidShardCountError"
)

// Error is the named error surface exposed to embedding hosts that want
// stable, machine-readable error identities instead of sentinel chains.
type Error struct {
	// Name contains one of the ErrorName constants.
	Name ErrorName `json:"name"`

	// Message is the human-readable description for the given name.
	Message string `json:"message"`
}

// NewError returns a new Error instance.
func NewError(name ErrorName, message string) *Error {
	return &Error{
		Name:    name,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Name) + ": " + e.Message
}

// Classify translates internal sentinel errors into named Errors.
// Errors that are already named pass through unchanged; errors with no
// mapping are returned as-is so nothing is swallowed.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var named *Error
	if errors.As(err, &named) {
		return named
	}

	switch {
	case errors.Is(err, store.ErrStoreClosed):
		return NewError(StoreClosedError, err.Error())
	case errors.Is(err, store.ErrEntryBudgetExceeded):
		return NewError(EntryBudgetExceededError, err.Error())
	case errors.Is(err, store.ErrKeyBudgetExceeded):
		return NewError(KeyBudgetExceededError, err.Error())
	case errors.Is(err, store.ErrInvalidShardCount):
		return NewError(InvalidShardCountError, err.Error())
	case errors.Is(err, ErrInvalidEngine):
		return NewError(InvalidEngineError, err.Error())
	}

	return err
}
