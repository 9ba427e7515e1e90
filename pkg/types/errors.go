package types

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every caller-correctable input failure.
// All sentinels below wrap it, so errors.Is(err, ErrInvalidArgument) holds
// for any rejected constructor or method input.
var ErrInvalidArgument = errors.New("invalid argument")

// Entity validation errors.
var (
	ErrInvalidName        = invalid("name must not be empty")
	ErrInvalidPrice       = invalid("price must not be negative")
	ErrCategoryMismatch   = invalid("menu item belongs to a different category")
	ErrInvalidQuantity    = invalid("quantity must be positive")
	ErrInvalidTableNumber = invalid("table number must be positive")
	ErrInvalidCapacity    = invalid("table capacity must be positive")
	ErrInvalidStaffID     = invalid("wait staff ID must not be empty")
	ErrInvalidStatus      = invalid("unknown status value")
	ErrInvalidTransition  = invalid("invalid status transition")
	ErrNilMenuItem        = invalid("menu item must not be nil")
	ErrCategorySealed     = invalid("category is owned by a catalog and cannot change")
)

// Queue and floor errors.
var (
	ErrNilOrder         = invalid("order must not be nil")
	ErrDuplicateOrder   = invalid("order is already queued")
	ErrUnknownTable     = invalid("table does not exist")
	ErrTableUnavailable = invalid("table is not available for a new order")
	ErrOrderNotQueued   = invalid("order is not in the queue")
	ErrUnknownStaff     = invalid("wait staff is not on the roster")
	ErrEmptyOrder       = invalid("order has no items")
	ErrUnknownMenuItem  = invalid("menu item is not in the catalog")
	ErrOrderClosed      = invalid("order is paid or cancelled")
)

// Config validation errors.
var (
	ErrTablesInvalid   = invalid("table count must be positive")
	ErrSeatsInvalid    = invalid("seats per table must be positive")
	ErrPolicyUnknown   = invalid("unknown table policy")
	ErrLogLevelUnknown = invalid("unknown log level")
)

type argumentError struct {
	msg string
}

func (e *argumentError) Error() string { return e.msg }

func (e *argumentError) Unwrap() error { return ErrInvalidArgument }

func invalid(msg string) error {
	return &argumentError{msg: msg}
}

// wrapf attaches detail to a sentinel while keeping it matchable.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
