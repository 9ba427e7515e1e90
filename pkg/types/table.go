package types

import (
	"fmt"
	"strings"
)

// TableStatus is the occupancy state of a dining table.
type TableStatus string

// Table statuses.
const (
	TableVacant        TableStatus = "VACANT"
	TableOccupied      TableStatus = "OCCUPIED"
	TableReserved      TableStatus = "RESERVED"
	TableNeedsCleaning TableStatus = "NEEDS_CLEANING"
)

// validTableStatuses is the set of recognized table status values.
var validTableStatuses = map[TableStatus]bool{
	TableVacant:        true,
	TableOccupied:      true,
	TableReserved:      true,
	TableNeedsCleaning: true,
}

// Valid reports whether s is a recognized table status.
func (s TableStatus) Valid() bool { return validTableStatuses[s] }

// ParseTableStatus converts user input such as "needs_cleaning" to a
// TableStatus. Returns ErrInvalidStatus for unknown values.
func ParseTableStatus(s string) (TableStatus, error) {
	st := TableStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", wrapf(ErrInvalidStatus, "table status %q", s)
	}
	return st, nil
}

// Table is a dining table. Number and capacity never change after creation;
// the status is mutable and carries no transition rules of its own.
type Table struct {
	number   int
	capacity int
	status   TableStatus
}

// NewTable creates a vacant table.
func NewTable(number, capacity int) (*Table, error) {
	if number <= 0 {
		return nil, wrapf(ErrInvalidTableNumber, "%d", number)
	}
	if capacity <= 0 {
		return nil, wrapf(ErrInvalidCapacity, "table %d: %d", number, capacity)
	}
	return &Table{number: number, capacity: capacity, status: TableVacant}, nil
}

// Number returns the table number.
func (t *Table) Number() int { return t.number }

// Capacity returns the number of seats.
func (t *Table) Capacity() int { return t.capacity }

// Status returns the current status.
func (t *Table) Status() TableStatus { return t.status }

// SetStatus sets the status to any recognized value.
// Returns ErrInvalidStatus for unknown values; the status is left unchanged.
func (t *Table) SetStatus(status TableStatus) error {
	if !status.Valid() {
		return wrapf(ErrInvalidStatus, "table %d: %q", t.number, status)
	}
	t.status = status
	return nil
}

func (t *Table) String() string {
	return fmt.Sprintf("Table %d (%d seats, %s)", t.number, t.capacity, t.status)
}
