package types

import "strings"

// WaitStaff is a server who can be assigned to orders. Identity is the ID.
type WaitStaff struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// NewWaitStaff trims and validates both fields.
func NewWaitStaff(id, name string) (WaitStaff, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return WaitStaff{}, ErrInvalidStaffID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return WaitStaff{}, wrapf(ErrInvalidName, "wait staff %q", id)
	}
	return WaitStaff{ID: id, Name: name}, nil
}

func (w WaitStaff) String() string { return w.Name }
