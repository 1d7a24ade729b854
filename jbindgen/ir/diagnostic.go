package ir

import (
	"errors"
	"fmt"
	"slices"
)

// Diagnostic is one reported issue. Diagnostics never stop generation.
type Diagnostic struct {
	Kind     ErrorCode `json:"kind"`
	Location string    `json:"location"`
	Message  string    `json:"message"`
}

// String renders "location: kind: message".
func (d Diagnostic) String() string {
	if d.Location == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Kind, d.Message)
}

// Diagnostics is an append-only list of diagnostics.
// The zero value is ready to use.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(kind ErrorCode, location, message string) {
	d.items = append(d.items, Diagnostic{Kind: kind, Location: location, Message: message})
}

// Addf appends a diagnostic with a formatted message.
func (d *Diagnostics) Addf(kind ErrorCode, location, format string, args ...any) {
	d.Add(kind, location, fmt.Sprintf(format, args...))
}

// coded is implemented by the typed errors in this package.
type coded interface {
	error
	Code() ErrorCode
	Location() string
}

// Report converts a recoverable error into a diagnostic.
func (d *Diagnostics) Report(err error) {
	if err == nil {
		return
	}
	var c coded
	if errors.As(err, &c) {
		d.Add(c.Code(), c.Location(), err.Error())
		return
	}
	d.Add(CodeInvalidCatalog, "", err.Error())
}

// All returns a copy of the diagnostics in report order.
func (d *Diagnostics) All() []Diagnostic {
	return slices.Clone(d.items)
}

// Count returns the number of diagnostics.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// CountKind returns the number of diagnostics of one kind.
func (d *Diagnostics) CountKind(kind ErrorCode) int {
	n := 0
	for _, it := range d.items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Summary returns a one-line count, e.g. "3 diagnostics".
func (d *Diagnostics) Summary() string {
	if len(d.items) == 1 {
		return "1 diagnostic"
	}
	return fmt.Sprintf("%d diagnostics", len(d.items))
}
