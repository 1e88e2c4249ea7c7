package report

import (
	"errors"
	"fmt"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/document"
)

// Error reports a failed report request. Err is the underlying cause; use
// errors.Is with aggregator.ErrNotFound or aggregator.ErrInvalidScope to
// classify it.
type Error struct {
	Kind  document.Kind
	Scope string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("report %s %s: %v", e.Kind, e.Scope, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the requested scope does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, aggregator.ErrNotFound)
}

// IsInvalidScope reports whether err means the request arguments were invalid.
func IsInvalidScope(err error) bool {
	return errors.Is(err, aggregator.ErrInvalidScope)
}
