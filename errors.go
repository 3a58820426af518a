package docgen

import (
	"errors"
	"fmt"

	"github.com/docsmith/docgen/layout"
	"github.com/docsmith/docgen/templates"
)

// SerializationError wraps a failure while writing PDF bytes. Results that
// fail serialization are never cached.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize pdf: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// IsInputError reports whether err is a caller-input problem (missing
// required field) rather than an engine fault.
func IsInputError(err error) bool {
	var ve *templates.ValidationError
	return errors.As(err, &ve)
}

// IsOversizedBlock reports whether err means a single block could not fit on
// any page.
func IsOversizedBlock(err error) bool {
	var oe *layout.OversizedBlockError
	return errors.As(err, &oe)
}
