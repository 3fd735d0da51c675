package record

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrMissingField is matched by every MissingFieldError via errors.Is.
var ErrMissingField = errors.New("missing field")

// ErrTypeMismatch is matched by every TypeError via errors.Is.
var ErrTypeMismatch = errors.New("field type mismatch")

// MissingFieldError reports a lookup of a key that the JSON object did not contain.
// Name is what the caller asked for; it equals Key unless attribute-style
// access was used.
type MissingFieldError struct {
	Key  string
	Name string
}

func (e *MissingFieldError) Error() string {
	if e.Name != "" && e.Name != e.Key {
		return fmt.Sprintf("record has no field %q (attribute %s)", e.Key, e.Name)
	}
	return fmt.Sprintf("record has no field %q", e.Key)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeError reports a present field whose JSON type does not match the typed
// accessor that was used.
type TypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("record field %q is %T, not %s", e.Key, e.Got, e.Want)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
