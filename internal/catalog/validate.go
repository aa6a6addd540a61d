package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a canonical record against its schema tags. A failure
// means the record should be treated as not found, never as a fatal error:
// external providers routinely emit partial documents.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return nil
}

// IsValid reports whether v passes schema validation.
func IsValid(v any) bool {
	return validate.Struct(v) == nil
}
