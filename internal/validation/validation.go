package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/encounters/storage"
	"github.com/arthur-debert/encounters/types"
)

// FieldError reports the first field of an encounter that cannot be stored
// faithfully
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Validate checks an encounter before it is written. The store itself
// accepts anything; these checks keep records from being mangled by the
// line format on the next read.
func Validate(e types.Encounter) error {
	if !e.Type.Valid() {
		return &FieldError{
			Field:  "type",
			Value:  e.Type.String(),
			Reason: "must be one of " + strings.Join(types.EncounterTypeNames(), ", "),
		}
	}

	if e.Occurrences < 0 {
		return &FieldError{
			Field:  "occurrences",
			Value:  strconv.Itoa(e.Occurrences),
			Reason: "cannot be negative",
		}
	}

	if err := ValidateText("when", e.When); err != nil {
		return err
	}
	return ValidateText("description", e.Description)
}

// ValidateText rejects free text that would not survive a write and read
func ValidateText(field, value string) error {
	// One record per line
	if strings.ContainsAny(value, "\r\n") {
		return &FieldError{Field: field, Value: value, Reason: "cannot contain line breaks"}
	}

	// The escape sentinel reads back as a delimiter
	if strings.Contains(value, storage.DelimiterReplacement) {
		return &FieldError{
			Field:  field,
			Value:  value,
			Reason: fmt.Sprintf("cannot contain %q", storage.DelimiterReplacement),
		}
	}

	return nil
}
