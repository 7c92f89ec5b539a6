package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/encounters/internal/validation"
	"github.com/arthur-debert/encounters/types"
)

func TestValidate(t *testing.T) {
	valid := types.Encounter{Type: types.Ghost, When: "2023-12-25", Description: "Footsteps, upstairs", Occurrences: 1}

	tests := []struct {
		name      string
		modify    func(*types.Encounter)
		wantField string
	}{
		{name: "valid", modify: func(*types.Encounter) {}},
		{name: "zero occurrences allowed", modify: func(e *types.Encounter) { e.Occurrences = 0 }},
		{name: "empty text allowed", modify: func(e *types.Encounter) { e.When, e.Description = "", "" }},
		{name: "zero type", modify: func(e *types.Encounter) { e.Type = 0 }, wantField: "type"},
		{name: "out of range type", modify: func(e *types.Encounter) { e.Type = 42 }, wantField: "type"},
		{name: "negative occurrences", modify: func(e *types.Encounter) { e.Occurrences = -1 }, wantField: "occurrences"},
		{name: "newline in when", modify: func(e *types.Encounter) { e.When = "late\nnight" }, wantField: "when"},
		{name: "carriage return in description", modify: func(e *types.Encounter) { e.Description = "cold\rspot" }, wantField: "description"},
		{name: "sentinel in description", modify: func(e *types.Encounter) { e.Description = "a@@@b" }, wantField: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)

			err := validation.Validate(e)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var fieldErr *validation.FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Validate() = %v, want *FieldError", err)
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fieldErr.Field, tt.wantField)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := validation.Validate(types.Encounter{Type: types.UFO, Occurrences: -3})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), `invalid occurrences "-3": cannot be negative`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = validation.Validate(types.Encounter{})
	if err == nil || !strings.Contains(err.Error(), "UFO, CRYPTID, GHOST, VOICE, VISION") {
		t.Errorf("type error should list valid names, got %v", err)
	}
}
