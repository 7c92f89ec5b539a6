// Package types defines the encounter record and its type enumeration.
// These are the values exchanged between the storage layer, the output
// formats and the CLI.
package types

import (
	"fmt"
	"strings"
)

// EncounterType is the category of a reported encounter.
// The zero value is not a valid type.
type EncounterType int

// Encounter types, in declaration order
const (
	UFO EncounterType = iota + 1
	Cryptid
	Ghost
	Voice
	Vision
)

// encounterTypeNames holds the serialized form of each type, indexed by value.
// The names are a stored contract: they are written verbatim to data files.
var encounterTypeNames = [...]string{
	UFO:     "UFO",
	Cryptid: "CRYPTID",
	Ghost:   "GHOST",
	Voice:   "VOICE",
	Vision:  "VISION",
}

// AllEncounterTypes returns every encounter type in declaration order
func AllEncounterTypes() []EncounterType {
	all := make([]EncounterType, 0, len(encounterTypeNames)-1)
	for t := UFO; int(t) < len(encounterTypeNames); t++ {
		all = append(all, t)
	}
	return all
}

// Valid reports whether t is one of the declared types
func (t EncounterType) Valid() bool {
	return t >= UFO && int(t) < len(encounterTypeNames)
}

// String returns the type's stored name
func (t EncounterType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("EncounterType(%d)", int(t))
	}
	return encounterTypeNames[t]
}

// ParseEncounterType returns the type whose stored name is exactly s.
// Matching is case-sensitive because the name is the on-disk form.
func ParseEncounterType(s string) (EncounterType, error) {
	for _, t := range AllEncounterTypes() {
		if encounterTypeNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown encounter type %q (valid: %s)", s, strings.Join(EncounterTypeNames(), ", "))
}

// EncounterTypeNames returns the stored names of all types
func EncounterTypeNames() []string {
	all := AllEncounterTypes()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.String()
	}
	return names
}

// MarshalText implements encoding.TextMarshaler
func (t EncounterType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid encounter type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *EncounterType) UnmarshalText(text []byte) error {
	parsed, err := ParseEncounterType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Encounter is a single reported event.
type Encounter struct {
	ID          int           `json:"id" yaml:"id"`                   // Assigned by the store on add
	Type        EncounterType `json:"type" yaml:"type"`               // Category
	When        string        `json:"when" yaml:"when"`               // Free text describing the time
	Description string        `json:"description" yaml:"description"` // Free text
	Occurrences int           `json:"occurrences" yaml:"occurrences"` // How many times it happened
}
