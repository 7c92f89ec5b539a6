// Package formats renders encounters for display.
//
// Formats register themselves by name at init time; the CLI looks them up
// with Get.
package formats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/encounters/types"
)

// OutputFormat defines how a list of encounters is written out
type OutputFormat struct {
	// Name is the format identifier (lowercase alphanumeric, dashes, underscores)
	Name string

	// Render writes encounters to w
	Render func(w io.Writer, encounters []types.Encounter) error
}

// registry holds all available output formats
var registry = make(map[string]*OutputFormat)

// Register adds a new output format to the registry
func Register(format *OutputFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns an output format by name
func Get(name string) (*OutputFormat, error) {
	format, exists := registry[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mustRegister registers a built-in format, panicking on failure
func mustRegister(format *OutputFormat) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
