// Package testutil provides encounter data files for tests.
//
// Fixtures are written as raw lines rather than through the storage package
// so that the file format itself is what gets tested.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/encounters/types"
)

// Header is the literal first line of a data file
const Header = "encounter_id,type,when,description,occurrences"

// UniverseData provides typed access to the fixture records
type UniverseData struct {
	Lights    types.Encounter // ID 1 - UFO
	Footsteps types.Encounter // ID 2 - GHOST
	Bigfoot   types.Encounter // ID 5 - CRYPTID, description holds escaped commas

	// All records in file order
	All []types.Encounter
}

// UniverseLines are the data lines of the fixture file, ids 1, 2 and 5
var UniverseLines = []string{
	"1,UFO,2024-01-01,Bright light in the sky,3",
	"2,GHOST,2023-12-25,Footsteps upstairs,1",
	"5,CRYPTID,Summer@@@ 1998,Tall@@@ hairy@@@ and fast,2",
}

// Universe returns the records encoded by UniverseLines
func Universe() *UniverseData {
	u := &UniverseData{
		Lights:    types.Encounter{ID: 1, Type: types.UFO, When: "2024-01-01", Description: "Bright light in the sky", Occurrences: 3},
		Footsteps: types.Encounter{ID: 2, Type: types.Ghost, When: "2023-12-25", Description: "Footsteps upstairs", Occurrences: 1},
		Bigfoot:   types.Encounter{ID: 5, Type: types.Cryptid, When: "Summer, 1998", Description: "Tall, hairy, and fast", Occurrences: 2},
	}
	u.All = []types.Encounter{u.Lights, u.Footsteps, u.Bigfoot}
	return u
}

// WriteDataFile writes Header followed by lines to a new file in a
// temporary directory and returns its path
func WriteDataFile(t *testing.T, lines ...string) string {
	t.Helper()
	return WriteRawFile(t, Header+"\n"+joinLines(lines))
}

// WriteUniverse writes the fixture file and returns its path with the
// matching records
func WriteUniverse(t *testing.T) (string, *UniverseData) {
	t.Helper()
	return WriteDataFile(t, UniverseLines...), Universe()
}

// WriteRawFile writes content verbatim to a new temporary file
func WriteRawFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "encounters.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture file: %v", err)
	}
	return path
}

// MissingFilePath returns a path inside a temporary directory that does not exist
func MissingFilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.csv")
}

// ReadFile returns the content of path, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
