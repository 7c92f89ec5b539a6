package storage

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/encounters/types"
)

const (
	// Header is the first line of every data file, rewritten verbatim on each save
	Header = "encounter_id,type,when,description,occurrences"

	// Delimiter separates fields on a line
	Delimiter = ","

	// DelimiterReplacement stands in for Delimiter inside free-text fields.
	// Text that already contains it is not escaped and reads back as Delimiter.
	DelimiterReplacement = "@@@"

	fieldCount = 5
)

// FormatLine serializes an encounter to a single data line (without newline)
func FormatLine(e types.Encounter) string {
	fields := [fieldCount]string{
		strconv.Itoa(e.ID),
		e.Type.String(),
		escape(e.When),
		escape(e.Description),
		strconv.Itoa(e.Occurrences),
	}
	return strings.Join(fields[:], Delimiter)
}

// ParseLine parses a data line. It returns false for any line that does not
// hold exactly five fields with an integer id, a known type and an integer
// occurrence count.
func ParseLine(line string) (types.Encounter, bool) {
	// strings.Split keeps empty trailing fields
	fields := strings.Split(line, Delimiter)
	if len(fields) != fieldCount {
		return types.Encounter{}, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return types.Encounter{}, false
	}
	encounterType, err := types.ParseEncounterType(fields[1])
	if err != nil {
		return types.Encounter{}, false
	}
	occurrences, err := strconv.Atoi(fields[4])
	if err != nil {
		return types.Encounter{}, false
	}

	return types.Encounter{
		ID:          id,
		Type:        encounterType,
		When:        restore(fields[2]),
		Description: restore(fields[3]),
		Occurrences: occurrences,
	}, true
}

func escape(value string) string {
	return strings.ReplaceAll(value, Delimiter, DelimiterReplacement)
}

func restore(value string) string {
	return strings.ReplaceAll(value, DelimiterReplacement, Delimiter)
}
