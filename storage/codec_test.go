package storage

import (
	"testing"

	"github.com/arthur-debert/encounters/types"
	"github.com/google/go-cmp/cmp"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name      string
		encounter types.Encounter
		want      string
	}{
		{
			name:      "plain fields",
			encounter: types.Encounter{ID: 1, Type: types.UFO, When: "2024-01-01", Description: "Bright light in the sky", Occurrences: 3},
			want:      "1,UFO,2024-01-01,Bright light in the sky,3",
		},
		{
			name:      "delimiter in free text",
			encounter: types.Encounter{ID: 7, Type: types.Cryptid, When: "June 4, 1999", Description: "Tall, hairy, fast", Occurrences: 2},
			want:      "7,CRYPTID,June 4@@@ 1999,Tall@@@ hairy@@@ fast,2",
		},
		{
			name:      "empty free text",
			encounter: types.Encounter{ID: 3, Type: types.Ghost, Occurrences: 0},
			want:      "3,GHOST,,,0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.encounter); got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   types.Encounter
		wantOK bool
	}{
		{
			name:   "well formed",
			line:   "2,GHOST,2023-12-25,Footsteps upstairs,1",
			want:   types.Encounter{ID: 2, Type: types.Ghost, When: "2023-12-25", Description: "Footsteps upstairs", Occurrences: 1},
			wantOK: true,
		},
		{
			name:   "escaped delimiter restored",
			line:   "4,VOICE,dusk,Whispers@@@ then silence,5",
			want:   types.Encounter{ID: 4, Type: types.Voice, When: "dusk", Description: "Whispers, then silence", Occurrences: 5},
			wantOK: true,
		},
		{
			name:   "empty free text keeps five fields",
			line:   "5,VISION,,,0",
			want:   types.Encounter{ID: 5, Type: types.Vision, Occurrences: 0},
			wantOK: true,
		},
		{name: "three fields", line: "1,UFO,2024-01-01"},
		{name: "six fields", line: "1,UFO,a,b,3,extra"},
		{name: "empty line", line: ""},
		{name: "non numeric id", line: "x,UFO,a,b,3"},
		{name: "unknown type", line: "1,BIGFOOT,a,b,3"},
		{name: "non numeric occurrences", line: "1,UFO,a,b,many"},
		{name: "missing trailing occurrences", line: "1,UFO,a,b,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestLineRoundTrip(t *testing.T) {
	encounters := []types.Encounter{
		{ID: 1, Type: types.UFO, When: "2024-01-01", Description: "Bright light", Occurrences: 3},
		{ID: 12, Type: types.Cryptid, When: "a,b,c", Description: ",leading and trailing,", Occurrences: 0},
		{ID: 99, Type: types.Ghost, When: "", Description: "", Occurrences: -1},
		{ID: 100, Type: types.Vision, When: "überall", Description: "ünïcödé, ✨", Occurrences: 42},
	}

	for _, e := range encounters {
		got, ok := ParseLine(FormatLine(e))
		if !ok {
			t.Errorf("round trip of %+v failed to parse", e)
			continue
		}
		if diff := cmp.Diff(e, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSentinelInInputIsNotPreserved(t *testing.T) {
	e := types.Encounter{ID: 1, Type: types.UFO, When: "now", Description: "odd @@@ text", Occurrences: 1}

	got, ok := ParseLine(FormatLine(e))
	if !ok {
		t.Fatal("expected line to parse")
	}
	if got.Description != "odd , text" {
		t.Errorf("Description = %q, want the sentinel read back as a delimiter", got.Description)
	}
}
