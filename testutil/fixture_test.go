package testutil

import (
	"testing"
)

func TestWriteUniverse(t *testing.T) {
	path, universe := WriteUniverse(t)

	content := ReadFile(t, path)
	want := Header + "\n" +
		"1,UFO,2024-01-01,Bright light in the sky,3\n" +
		"2,GHOST,2023-12-25,Footsteps upstairs,1\n" +
		"5,CRYPTID,Summer@@@ 1998,Tall@@@ hairy@@@ and fast,2\n"
	if content != want {
		t.Errorf("fixture content = %q, want %q", content, want)
	}

	if len(universe.All) != len(UniverseLines) {
		t.Errorf("expected %d records, got %d", len(UniverseLines), len(universe.All))
	}
	if universe.Bigfoot.ID != 5 {
		t.Errorf("Bigfoot ID = %d, want 5", universe.Bigfoot.ID)
	}
}

func TestWriteDataFileHeaderOnly(t *testing.T) {
	path := WriteDataFile(t)
	if got := ReadFile(t, path); got != Header+"\n" {
		t.Errorf("content = %q, want header only", got)
	}
}
