// Package storage persists encounters in a flat, comma-delimited text file.
//
// The file holds one header line followed by one encounter per line:
//
//	encounter_id,type,when,description,occurrences
//	1,UFO,2024-01-01,Bright light in the sky,3
//
// Every call reads the whole file; every mutation rewrites it. Nothing is
// cached between calls.
package storage

import "github.com/arthur-debert/encounters/types"

// EncounterRepository is the CRUD contract for encounter storage.
// Not-found conditions are reported through the bool results, never as errors.
type EncounterRepository interface {
	// FindAll returns every stored encounter in file order
	FindAll() ([]types.Encounter, error)

	// FindByType returns the encounters of the given type in file order
	FindByType(encounterType types.EncounterType) ([]types.Encounter, error)

	// FindByID returns the first encounter with the given id.
	// The bool is false when no encounter matches.
	FindByID(id int) (types.Encounter, bool, error)

	// Add assigns the next id to e, stores it and returns the stored record.
	// Implementations reject a type outside the enumeration.
	Add(e types.Encounter) (types.Encounter, error)

	// Update replaces the encounter with e.ID wholesale.
	// It returns false, without writing, when the id is unknown.
	Update(e types.Encounter) (bool, error)

	// DeleteByID removes the encounter with the given id.
	// It returns false, without writing, when the id is unknown.
	DeleteByID(id int) (bool, error)
}

var _ EncounterRepository = (*FileRepository)(nil)
