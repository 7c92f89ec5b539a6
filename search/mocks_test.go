package search

import "github.com/arthur-debert/encounters/types"

// mockEncounterProvider implements EncounterProvider for testing
type mockEncounterProvider struct {
	encounters []types.Encounter
	err        error

	findAllCalls    int
	findByTypeCalls int
}

func newMockEncounterProvider(encounters []types.Encounter) *mockEncounterProvider {
	return &mockEncounterProvider{encounters: encounters}
}

func (m *mockEncounterProvider) FindAll() ([]types.Encounter, error) {
	m.findAllCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.encounters, nil
}

func (m *mockEncounterProvider) FindByType(encounterType types.EncounterType) ([]types.Encounter, error) {
	m.findByTypeCalls++
	if m.err != nil {
		return nil, m.err
	}
	var result []types.Encounter
	for _, e := range m.encounters {
		if e.Type == encounterType {
			result = append(result, e)
		}
	}
	return result, nil
}

// sampleEncounters provides encounters for testing
func sampleEncounters() []types.Encounter {
	return []types.Encounter{
		{ID: 1, Type: types.UFO, When: "2024-01-01", Description: "Bright light in the sky", Occurrences: 3},
		{ID: 2, Type: types.Ghost, When: "Christmas night", Description: "Footsteps upstairs, then a light went out", Occurrences: 1},
		{ID: 3, Type: types.Cryptid, When: "Summer, 1998", Description: "Tall, hairy, and fast", Occurrences: 2},
		{ID: 4, Type: types.UFO, When: "night", Description: "Light", Occurrences: 1},
	}
}
