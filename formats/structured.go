package formats

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/encounters/types"
	"gopkg.in/yaml.v3"
)

// JSON renders an indented JSON array
var JSON = &OutputFormat{
	Name: "json",
	Render: func(w io.Writer, encounters []types.Encounter) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(encounters))
	},
}

// YAML renders a YAML sequence
var YAML = &OutputFormat{
	Name: "yaml",
	Render: func(w io.Writer, encounters []types.Encounter) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(encounters)); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	mustRegister(JSON)
	mustRegister(YAML)
}

// nonNil makes an empty result encode as [] rather than null
func nonNil(encounters []types.Encounter) []types.Encounter {
	if encounters == nil {
		return []types.Encounter{}
	}
	return encounters
}
