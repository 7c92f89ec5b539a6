package formats

import (
	"io"

	"github.com/arthur-debert/encounters/storage"
	"github.com/arthur-debert/encounters/types"
)

// CSV renders the same header and escaped lines the data file uses
var CSV = &OutputFormat{
	Name: "csv",
	Render: func(w io.Writer, encounters []types.Encounter) error {
		if _, err := io.WriteString(w, storage.Header+"\n"); err != nil {
			return err
		}
		for _, e := range encounters {
			if _, err := io.WriteString(w, storage.FormatLine(e)+"\n"); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	mustRegister(CSV)
}
