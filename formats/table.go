package formats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arthur-debert/encounters/types"
)

// Table renders aligned columns with a header row
var Table = &OutputFormat{
	Name: "table",
	Render: func(w io.Writer, encounters []types.Encounter) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "ID\tTYPE\tWHEN\tOCCURRENCES\tDESCRIPTION"); err != nil {
			return err
		}
		for _, e := range encounters {
			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.Type, e.When, e.Occurrences, e.Description); err != nil {
				return err
			}
		}
		return tw.Flush()
	},
}

func init() {
	mustRegister(Table)
}
