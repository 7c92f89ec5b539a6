package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/encounters/formats"
	"github.com/arthur-debert/encounters/internal/validation"
	"github.com/arthur-debert/encounters/search"
	"github.com/arthur-debert/encounters/types"
	"github.com/spf13/cobra"
)

// addListCommand adds the list command
func (cli *CLI) addListCommand() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List encounters, optionally filtered by type",
		Long: `List all encounters in file order.

Examples:
  encounters list
  encounters list --type CRYPTID
  encounters --format yaml list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeListCommand(cmd)
		},
	}

	listCmd.Flags().StringP("type", "t", "", "Only list encounters of this type")
	cli.rootCmd.AddCommand(listCmd)
}

func (cli *CLI) executeListCommand(cmd *cobra.Command) error {
	const op = "list encounters"

	format, err := cli.outputFormat(op)
	if err != nil {
		return err
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	var encounters []types.Encounter
	typeFlag, _ := cmd.Flags().GetString("type")
	if typeFlag != "" {
		encounterType, err := parseType(op, typeFlag)
		if err != nil {
			return err
		}
		encounters, err = repo.FindByType(encounterType)
		if err != nil {
			return WrapError(op, err, CommonSuggestions.CheckPerms)
		}
	} else {
		encounters, err = repo.FindAll()
		if err != nil {
			return WrapError(op, err, CommonSuggestions.CheckPerms)
		}
	}

	cli.logOperation("list", "type", typeFlag, "count", len(encounters))
	return format.Render(cmd.OutOrStdout(), encounters)
}

// addGetCommand adds the get command
func (cli *CLI) addGetCommand() {
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one encounter by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeGetCommand(cmd, args[0])
		},
	}

	cli.rootCmd.AddCommand(getCmd)
}

func (cli *CLI) executeGetCommand(cmd *cobra.Command, rawID string) error {
	const op = "get encounter"

	id, err := parseID(op, rawID)
	if err != nil {
		return err
	}
	format, err := cli.outputFormat(op)
	if err != nil {
		return err
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	encounter, found, err := repo.FindByID(id)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckPerms)
	}
	if !found {
		return NewNotFoundError(op, id, CommonSuggestions.CheckID)
	}

	cli.logOperation("get", "id", id)
	return format.Render(cmd.OutOrStdout(), []types.Encounter{encounter})
}

// addAddCommand adds the add command
func (cli *CLI) addAddCommand() {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new encounter",
		Long: `Record a new encounter. The ID is assigned by the store.

Examples:
  encounters add --type UFO --when 2024-01-01 --description "Bright light in the sky" --occurrences 3
  encounters add --type ghost --when "Dec 25, 2023" --description "Footsteps upstairs"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeAddCommand(cmd)
		},
	}

	addEncounterFlags(addCmd)
	_ = addCmd.MarkFlagRequired("type")
	cli.rootCmd.AddCommand(addCmd)
}

func (cli *CLI) executeAddCommand(cmd *cobra.Command) error {
	const op = "add encounter"

	format, err := cli.outputFormat(op)
	if err != nil {
		return err
	}

	var encounter types.Encounter
	if err := applyEncounterFlags(op, cmd, &encounter, false); err != nil {
		return err
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	stored, err := repo.Add(encounter)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckFile, CommonSuggestions.CheckPerms)
	}

	cli.logOperation("add", "id", stored.ID, "type", stored.Type.String())
	return format.Render(cmd.OutOrStdout(), []types.Encounter{stored})
}

// addUpdateCommand adds the update command
func (cli *CLI) addUpdateCommand() {
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an encounter's fields",
		Long: `Replace an encounter. Flags that are not given keep the current value;
the stored record is then replaced as a whole.

Examples:
  encounters update 2 --occurrences 4
  encounters update 2 --type VOICE --description "Whispers, not footsteps"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeUpdateCommand(cmd, args[0])
		},
	}

	addEncounterFlags(updateCmd)
	cli.rootCmd.AddCommand(updateCmd)
}

func (cli *CLI) executeUpdateCommand(cmd *cobra.Command, rawID string) error {
	const op = "update encounter"

	id, err := parseID(op, rawID)
	if err != nil {
		return err
	}
	format, err := cli.outputFormat(op)
	if err != nil {
		return err
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	encounter, found, err := repo.FindByID(id)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckPerms)
	}
	if !found {
		return NewNotFoundError(op, id, CommonSuggestions.CheckID)
	}

	if err := applyEncounterFlags(op, cmd, &encounter, true); err != nil {
		return err
	}

	updated, err := repo.Update(encounter)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckPerms)
	}
	if !updated {
		return NewNotFoundError(op, id, CommonSuggestions.CheckID)
	}

	cli.logOperation("update", "id", id)
	return format.Render(cmd.OutOrStdout(), []types.Encounter{encounter})
}

// addDeleteCommand adds the delete command
func (cli *CLI) addDeleteCommand() {
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an encounter by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeDeleteCommand(cmd, args[0])
		},
	}

	cli.rootCmd.AddCommand(deleteCmd)
}

func (cli *CLI) executeDeleteCommand(cmd *cobra.Command, rawID string) error {
	const op = "delete encounter"

	id, err := parseID(op, rawID)
	if err != nil {
		return err
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	deleted, err := repo.DeleteByID(id)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckPerms)
	}
	if !deleted {
		return NewNotFoundError(op, id, CommonSuggestions.CheckID)
	}

	cli.logOperation("delete", "id", id)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Encounter %d deleted\n", id)
	return err
}

// addSearchCommand adds the search command
func (cli *CLI) addSearchCommand() {
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search encounter descriptions and times",
		Long: `Search the free-text fields of every encounter. Results are ranked by
relevance, best first.

Examples:
  encounters search light
  encounters search "footsteps" --type GHOST --highlight
  encounters search night --field when --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeSearchCommand(cmd, args[0])
		},
	}

	flags := searchCmd.Flags()
	flags.StringP("type", "t", "", "Only search encounters of this type")
	flags.StringSlice("field", nil, "Fields to search (description, when); default both")
	flags.Bool("case-sensitive", false, "Match case exactly")
	flags.Bool("exact", false, "Require the whole field to equal the query")
	flags.Bool("highlight", false, "Mark matches in the output with **")
	flags.IntP("limit", "l", 0, "Maximum number of results (0 for all)")
	cli.rootCmd.AddCommand(searchCmd)
}

func (cli *CLI) executeSearchCommand(cmd *cobra.Command, query string) error {
	const op = "search encounters"

	format, err := cli.outputFormat(op)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	options := search.SearchOptions{Query: query}
	options.Fields, _ = flags.GetStringSlice("field")
	options.CaseSensitive, _ = flags.GetBool("case-sensitive")
	options.ExactMatch, _ = flags.GetBool("exact")
	options.EnableHighlight, _ = flags.GetBool("highlight")
	options.MaxResults, _ = flags.GetInt("limit")
	if typeFlag, _ := flags.GetString("type"); typeFlag != "" {
		if options.Type, err = parseType(op, typeFlag); err != nil {
			return err
		}
	}
	for _, field := range options.Fields {
		if field != search.FieldDescription && field != search.FieldWhen {
			return NewValidationError(op, "field", field, "Searchable fields: description, when")
		}
	}

	repo := cli.openRepository()
	defer func() { _ = repo.Close() }()

	results, err := search.NewEngine(repo).Search(options)
	if err != nil {
		return WrapError(op, err, CommonSuggestions.CheckPerms)
	}

	encounters := make([]types.Encounter, len(results))
	for i, result := range results {
		encounters[i] = result.Encounter
		if text, ok := result.Highlights[search.FieldDescription]; ok {
			encounters[i].Description = text
		}
		if text, ok := result.Highlights[search.FieldWhen]; ok {
			encounters[i].When = text
		}
	}

	cli.logOperation("search", "query", query, "count", len(results))
	return format.Render(cmd.OutOrStdout(), encounters)
}

// addTypesCommand adds the types command
func (cli *CLI) addTypesCommand() {
	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List valid encounter types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range types.EncounterTypeNames() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cli.rootCmd.AddCommand(typesCmd)
}

// addConfigCommand adds the config command
func (cli *CLI) addConfigCommand() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, key := range []string{"file", "format", "log-level", "lock"} {
				if _, err := fmt.Fprintf(out, "%s: %s\n", key, cli.configValue(key)); err != nil {
					return err
				}
			}
			configFile := cli.viperInst.ConfigFileUsed()
			if configFile == "" {
				configFile = "(none)"
			}
			_, err := fmt.Fprintf(out, "config-file: %s\n", configFile)
			return err
		},
	}

	cli.rootCmd.AddCommand(configCmd)
}

// addEncounterFlags adds the record field flags shared by add and update
func addEncounterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Encounter type ("+strings.Join(types.EncounterTypeNames(), "|")+")")
	cmd.Flags().StringP("when", "w", "", "When it happened (free text)")
	cmd.Flags().StringP("description", "d", "", "What happened (free text)")
	cmd.Flags().IntP("occurrences", "n", 1, "How many times it happened")
}

// applyEncounterFlags copies flag values onto e. With onlyChanged set, flags
// the user did not pass leave the existing value alone.
func applyEncounterFlags(op string, cmd *cobra.Command, e *types.Encounter, onlyChanged bool) error {
	flags := cmd.Flags()
	use := func(name string) bool {
		return !onlyChanged || flags.Changed(name)
	}

	if use("type") {
		raw, _ := flags.GetString("type")
		encounterType, err := parseType(op, raw)
		if err != nil {
			return err
		}
		e.Type = encounterType
	}
	if use("when") {
		e.When, _ = flags.GetString("when")
	}
	if use("description") {
		e.Description, _ = flags.GetString("description")
	}
	if use("occurrences") {
		e.Occurrences, _ = flags.GetInt("occurrences")
	}

	var fieldErr *validation.FieldError
	if err := validation.Validate(*e); errors.As(err, &fieldErr) {
		return NewValidationError(op, fieldErr.Field, fieldErr.Value, "Value "+fieldErr.Reason)
	}
	return nil
}

// outputFormat resolves the configured output format
func (cli *CLI) outputFormat(op string) (*formats.OutputFormat, error) {
	name := cli.viperInst.GetString("format")
	format, err := formats.Get(name)
	if err != nil {
		return nil, NewValidationError(op, "format", name, "Available formats: "+strings.Join(formats.List(), ", "))
	}
	return format, nil
}

// parseType accepts a type name in any case
func parseType(op, raw string) (types.EncounterType, error) {
	encounterType, err := types.ParseEncounterType(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return 0, NewValidationError(op, "type", raw, CommonSuggestions.CheckType)
	}
	return encounterType, nil
}

// parseID parses an encounter ID argument
func parseID(op, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, NewValidationError(op, "ID", raw, "IDs are positive integers")
	}
	return id, nil
}
