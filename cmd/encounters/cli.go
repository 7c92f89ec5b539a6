package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arthur-debert/encounters/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI wires cobra commands, viper configuration and the encounter store
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	logger    *slog.Logger
	logCloser io.Closer
}

// NewCLI creates a CLI with all commands registered
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.DiscardHandler),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// setupViperConfig configures environment variables and config file discovery
func (cli *CLI) setupViperConfig() {
	// ENCOUNTERS_CONFIG points at an explicit config file
	if configFile := os.Getenv("ENCOUNTERS_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("encounters")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.config/encounters")
	}

	// --log-level -> ENCOUNTERS_LOG_LEVEL
	cli.viperInst.SetEnvPrefix("ENCOUNTERS")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()
}

// readConfig loads the config file if there is one
func (cli *CLI) readConfig() error {
	err := cli.viperInst.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	// An explicit ENCOUNTERS_CONFIG that does not exist is reported as a
	// plain os error rather than ConfigFileNotFoundError
	if errors.Is(err, os.ErrNotExist) && os.Getenv("ENCOUNTERS_CONFIG") == "" {
		return nil
	}
	return NewConfigError("read configuration", err.Error(), CommonSuggestions.CheckConfig)
}

// createRootCommand creates the root command
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "encounters",
		Short: "Record and query unexplained encounters",
		Long: `encounters manages a flat file of unexplained encounters
(UFO sightings, cryptids, ghosts, voices and visions).

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (ENCOUNTERS_*)
3. Configuration file (ENCOUNTERS_CONFIG, ./encounters.yaml or ~/.config/encounters/encounters.yaml)
4. Defaults

Examples:
  encounters add --type UFO --when 2024-01-01 --description "Bright light in the sky" --occurrences 3
  encounters list --type GHOST
  encounters --format json get 1
  ENCOUNTERS_FILE=/data/sightings.csv encounters list`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.readConfig(); err != nil {
				return err
			}
			return cli.initLogging(cmd)
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("file", "f", "encounters.csv", "Path to the encounters data file")
	flags.StringP("format", "o", "table", "Output format (table|json|yaml|csv)")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.Bool("lock", false, "Hold a file lock during each operation")

	for _, flag := range []string{"file", "format", "log-level", "lock"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

// addCommands registers every subcommand
func (cli *CLI) addCommands() {
	cli.addListCommand()
	cli.addGetCommand()
	cli.addAddCommand()
	cli.addUpdateCommand()
	cli.addDeleteCommand()
	cli.addSearchCommand()
	cli.addTypesCommand()
	cli.addConfigCommand()
}

// openRepository creates the store described by the current configuration
func (cli *CLI) openRepository() *storage.FileRepository {
	opts := []storage.Option{storage.WithLogger(cli.logger)}
	if cli.viperInst.GetBool("lock") {
		opts = append(opts, storage.WithFileLock(""))
	}
	return storage.NewFileRepository(cli.viperInst.GetString("file"), opts...)
}

// Execute runs the root command and closes the log file
func (cli *CLI) Execute() error {
	defer cli.closeLog()
	return cli.rootCmd.Execute()
}

// GetRootCommand returns the root command for testing
func (cli *CLI) GetRootCommand() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) closeLog() {
	if cli.logCloser != nil {
		_ = cli.logCloser.Close()
		cli.logCloser = nil
	}
}

// configValue is used by the config command
func (cli *CLI) configValue(key string) string {
	return fmt.Sprintf("%v", cli.viperInst.Get(key))
}
