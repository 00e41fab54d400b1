// Package cli implements the framecast command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/config"
	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/logging"
)

var (
	configDir      string
	dbPathFlag     string
	logLevelFlag   string
	jsonOutput     bool
	nonInteractive bool
	noProgress     bool

	appConfig *config.Config
	logger    zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "framecast",
	Short: "Present canvas documents from the terminal",
	Long: `Framecast turns the frames of a canvas document into an ordered
slide deck and presents them in the terminal. Documents are imported
into a local library; the slide order can be customized per document
and survives edits to the underlying file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.config/framecast)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to the library database")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt, fail instead")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "suppress progress output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var preflight *PreflightError
		if errors.As(err, &preflight) {
			fmt.Fprintln(os.Stderr, preflight.Format())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func initApp() error {
	var (
		cfg *config.Config
		err error
	)
	if configDir != "" {
		cfg, err = config.LoadFrom(configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if dbPathFlag != "" {
		cfg.DatabasePath = dbPathFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// GetConfig returns the loaded application configuration. It is nil
// before initApp runs.
func GetConfig() *config.Config {
	return appConfig
}

// IsJSONOutput reports whether commands should emit JSON.
func IsJSONOutput() bool {
	return jsonOutput
}

func openDatabase() (*db.DB, error) {
	database, err := db.Open(appConfig.DatabasePath, db.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateUp(context.Background()); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// PreflightError describes a failed precondition with a recovery hint.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// Format renders the error with its hint and next step for terminals.
func (e *PreflightError) Format() string {
	var builder strings.Builder
	builder.WriteString("Error: " + e.Message)
	if e.Hint != "" {
		builder.WriteString("\n  Hint: " + e.Hint)
	}
	if e.NextStep != "" {
		builder.WriteString("\n  Next: " + e.NextStep)
	}
	return builder.String()
}
