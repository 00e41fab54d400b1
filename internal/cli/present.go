// Package cli provides the presenter launch command.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/tui"
)

func init() {
	rootCmd.AddCommand(presentCmd)
}

var presentCmd = &cobra.Command{
	Use:   "present <document>",
	Short: "Present a document",
	Long: `Open the terminal presenter for an imported document. The document
file is watched while the presenter is open; edits are picked up and
reconciled into the running slide order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPresenter(args[0])
	},
}

func runPresenter(ref string) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "the presenter requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY",
			NextStep: "framecast doc show " + ref,
		}
	}

	ctx := context.Background()

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	doc, err := resolveDocument(ctx, db.NewDocumentRepository(database), ref)
	if err != nil {
		return err
	}

	sc, err := scene.Load(doc.Path)
	if err != nil {
		return err
	}

	watcher, err := scene.Watch(doc.Path, scene.WithWatchLogger(logger))
	if err != nil {
		logger.Warn().Err(err).Str("path", doc.Path).Msg("file watching unavailable")
		watcher = nil
	} else {
		defer watcher.Close()
	}

	cfg := GetConfig()
	return tui.Run(tui.Config{
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		Source:       scene.NewSource(sc),
		Store:        db.NewOrderRepository(database),
		Recorder:     db.NewEventRepository(database),
		Watcher:      watcher,
		Theme:        cfg.Theme,
		ZoomFill:     cfg.ZoomFill,
		AnimationMS:  cfg.AnimationMS,
		Logger:       logger,
	})
}
