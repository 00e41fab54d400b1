// Package cli provides slide order commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/presentation"
	"github.com/framecast/framecast/internal/scene"
)

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderMoveCmd)
	orderCmd.AddCommand(orderResetCmd)
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage the slide order of a document",
	Long:  "Inspect and edit the per-document slide order without opening the presenter.",
}

var orderShowCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Show the effective slide order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		doc, err := resolveDocument(ctx, db.NewDocumentRepository(database), args[0])
		if err != nil {
			return err
		}
		sc, err := scene.Load(doc.Path)
		if err != nil {
			return err
		}
		order, err := orderForDocument(ctx, database, doc, sc)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(order.IDs())
		}
		for i, frame := range order {
			fmt.Printf("%2d. %s\n", i+1, sc.FrameLabel(frame.ID))
		}
		return nil
	},
}

var orderMoveCmd = &cobra.Command{
	Use:   "move <document> <from> <to>",
	Short: "Move a slide to a new position",
	Long:  "Move the slide at position <from> to position <to>. Positions are one-based.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		from, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		to, err := parsePosition(args[2])
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		doc, err := resolveDocument(ctx, db.NewDocumentRepository(database), args[0])
		if err != nil {
			return err
		}
		sc, err := scene.Load(doc.Path)
		if err != nil {
			return err
		}

		controller, err := presentation.NewController(doc.ID, scene.NewSource(sc), db.NewOrderRepository(database),
			presentation.WithEventRecorder(db.NewEventRepository(database)),
			presentation.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		before := controller.Order(ctx)
		if from < 1 || from > len(before) || to < 1 || to > len(before) {
			return &PreflightError{
				Message: fmt.Sprintf("positions must be between 1 and %d", len(before)),
			}
		}
		if err := controller.Reorder(ctx, from-1, to-1); err != nil {
			return err
		}

		after := controller.Order(ctx)
		fmt.Printf("Moved %s to position %d\n", sc.FrameLabel(after[to-1].ID), to)
		return nil
	},
}

var orderResetCmd = &cobra.Command{
	Use:   "reset <document>",
	Short: "Discard the custom order and return to the derived order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		doc, err := resolveDocument(ctx, db.NewDocumentRepository(database), args[0])
		if err != nil {
			return err
		}
		sc, err := scene.Load(doc.Path)
		if err != nil {
			return err
		}

		controller, err := presentation.NewController(doc.ID, scene.NewSource(sc), db.NewOrderRepository(database),
			presentation.WithEventRecorder(db.NewEventRepository(database)),
			presentation.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		if err := controller.ResetOrder(ctx); err != nil {
			return err
		}

		fmt.Printf("Reset slide order for %s\n", doc.Name)
		return nil
	},
}

// orderForDocument computes the effective order: the persisted custom
// order reconciled against the live frame set when the scene is
// readable, the derived order otherwise.
func orderForDocument(ctx context.Context, database *db.DB, doc *models.Document, sc *scene.Scene) (models.Sequence, error) {
	persisted, err := db.NewOrderRepository(database).Load(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return persisted, nil
	}
	return presentation.Reconcile(persisted, sc.Frames()), nil
}

func parsePosition(arg string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &PreflightError{
			Message: fmt.Sprintf("%q is not a slide position", arg),
			Hint:    "Positions are one-based integers, see: framecast order show <document>",
		}
	}
	return value, nil
}
