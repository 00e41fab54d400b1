// Package cli provides the event log command.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/models"
)

var (
	logLimit int
	logType  string
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVar(&logLimit, "limit", 20, "maximum number of events")
	logCmd.Flags().StringVar(&logType, "type", "", "filter by event type (e.g. slide.advanced)")
}

var logCmd = &cobra.Command{
	Use:   "log [document]",
	Short: "Show recent presentation events",
	Long:  "Show the event log, optionally scoped to a single document.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		query := db.EventQuery{Limit: logLimit}
		if logType != "" {
			eventType := models.EventType(logType)
			query.Type = &eventType
		}
		if len(args) == 1 {
			doc, err := resolveDocument(ctx, db.NewDocumentRepository(database), args[0])
			if err != nil {
				return err
			}
			query.EntityID = &doc.ID
		}

		eventList, err := db.NewEventRepository(database).Query(ctx, query)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(eventList)
		}
		if len(eventList) == 0 {
			fmt.Println("No events.")
			return nil
		}

		return writeTable(os.Stdout, []string{"TIME", "TYPE", "ENTITY", "PAYLOAD"}, eventRows(eventList))
	},
}

func eventRows(eventList []*models.Event) [][]string {
	rows := make([][]string, 0, len(eventList))
	for _, event := range eventList {
		payload := ""
		if len(event.Payload) > 0 {
			payload = string(event.Payload)
		}
		rows = append(rows, []string{
			event.Timestamp.Format("2006-01-02 15:04:05"),
			string(event.Type),
			event.EntityID,
			payload,
		})
	}
	return rows
}
