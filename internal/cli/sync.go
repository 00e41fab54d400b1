// Package cli provides document sync commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/cloud"
	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/events"
	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/vault"
)

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.AddCommand(remoteListCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push <document>",
	Short: "Push a document to the sync backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewDocumentRepository(database)
		doc, err := resolveDocument(ctx, repo, args[0])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(doc.Path)
		if err != nil {
			return err
		}

		client, err := syncClient()
		if err != nil {
			return err
		}

		progress := startProgress(fmt.Sprintf("Pushing %s", doc.Name))
		remoteID, err := client.Push(ctx, doc.RemoteID, doc.Name, data)
		if err != nil {
			progress.Fail(err)
			return err
		}
		progress.Done()

		if remoteID != doc.RemoteID {
			doc.RemoteID = remoteID
			if err := repo.Update(ctx, doc); err != nil {
				return err
			}
		}
		if err := events.LogDocumentSynced(ctx, db.NewEventRepository(database), models.EventTypeDocumentPushed, doc.ID, remoteID); err != nil {
			logger.Warn().Err(err).Msg("failed to record push event")
		}

		fmt.Printf("Pushed %s (%s)\n", doc.Name, remoteID)
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull <document>",
	Short: "Pull the latest copy of a pushed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewDocumentRepository(database)
		doc, err := resolveDocument(ctx, repo, args[0])
		if err != nil {
			return err
		}
		if doc.RemoteID == "" {
			return &PreflightError{
				Message:  fmt.Sprintf("%s has never been pushed", doc.Name),
				NextStep: "framecast push " + doc.Name,
			}
		}

		client, err := syncClient()
		if err != nil {
			return err
		}

		progress := startProgress(fmt.Sprintf("Pulling %s", doc.Name))
		remote, err := client.Pull(ctx, doc.RemoteID)
		if err != nil {
			progress.Fail(err)
			return err
		}

		// Validate before touching the file on disk.
		sc, err := scene.Parse([]byte(remote.Scene))
		if err != nil {
			progress.Fail(err)
			return fmt.Errorf("remote copy is not a valid scene: %w", err)
		}
		if err := os.WriteFile(doc.Path, []byte(remote.Scene), 0o644); err != nil {
			progress.Fail(err)
			return err
		}
		progress.Done()

		doc.FrameCount = len(sc.Frames())
		if err := repo.Update(ctx, doc); err != nil {
			return err
		}
		if err := events.LogDocumentSynced(ctx, db.NewEventRepository(database), models.EventTypeDocumentPulled, doc.ID, doc.RemoteID); err != nil {
			logger.Warn().Err(err).Msg("failed to record pull event")
		}

		fmt.Printf("Pulled %s (%d frames)\n", doc.Name, doc.FrameCount)
		return nil
	},
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Inspect the sync backend",
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents stored on the sync backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := syncClient()
		if err != nil {
			return err
		}

		remotes, err := client.List(ctx)
		if err != nil {
			return err
		}
		if len(remotes) == 0 {
			fmt.Println("No remote documents.")
			return nil
		}

		rows := make([][]string, 0, len(remotes))
		for _, remote := range remotes {
			rows = append(rows, []string{
				remote.Name,
				remote.ID,
				remote.UpdatedAt.Format("2006-01-02 15:04"),
			})
		}
		return writeTable(os.Stdout, []string{"NAME", "REMOTE ID", "UPDATED"}, rows)
	},
}

// syncClient unlocks the vault and builds an authenticated client.
func syncClient() (*cloud.Client, error) {
	cred, err := loadCredential(vault.DefaultVaultPath())
	if err != nil {
		return nil, err
	}
	return cloud.NewClient(cred.BaseURL, cred.Token), nil
}
