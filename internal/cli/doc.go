// Package cli provides document library commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/events"
	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/scene"
)

var (
	docImportName string
	docListAll    bool
)

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(docImportCmd)
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docScanCmd)
	docCmd.AddCommand(docShowCmd)
	docCmd.AddCommand(docRmCmd)

	docImportCmd.Flags().StringVar(&docImportName, "name", "", "document name (default: scene name or file name)")
	docListCmd.Flags().BoolVar(&docListAll, "all", false, "include archived documents")
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage the document library",
	Long:  "Import, list, inspect and remove canvas documents.",
}

var docImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a canvas document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		path, err := resolveScenePath(args[0])
		if err != nil {
			return err
		}
		if !scene.IsSceneFile(path) {
			return &PreflightError{
				Message: fmt.Sprintf("%s is not a scene file", path),
				Hint:    "Scene files use the .yaml or .yml extension",
			}
		}

		sc, err := scene.Load(path)
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		name := docImportName
		if name == "" {
			name = sc.Name
		}
		if name == "" {
			name = filepath.Base(path)
		}

		doc := &models.Document{
			Name:       name,
			Path:       path,
			Status:     models.DocumentStatusActive,
			FrameCount: len(sc.Frames()),
		}

		progress := startProgress(fmt.Sprintf("Importing %s", name))
		repo := db.NewDocumentRepository(database)
		if err := repo.Create(ctx, doc); err != nil {
			progress.Fail(err)
			if errors.Is(err, db.ErrDocumentExists) {
				return &PreflightError{
					Message:  fmt.Sprintf("document already imported from %s", path),
					NextStep: "framecast doc list",
				}
			}
			return err
		}
		progress.Done()

		if err := events.LogDocumentImported(ctx, db.NewEventRepository(database), doc.ID, doc.Name, doc.FrameCount); err != nil {
			logger.Warn().Err(err).Msg("failed to record import event")
		}

		if IsJSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(doc)
		}
		fmt.Printf("Imported %s (%d frames)\n", doc.Name, doc.FrameCount)
		return nil
	},
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		status := models.DocumentStatusActive
		if docListAll {
			status = ""
		}
		docs, err := db.NewDocumentRepository(database).List(ctx, status)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(docs)
		}
		if len(docs) == 0 {
			fmt.Println("No documents yet. Import one with: framecast doc import <path>")
			return nil
		}

		rows := make([][]string, 0, len(docs))
		for _, doc := range docs {
			rows = append(rows, []string{
				doc.Name,
				fmt.Sprintf("%d", doc.FrameCount),
				string(doc.Status),
				doc.Path,
			})
		}
		return writeTable(os.Stdout, []string{"NAME", "FRAMES", "STATUS", "PATH"}, rows)
	},
}

var docShowCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Show document details and slide order",
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

		sc, sceneErr := scene.Load(doc.Path)

		order, err := orderForDocument(ctx, database, doc, sc)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(struct {
				*models.Document
				Order []string `json:"order"`
			}{doc, order.IDs()})
		}

		fmt.Printf("Name:    %s\n", doc.Name)
		fmt.Printf("Path:    %s\n", doc.Path)
		fmt.Printf("Status:  %s\n", doc.Status)
		if doc.RemoteID != "" {
			fmt.Printf("Remote:  %s\n", doc.RemoteID)
		}
		fmt.Printf("Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04"))
		if sceneErr != nil {
			fmt.Printf("Scene:   unreadable (%v)\n", sceneErr)
			return nil
		}

		fmt.Printf("Slides:  %d\n", len(order))
		for i, frame := range order {
			fmt.Printf("  %2d. %s\n", i+1, sc.FrameLabel(frame.ID))
		}
		return nil
	},
}

var docRmCmd = &cobra.Command{
	Use:   "rm <document>",
	Short: "Remove a document from the library",
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

		if err := repo.Delete(ctx, doc.ID); err != nil {
			return err
		}
		if err := events.LogDocumentRemoved(ctx, db.NewEventRepository(database), doc.ID); err != nil {
			logger.Warn().Err(err).Msg("failed to record removal event")
		}

		fmt.Printf("Removed %s\n", doc.Name)
		return nil
	},
}

var docScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List scene files in the library directory",
	Long:  "List scene files in the configured library directory and whether each is imported.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dir := GetConfig().LibraryDir
		paths, err := scene.ListSceneFiles(dir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Printf("No scene files in %s\n", dir)
			return nil
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()
		repo := db.NewDocumentRepository(database)

		rows := make([][]string, 0, len(paths))
		for _, path := range paths {
			imported := "no"
			if _, err := repo.GetByPath(ctx, path); err == nil {
				imported = "yes"
			} else if !errors.Is(err, db.ErrDocumentNotFound) {
				return err
			}
			rows = append(rows, []string{filepath.Base(path), imported, path})
		}
		return writeTable(os.Stdout, []string{"FILE", "IMPORTED", "PATH"}, rows)
	},
}

// resolveScenePath resolves an import argument: paths are used as-is,
// bare file names fall back to the library directory.
func resolveScenePath(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil || filepath.IsAbs(arg) || strings.ContainsRune(arg, os.PathSeparator) {
		return filepath.Abs(arg)
	}
	candidate := filepath.Join(GetConfig().LibraryDir, arg)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return filepath.Abs(arg)
}

// resolveDocument looks a document up by ID, name, or path.
func resolveDocument(ctx context.Context, repo *db.DocumentRepository, ref string) (*models.Document, error) {
	if doc, err := repo.Get(ctx, ref); err == nil {
		return doc, nil
	} else if !errors.Is(err, db.ErrDocumentNotFound) {
		return nil, err
	}

	if doc, err := repo.GetByName(ctx, ref); err == nil {
		return doc, nil
	} else if !errors.Is(err, db.ErrDocumentNotFound) {
		return nil, err
	}

	if abs, err := filepath.Abs(ref); err == nil {
		if doc, err := repo.GetByPath(ctx, abs); err == nil {
			return doc, nil
		} else if !errors.Is(err, db.ErrDocumentNotFound) {
			return nil, err
		}
	}

	return nil, &PreflightError{
		Message:  fmt.Sprintf("no document matches %q", ref),
		NextStep: "framecast doc list",
	}
}
