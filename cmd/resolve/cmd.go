// Package resolve implements manual resolution of a single PDF whose
// barcode could not be read: the user supplies the ISBN and the file
// enters the pipeline at the catalog lookup.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"bookjan/internal/config"
	"bookjan/internal/datastore"
	"bookjan/internal/errors"
	"bookjan/internal/fileutil"
	"bookjan/internal/ndl"
	"bookjan/internal/organize"
)

// lookupRecord is overridable in tests.
var lookupRecord = ndl.FetchRecordCached

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	ISBN    string `help:"ISBN of the book" required:""`
	File    string `short:"f" help:"Path to the PDF file" required:"" type:"existingfile"`
	DestDir string `short:"d" help:"Directory the renamed copy is placed in (defaults to destdir in config)"`
	Move    bool   `help:"Rename the source file into the destination instead of copying"`
}

func (r *ResolveCmd) Run() error {
	if err := ndl.ValidateISBN(r.ISBN); err != nil {
		return err
	}

	destDir := r.DestDir
	if destDir == "" {
		destDir = config.DestDir
	}
	if !fileutil.DirExists(destDir) {
		return fmt.Errorf("destination directory does not exist: %s", destDir)
	}

	record, err := lookupRecord(context.Background(), r.ISBN)
	if err != nil {
		return err
	}

	store := datastore.NewSQLiteStore(config.DatabaseFile)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Append(record); err != nil {
		if errors.IsDuplicateRecord(err) {
			slog.Info("Book already in store, skipping", "isbn", r.ISBN)
			return nil
		}
		return err
	}

	organizer := organize.NewOrganizer(destDir, r.Move || config.MoveFiles)
	dst, err := organizer.Organize(r.File, record)
	if err != nil {
		return err
	}

	slog.Info("Book filed", "file", filepath.Base(r.File), "destination", filepath.Base(dst))
	return nil
}
