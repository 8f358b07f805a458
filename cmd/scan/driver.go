// Package scan implements the batch pipeline: enumerate PDFs, extract
// book JAN codes, look up catalog records, store them and file the PDFs
// under their catalog names.
package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"bookjan/internal/barcode"
	"bookjan/internal/errors"
	"bookjan/internal/fileutil"
	"bookjan/internal/ndl"
	"bookjan/internal/organize"
	"bookjan/internal/tui"
)

// CodeExtractor finds the book JAN code of one PDF file.
// Implemented by barcode.Extractor; abstracted so driver tests can run
// without ghostscript.
type CodeExtractor interface {
	Extract(ctx context.Context, pdfPath string) (barcode.Result, error)
}

// RecordStore is the subset of datastore.Store the driver needs.
type RecordStore interface {
	Append(record map[string]string) error
}

// LookupFunc resolves an ISBN to a catalog record.
type LookupFunc func(ctx context.Context, isbn string) (ndl.Record, error)

// PromptFunc asks the user for a manual ISBN during the second pass.
type PromptFunc func(filename string) (tui.PromptResult, error)

// Options configures one batch run.
type Options struct {
	SourceDir   string
	Interactive bool
	JSON        bool
	JSONOutput  string
	// ProgressOutput receives the progress bar; defaults to stderr.
	ProgressOutput io.Writer
}

// FileError records a failure against the file it occurred on.
type FileError struct {
	Path string
	Err  error
}

// Report summarizes the outcome of a batch run.
type Report struct {
	// Processed maps source path to destination path for filed books.
	Processed map[string]string
	// Duplicates lists files whose ISBN was already in the store.
	Duplicates []string
	// Unresolved lists files still without an ISBN after every pass.
	Unresolved []string
	// Errors lists per-file failures. The batch never aborts on them.
	Errors []FileError
	// Records holds the catalog records of processed books, for export.
	Records []ndl.Record
}

// Driver runs the pipeline over a directory of PDF files.
type Driver struct {
	extractor CodeExtractor
	store     RecordStore
	organizer *organize.Organizer
	lookup    LookupFunc
	prompt    PromptFunc
	opts      Options
}

// NewDriver assembles a Driver from its collaborators.
func NewDriver(extractor CodeExtractor, store RecordStore, organizer *organize.Organizer, opts Options) *Driver {
	return &Driver{
		extractor: extractor,
		store:     store,
		organizer: organizer,
		lookup:    ndl.FetchRecordCached,
		prompt:    tui.PromptISBN,
		opts:      opts,
	}
}

// Run processes every PDF directly inside the source directory. Only a
// missing source directory is fatal; all other failures are recorded in
// the report against the file they belong to.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	paths, err := fileutil.ListPDFs(d.opts.SourceDir)
	if err != nil {
		return nil, err
	}

	report := &Report{Processed: make(map[string]string)}
	if len(paths) == 0 {
		slog.Info("No PDF files found", "directory", d.opts.SourceDir)
		return report, nil
	}

	unresolved := d.firstPass(ctx, paths, report)

	if d.opts.Interactive && len(unresolved) > 0 {
		unresolved = d.manualPass(ctx, unresolved, report)
	}
	report.Unresolved = unresolved

	if d.opts.JSON && len(report.Records) > 0 {
		if err := d.exportJSON(report.Records); err != nil {
			report.Errors = append(report.Errors, FileError{Path: d.opts.JSONOutput, Err: err})
		}
	}

	logReport(report)
	return report, nil
}

// firstPass scans every file for a barcode and files the ones that
// resolve. It returns the paths that still need an ISBN.
func (d *Driver) firstPass(ctx context.Context, paths []string, report *Report) []string {
	bar := pb.New(len(paths)).
		SetWriter(d.progressWriter()).
		Start()
	defer bar.Finish()

	var unresolved []string
	for _, path := range paths {
		bar.Increment()

		result, err := d.extractor.Extract(ctx, path)
		if err != nil {
			report.Errors = append(report.Errors, FileError{Path: path, Err: err})
			continue
		}
		if !result.Found() {
			slog.Info("No book JAN code found", "file", filepath.Base(path))
			unresolved = append(unresolved, path)
			continue
		}

		if resolved := d.processISBN(ctx, path, result.Code.ISBN, report); !resolved {
			unresolved = append(unresolved, path)
		}
	}
	return unresolved
}

// manualPass prompts for an ISBN for each file the scan could not
// resolve. Entering the skip token leaves the file unresolved; stopping
// leaves it and every remaining file unresolved.
func (d *Driver) manualPass(ctx context.Context, paths []string, report *Report) []string {
	var still []string
	for i, path := range paths {
		prompt, err := d.prompt(filepath.Base(path))
		if err != nil {
			if errors.IsStopProcessingError(err) {
				slog.Info("Manual entry interrupted", "remaining", len(paths)-i)
				return append(still, paths[i:]...)
			}
			report.Errors = append(report.Errors, FileError{Path: path, Err: err})
			still = append(still, path)
			continue
		}

		switch prompt.Action {
		case tui.ActionEntered:
			if resolved := d.processISBN(ctx, path, prompt.ISBN, report); !resolved {
				still = append(still, path)
			}
		case tui.ActionStopped:
			slog.Info("Manual entry stopped", "remaining", len(paths)-i)
			return append(still, paths[i:]...)
		default:
			still = append(still, path)
		}
	}
	return still
}

// processISBN looks up one ISBN and files the PDF under the catalog
// name. It returns false when the file remains unresolved (unknown
// ISBN); duplicates and filing errors count as handled.
func (d *Driver) processISBN(ctx context.Context, path, isbn string, report *Report) bool {
	record, err := d.lookup(ctx, isbn)
	if err != nil {
		if errors.IsLookupNotFound(err) {
			slog.Warn("ISBN not found in catalog", "file", filepath.Base(path), "isbn", isbn)
			return false
		}
		report.Errors = append(report.Errors, FileError{Path: path, Err: err})
		return true
	}

	if err := d.store.Append(record); err != nil {
		if errors.IsDuplicateRecord(err) {
			slog.Info("Book already in store, skipping", "file", filepath.Base(path), "isbn", isbn)
			report.Duplicates = append(report.Duplicates, path)
			return true
		}
		report.Errors = append(report.Errors, FileError{Path: path, Err: err})
		return true
	}

	dst, err := d.organizer.Organize(path, record)
	if err != nil {
		report.Errors = append(report.Errors, FileError{Path: path, Err: err})
		return true
	}

	report.Processed[path] = dst
	report.Records = append(report.Records, record)
	slog.Info("Book filed", "file", filepath.Base(path), "destination", filepath.Base(dst))
	return true
}

func (d *Driver) exportJSON(records []ndl.Record) error {
	_, err := fileutil.WriteJSONFile(records, d.opts.JSONOutput, true)
	return err
}

func (d *Driver) progressWriter() io.Writer {
	if d.opts.ProgressOutput != nil {
		return d.opts.ProgressOutput
	}
	return os.Stderr
}

func logReport(report *Report) {
	slog.Info("Batch finished",
		"processed", len(report.Processed),
		"duplicates", len(report.Duplicates),
		"unresolved", len(report.Unresolved),
		"errors", len(report.Errors))

	for _, path := range report.Unresolved {
		slog.Warn("Still unresolved", "file", filepath.Base(path))
	}
	for _, fe := range report.Errors {
		slog.Error("File failed", "file", filepath.Base(fe.Path), "error", fe.Err)
	}
}

// fatalDirError prettifies the error for a missing required directory.
func fatalDirError(role, dir string) error {
	return fmt.Errorf("%s directory does not exist: %s", role, dir)
}
