package scan

import (
	"context"
	"fmt"

	"bookjan/internal/barcode"
	"bookjan/internal/config"
	"bookjan/internal/datastore"
	"bookjan/internal/fileutil"
	"bookjan/internal/organize"
	"bookjan/internal/pagerange"
	"bookjan/internal/pdfpage"

	"github.com/spf13/viper"
)

// ScanCmd represents the scan command
type ScanCmd struct {
	SourceDir     string `short:"s" help:"Directory containing scanned PDF files (defaults to sourcedir in config)"`
	DestDir       string `short:"d" help:"Directory renamed copies are placed in (defaults to destdir in config)"`
	Window        int    `short:"w" help:"Number of pages searched for the barcode" default:"0"`
	Anchor        string `help:"Which end of the document the window counts from: first or end" default:""`
	DPI           int    `help:"Raster resolution for barcode pages" default:"0"`
	Move          bool   `help:"Rename source files into the destination instead of copying"`
	NoInteractive bool   `help:"Skip the manual ISBN entry pass for unresolved files"`
	JSON          bool   `help:"Write processed records to JSON format"`
	JSONOutput    string `help:"Path to JSON output file (defaults to json/books.json)"`
}

func (s *ScanCmd) Run() error {
	sourceDir := s.SourceDir
	if sourceDir == "" {
		sourceDir = config.SourceDir
	}
	destDir := s.DestDir
	if destDir == "" {
		destDir = config.DestDir
	}
	window := s.Window
	if window == 0 {
		window = config.ScanWindow
	}
	anchorName := s.Anchor
	if anchorName == "" {
		anchorName = config.ScanAnchor
	}
	dpi := s.DPI
	if dpi == 0 {
		dpi = config.RenderDPI
	}
	jsonOutput := s.JSONOutput
	if jsonOutput == "" {
		jsonOutput = viper.GetString("json.outputfile")
	}

	if !fileutil.DirExists(sourceDir) {
		return fatalDirError("source", sourceDir)
	}
	if !fileutil.DirExists(destDir) {
		return fatalDirError("destination", destDir)
	}

	anchor, err := pagerange.ParseAnchor(anchorName)
	if err != nil {
		return err
	}

	store := datastore.NewSQLiteStore(config.DatabaseFile)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() { _ = store.Close() }()

	extractor := barcode.NewExtractor(pdfpage.NewRenderer(dpi), window, anchor)
	organizer := organize.NewOrganizer(destDir, s.Move || config.MoveFiles)

	driver := NewDriver(extractor, store, organizer, Options{
		SourceDir:   sourceDir,
		Interactive: !s.NoInteractive,
		JSON:        s.JSON,
		JSONOutput:  jsonOutput,
	})

	_, err = driver.Run(context.Background())
	return err
}
