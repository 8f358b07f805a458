// Package config holds the process-wide configuration snapshot, sourced
// from viper at startup and threaded through the pipeline.
package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// SourceDir is the directory scanned (non-recursively) for PDF files
	SourceDir string
	// DestDir is the directory renamed copies are placed in
	DestDir string
	// DatabaseFile is the path to the SQLite record store
	DatabaseFile string
	// ScanWindow is the number of pages searched for a book JAN code
	ScanWindow int
	// ScanAnchor selects which end of the document the window counts from
	ScanAnchor string
	// RenderDPI is the ghostscript raster resolution
	RenderDPI int
	// MoveFiles renames source files into DestDir instead of copying
	MoveFiles bool
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("sourcedir", "./inbox")
	viper.SetDefault("destdir", "./shelf")
	viper.SetDefault("database.file", "./bookjan.db")
	viper.SetDefault("scan.window", 5)
	viper.SetDefault("scan.anchor", "end")
	viper.SetDefault("scan.dpi", 200)
	viper.SetDefault("movefiles", false)

	SourceDir = viper.GetString("sourcedir")
	DestDir = viper.GetString("destdir")
	DatabaseFile = viper.GetString("database.file")
	ScanWindow = viper.GetInt("scan.window")
	ScanAnchor = viper.GetString("scan.anchor")
	RenderDPI = viper.GetInt("scan.dpi")
	MoveFiles = viper.GetBool("movefiles")
}

// SetMoveFiles sets the MoveFiles flag.
func SetMoveFiles(move bool) {
	MoveFiles = move
}
