package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"bookjan/cmd/resolve"
	"bookjan/cmd/scan"
	"bookjan/internal/cache"
	"bookjan/internal/config"
)

// CLI represents the complete command structure for the bookjan application
type CLI struct {
	// Global flags
	Move bool `help:"Rename source files into the destination instead of copying"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Scan    scan.ScanCmd       `cmd:"" help:"Scan a directory of PDFs, look up their barcodes and file them"`
	Resolve resolve.ResolveCmd `cmd:"" help:"Resolve a single PDF with a manually supplied ISBN"`
	Cache   CacheCmd           `cmd:"" help:"Manage the lookup cache"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached lookups for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookjan"),
		kong.Description("A tool to file scanned comic book PDFs by their book JAN barcodes."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("sourcedir", "./inbox")
	viper.SetDefault("destdir", "./shelf")
	viper.SetDefault("database.file", "./bookjan.db")
	viper.SetDefault("scan.window", 5)
	viper.SetDefault("scan.anchor", "end")
	viper.SetDefault("scan.dpi", 200)
	viper.SetDefault("movefiles", false)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// JSON export default
	viper.SetDefault("json.outputfile", "./json/books.json")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetMoveFiles(cli.Move)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("BOOKJAN_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
