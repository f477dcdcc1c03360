package main

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/deepanshuvermaa/dripfeed/internal/config"
	"github.com/deepanshuvermaa/dripfeed/internal/genai"
	"github.com/deepanshuvermaa/dripfeed/internal/geo"
	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/profile"
	"github.com/deepanshuvermaa/dripfeed/internal/queue"
	"github.com/deepanshuvermaa/dripfeed/internal/samples"
	"github.com/deepanshuvermaa/dripfeed/internal/store"
	"github.com/deepanshuvermaa/dripfeed/internal/ui"
)

type options struct {
	DataDir  string `long:"data-dir" env:"DRIPFEED_DATA_DIR" description:"Data directory (default ~/.dripfeed)"`
	LogLevel string `long:"log-level" env:"DRIPFEED_LOG_LEVEL" default:"info" description:"Log level: debug, info, warn, error"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	level, err := charmlog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = charmlog.InfoLevel
	}
	if err := logging.Init(dataDir, level); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load(dataDir)
	if err != nil {
		logging.Fatal("config load failed", "error", err)
	}

	st, err := store.Open(filepath.Join(dataDir, "dripfeed.db"))
	if err != nil {
		logging.Fatal("database open failed", "error", err)
	}
	defer st.Close()

	source := genai.NewGeminiSource(
		cfg.Gemini.APIKey,
		cfg.Gemini.TextModel,
		cfg.Gemini.ImageModel,
		cfg.Gemini.VideoModel,
	)
	if !source.Available() {
		logging.Warn("no API key configured, live generation disabled")
	}

	bundled, err := samples.Load()
	if err != nil {
		logging.Fatal("bundled samples failed to load", "error", err)
	}

	ctrl := queue.New(source, st, bundled)
	tracker := profile.NewTracker(st)
	resolver := geo.NewResolver()

	app := ui.New(ctrl, source, st, tracker, resolver)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		os.Exit(1)
	}
}
