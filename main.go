// ABOUTME: Entry point for the Resonate Scope inspector
// ABOUTME: Parses CLI flags, loads the file and starts the TUI
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Resonate-Protocol/resonate-scope/internal/app"
	"github.com/Resonate-Protocol/resonate-scope/internal/config"
	"github.com/Resonate-Protocol/resonate-scope/internal/logging"
	"github.com/Resonate-Protocol/resonate-scope/internal/ui"
	"github.com/Resonate-Protocol/resonate-scope/internal/version"
)

var (
	file       = flag.String("file", "", "Audio file to inspect (.wav or .csv)")
	configPath = flag.String("config", "", "YAML config file (default: built-in settings)")
	logFile    = flag.String("log-file", "", "Log file path (overrides config)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	exportDir  = flag.String("export-dir", "", "Directory for exported spectrograms, CSV and WAV files")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, play the input once and stream logs instead")
)

func main() {
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: resonate-scope -file <audio.wav|samples.csv> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}
		cfg = loaded
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}

	useTUI := !*noTUI

	// TUI mode logs only to file; the terminal belongs to the TUI
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stdout: !useTUI,
	})
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("product", version.Product),
		zap.String("version", version.Version),
		zap.String("file", *file))

	input, output := ui.NewPlot(), ui.NewPlot()
	scope := app.New(cfg, input, output, app.WithLogger(logger))
	defer scope.Close()

	if err := scope.Open(*file); err != nil {
		logger.Fatal("failed to open file", zap.Error(err))
	}

	if !useTUI {
		playOnce(scope, logger)
		return
	}

	prog := ui.NewProgram(scope, input, output)

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.Stringer("signal", sig))
		prog.Quit()
	}()

	if _, err := prog.Run(); err != nil {
		logger.Error("TUI error", zap.Error(err))
	}

	logger.Info("inspector stopped")
}

// playOnce plays the input through and logs the position every second
func playOnce(scope *app.App, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	scope.Play()
	for {
		select {
		case <-sigChan:
			logger.Info("shutdown signal received")
			scope.Stop()
			return
		case <-ticker.C:
			st := scope.State()
			logger.Info("position",
				zap.Stringer("status", st.Status),
				zap.Int64("position_ms", st.PositionMs),
				zap.Int64("duration_ms", st.DurationMs))
			if st.PositionMs >= st.DurationMs {
				scope.Stop()
				return
			}
		}
	}
}
