// Package main provides the player entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/api/rest"
	"playdeck/internal/app/notification"
	"playdeck/internal/app/player"
	"playdeck/internal/infra/config"
	"playdeck/internal/infra/library"
	"playdeck/internal/infra/logger"
	"playdeck/internal/media"
	"playdeck/internal/ui"
)

var (
	app        = kingpin.New("playdeck", "Playlist-driven terminal music player")
	configPath = app.Flag("config", "Path to config file").Default("config/player.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
	headless   = app.Flag("no-ui", "Run without the terminal UI (remote API only)").Bool()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger from flags first so config loading is logged
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	// The config log section applies unless overridden on the command line
	if !*verbose && *logfile == "" {
		if err := logger.Init(logger.Config{Output: cfg.Log.Output, Level: cfg.Log.Level}); err != nil {
			zlog.Fatal().Msgf("Failed to initialize logger: %v", err)
		}
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Player error: %v", err)
		os.Exit(1)
	}
}

// run executes the main player logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	tracks, err := library.Load(cfg.Library.Playlist)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	zlog.Info().Msgf("Loaded playlist: path=%s tracks=%d", cfg.Library.Playlist, tracks.Len())

	handle, err := media.NewHandle(cfg.Media.Backend, cfg.Media.Settings)
	if err != nil {
		return fmt.Errorf("failed to create media backend: %w", err)
	}
	defer handle.Close()

	ctrl := player.NewController(player.Config{
		RewindThresholdSec: cfg.Player.RewindThresholdSec,
	}, tracks, handle)
	defer ctrl.Close()

	events := notification.NewManager()
	defer events.Close()
	go events.Pump(ctrl.Events())

	labels := ui.Labels{
		Heading:  cfg.Labels.Heading,
		Play:     cfg.Labels.Play,
		Pause:    cfg.Labels.Pause,
		Previous: cfg.Labels.Previous,
		Next:     cfg.Labels.Next,
		Seek:     cfg.Labels.Seek,
	}

	// Reload the tracklist when the playlist file changes
	if cfg.Library.Watch {
		watcher, err := library.Watch(cfg.Library.Playlist)
		if err != nil {
			return fmt.Errorf("failed to watch playlist: %w", err)
		}
		defer watcher.Close()

		go func() {
			for updated := range watcher.Updates() {
				zlog.Info().Msgf("Playlist reloaded: tracks=%d", updated.Len())
				ctrl.ReplaceTracks(updated)
			}
		}()
	}

	// Channel to capture server startup errors
	serverErrCh := make(chan error, 1)

	var server *rest.Server
	if cfg.API.Enabled {
		server = rest.NewServer(cfg.API.Addr, ctrl, events, labels)
		go func() {
			zlog.Info().Msgf("Starting API server: addr=%s", cfg.API.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if *headless {
		if !cfg.API.Enabled {
			zlog.Warn().Msg("Running without UI and without API; only signals can stop the player")
		}
		select {
		case <-sigCh:
			zlog.Info().Msg("Received shutdown signal...")
		case err := <-serverErrCh:
			return fmt.Errorf("server error: %w", err)
		}
	} else {
		subID, uiEvents := events.Subscribe(32)
		defer events.Unsubscribe(subID)

		tui := ui.NewApp(ctrl, labels, uiEvents)

		// Stop the UI on signal or server failure so Run returns
		uiDone := make(chan struct{})
		go func() {
			select {
			case <-sigCh:
				zlog.Info().Msg("Received shutdown signal...")
				tui.Stop()
			case err := <-serverErrCh:
				zlog.Error().Msgf("Server error: %v", err)
				tui.Stop()
			case <-uiDone:
			}
		}()

		err := tui.Run()
		close(uiDone)
		if err != nil {
			return fmt.Errorf("ui error: %w", err)
		}
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Msgf("Failed to shutdown server: %v", err)
		}
	}

	zlog.Info().Msg("Player stopped")
	return nil
}
