// Package app wires the tracker together: configuration, logging, the event
// bus and queue, the state stores and the TUI program.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"carbontrack/internal/config"
	"carbontrack/internal/dataset"
	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
	"carbontrack/internal/stores"
	"carbontrack/internal/ui"
)

// forwarded are the event types mirrored into the UI's diagnostic panel.
var forwarded = []domain.EventType{
	domain.EventActivityAdded,
	domain.EventActivityUpdated,
	domain.EventActivityDeleted,
	domain.EventThemeChanged,
	domain.EventSettingsUpdated,
	domain.EventMenuToggled,
	domain.EventPageChanged,
}

// Run starts the application and blocks until the UI exits.
func Run(args []string) error {
	fs := flag.NewFlagSet("carbontrack", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	datasetsDir := fs.String("datasets", "", "Directory with country emissions CSVs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	configSvc := config.NewService()
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = configSvc.LoadFromPath(*configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *datasetsDir != "" {
		cfg.DatasetsDir = *datasetsDir
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Dir(storage.DefaultPath())
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if cfg.DatasetsDir == "" {
		cfg.DatasetsDir = filepath.Join(dataDir, "datasets")
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := filepath.Join(dataDir, "carbontrack.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New(log)
	queue := eventbus.NewQueue(bus)

	store := storage.Open(filepath.Join(dataDir, "store.json"), log)

	activityStore := stores.NewActivityStore(store, queue)
	themeStore := stores.NewThemeStore(store, queue)
	settingsStore := stores.NewSettingsStore(store, queue)
	menuStore := stores.NewMenuStore(store, queue)

	loader := dataset.NewLoader(cfg.DatasetsDir, log)

	model := ui.NewModel(cfg, bus, queue, activityStore, themeStore, settingsStore, menuStore, loader, logPath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward bus events into the program.
	eventChan := make(chan eventbus.Event, 100)
	for _, eventType := range forwarded {
		bus.Subscribe(eventType, func(e eventbus.Event) {
			select {
			case eventChan <- e:
			default:
				log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
			}
		})
	}
	go func() {
		for e := range eventChan {
			p.Send(ui.EventMsg{Event: e})
		}
	}()

	// Store listeners refresh the UI's snapshots.
	notify := func() { p.Send(ui.StoreChangedMsg{}) }
	activityStore.Watch(notify)
	themeStore.Watch(notify)
	settingsStore.Watch(notify)
	menuStore.Watch(notify)

	// Deliver deferred store events until shutdown.
	go queue.Run(ctx)

	// Log every delivered event; the file behind the in-app pager.
	for _, eventType := range forwarded {
		eventType := eventType
		bus.Subscribe(eventType, func(e eventbus.Event) {
			log.Info().Str("event", string(eventType)).Interface("payload", e).Msg("event delivered")
		})
	}

	log.Info().Str("data_dir", dataDir).Msg("starting carbontrack")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info().Msg("carbontrack exited")

	close(eventChan)
	cancel()
	return nil
}
