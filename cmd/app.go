package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/config"
	"github.com/misterclayt0n/warrior/internal/outbox"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/misterclayt0n/warrior/internal/storage"
)

// app bundles what a command needs: config, the opened store, the tracker
// hydrated from it and, when an endpoint is configured, the outbox drainer.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *storage.Store
	tracker *progression.Tracker
	drainer *outbox.Drainer
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return cfg, logger, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("Invalid timezone %q: %w", cfg.Timezone, err)
	}

	st, err := storage.Open(cfg.DB.ConnectionString)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, store: st}
	opts := []progression.Option{
		progression.WithLogger(logger),
		progression.WithLocation(loc),
	}

	tracker, err := progression.Open(ctx, st, opts...)
	if err != nil {
		st.Close()
		return nil, err
	}
	a.tracker = tracker

	if cfg.Sync.Endpoint != "" {
		sender := outbox.NewHTTPSender(cfg.Sync.Endpoint, cfg.Sync.Timeout.Duration)
		a.drainer = outbox.NewDrainer(tracker, sender, cfg.Sync.Interval.Duration, logger)
		a.drainer.SetOnline(!(cfg.Sync.Offline || offline))
	}
	return a, nil
}

// Close flushes the outbox once, best effort, and closes the store. A failed
// flush is only logged; the events stay queued for the next command.
func (a *app) Close(ctx context.Context) {
	if a.drainer != nil {
		a.drainer.FlushNow(ctx)
	}
	a.store.Close()
}

// confirm asks the user before a destructive action unless --yes was given.
func confirm(question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// withConfirmation runs op unconfirmed first. When the engine asks for a
// confirmation, the user is prompted and op runs again confirmed.
func withConfirmation(op func(confirmed bool) error) error {
	err := op(false)
	if !progression.NeedsConfirmation(err) {
		return err
	}
	ok, perr := confirm(err.Error() + "?")
	if perr != nil {
		return perr
	}
	if !ok {
		return fmt.Errorf("Cancelled")
	}
	return op(true)
}

func celebrate(message string) {
	fmt.Println(color.New(color.FgGreen, color.Bold).Sprintf("🎉 %s", message))
}
