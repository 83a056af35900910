// Package app wires the store, generator, notifier and backup manager
// together from configuration.
package app

import (
	"fmt"
	"log/slog"

	"github.com/danli429/team-scheduling-system/internal/backup"
	"github.com/danli429/team-scheduling-system/internal/config"
	"github.com/danli429/team-scheduling-system/internal/notify"
	"github.com/danli429/team-scheduling-system/internal/reminder"
	"github.com/danli429/team-scheduling-system/internal/rota"
	"github.com/danli429/team-scheduling-system/internal/store"
)

// App holds the assembled components for one invocation.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Store     *store.Store
	Generator *rota.Generator
	Notifier  notify.Notifier
	Backups   *backup.Manager
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", cfg.DBPath, err)
	}

	sinks := notify.Multi{notify.NewLogNotifier(log)}
	if len(cfg.NotifyURLs) > 0 {
		push, err := notify.NewShoutrrr(cfg.NotifyURLs...)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("configure notifications: %w", err)
		}
		sinks = append(sinks, push)
	}

	backups := backup.NewManager(backup.Config{
		Endpoint:      cfg.S3Endpoint,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Prefix:        cfg.BackupPrefix,
		Passphrase:    cfg.BackupPassphrase,
		Schedule:      cfg.BackupSchedule,
		RetentionDays: cfg.BackupRetentionDays,
	}, st, log)

	return &App{
		Config:    cfg,
		Log:       log,
		Store:     st,
		Generator: rota.New(st, log),
		Notifier:  sinks,
		Backups:   backups,
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

// ReminderScheduler builds the scan loop with the configured interval.
func (a *App) ReminderScheduler() *reminder.Scheduler {
	return reminder.NewScheduler(a.Store, a.Notifier, a.Log, a.Config.ScanInterval)
}
