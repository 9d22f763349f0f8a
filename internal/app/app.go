// Package app wires configuration, logging, storage, the push transport
// and the reminder service into one process with a start/stop lifecycle.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"classbell/internal/clock"
	"classbell/internal/config"
	"classbell/internal/push"
	"classbell/internal/reminder"
	"classbell/internal/store"
	"classbell/pkg/logx"
)

type App struct {
	cfgm *config.Manager

	logs *logx.Service
	log  logx.Logger

	st  store.Store
	rem *reminder.Service

	watchCancel context.CancelFunc
	watchWG     sync.WaitGroup
	cfgCh       chan *config.Config
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logSvc, log := logx.New(mapLogConfig(cfg))
	log = log.With(logx.String("comp", "app"))
	cfgm.SetLogger(logSvc.Logger().With(logx.String("comp", "config")))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	clk := clock.InZone(loc)

	busy, err := config.ParseDurationOrDefault("store.busy_timeout", cfg.Store.BusyTimeout, 5*time.Second)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(store.Config{Path: cfg.Store.Path, BusyTimeout: busy}, loc,
		logSvc.Logger().With(logx.String("comp", "store")))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pushCfg, err := mapPushConfig(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	sender, err := push.New(pushCfg, logSvc.Logger().With(logx.String("comp", "push")))
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	rem := reminder.New(mapReminderConfig(cfg), clk, st, sender,
		logSvc.Logger().With(logx.String("comp", "reminder")))

	log.Info("configured",
		logx.String("tz", loc.String()),
		logx.String("store", cfg.Store.Path),
		logx.String("push_driver", cfg.Push.Driver))

	return &App{cfgm: cfgm, logs: logSvc, log: log, st: st, rem: rem}, nil
}

// Start launches the reminder jobs and the config file watch.
func (a *App) Start(ctx context.Context) error {
	a.rem.Start(ctx)

	wctx, cancel := context.WithCancel(ctx)
	a.watchCancel = cancel
	a.cfgCh = a.cfgm.Subscribe(1)

	a.watchWG.Add(2)
	go func() {
		defer a.watchWG.Done()
		if err := a.cfgm.Watch(wctx); err != nil {
			a.log.Warn("config watch stopped", logx.Err(err))
		}
	}()
	go func() {
		defer a.watchWG.Done()
		for cfg := range a.cfgCh {
			a.applyConfig(cfg)
		}
	}()

	a.log.Info("started")
	return nil
}

// applyConfig pushes a reloaded config into the runtime-tunable services.
// Store path, timezone and push driver changes need a restart.
func (a *App) applyConfig(cfg *config.Config) {
	a.logs.Apply(mapLogConfig(cfg))
	a.rem.Apply(mapReminderConfig(cfg))
	a.log.Info("runtime config applied")
}

func (a *App) Stop(ctx context.Context) {
	a.rem.Stop(ctx)

	if a.watchCancel != nil {
		a.watchCancel()
	}
	if a.cfgCh != nil {
		a.cfgm.Unsubscribe(a.cfgCh)
		a.cfgCh = nil
	}
	a.watchWG.Wait()

	if err := a.st.Close(); err != nil {
		a.log.Warn("store close failed", logx.Err(err))
	}
	a.log.Info("stopped")
	_ = a.logs.Close()
}

func mapLogConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}

func mapPushConfig(cfg *config.Config) (push.Config, error) {
	timeout, err := config.ParseDurationOrDefault("push.send_timeout", cfg.Push.SendTimeout, 10*time.Second)
	if err != nil {
		return push.Config{}, err
	}
	return push.Config{
		Driver:      cfg.Push.Driver,
		SendTimeout: timeout,
		WebPush: push.WebPushConfig{
			VAPIDPublicKey:  cfg.Push.WebPush.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.Push.WebPush.VAPIDPrivateKey,
			Subscriber:      cfg.Push.WebPush.Subscriber,
		},
		Telegram: push.TelegramConfig{Token: cfg.Push.Telegram.Token},
	}, nil
}

func mapReminderConfig(cfg *config.Config) reminder.Config {
	return reminder.Config{
		Enabled:    cfg.Reminder.Enabled,
		Workers:    cfg.Reminder.Workers,
		RatePerSec: cfg.Push.RatePerSec,
	}
}
