package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Embedded zone database so the civil zone resolves on hosts without tzdata.
	_ "time/tzdata"
)

// DefaultTimezone is the institution's civil zone. Every date/time
// comparison in the reminder core happens in this zone.
const DefaultTimezone = "Africa/Lagos"

type Config struct {
	Timezone string         `json:"timezone"`
	Logging  LoggingConfig  `json:"logging"`
	Store    StoreConfig    `json:"store"`
	Push     PushConfig     `json:"push"`
	Reminder ReminderConfig `json:"reminder"`
}

type LoggingConfig struct {
	Level   string     `json:"level"`
	Console bool       `json:"console"`
	File    FileConfig `json:"file"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type StoreConfig struct {
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout"`
}

type PushConfig struct {
	// Driver selects the delivery transport: "webpush", "telegram" or "none".
	Driver      string         `json:"driver"`
	RatePerSec  int            `json:"rate_per_sec"`
	SendTimeout string         `json:"send_timeout"`
	WebPush     WebPushConfig  `json:"webpush"`
	Telegram    TelegramConfig `json:"telegram"`
}

type WebPushConfig struct {
	VAPIDPublicKey  string `json:"vapid_public_key"`
	VAPIDPrivateKey string `json:"vapid_private_key"`
	// Subscriber is the contact address sent to push services, e.g. "mailto:ops@example.edu".
	Subscriber string `json:"subscriber"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type ReminderConfig struct {
	Enabled bool `json:"enabled"`
	Workers int  `json:"workers"`
}

// ApplyDefaults fills zero fields in place.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = DefaultTimezone
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "INFO"
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = "./data/classbell.db"
	}
	if strings.TrimSpace(c.Push.Driver) == "" {
		c.Push.Driver = "none"
	}
	if c.Push.RatePerSec <= 0 {
		c.Push.RatePerSec = 10
	}
	if strings.TrimSpace(c.Push.SendTimeout) == "" {
		c.Push.SendTimeout = "10s"
	}
	if c.Reminder.Workers <= 0 {
		c.Reminder.Workers = 4
	}
}

// Validate rejects configs the service cannot start with.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, err := ParseDurationField("store.busy_timeout", c.Store.BusyTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("push.send_timeout", c.Push.SendTimeout); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Push.Driver)) {
	case "none":
	case "webpush":
		if c.Push.WebPush.VAPIDPublicKey == "" || c.Push.WebPush.VAPIDPrivateKey == "" {
			return errors.New("push.webpush: VAPID key pair is required")
		}
	case "telegram":
		if strings.TrimSpace(c.Push.Telegram.Token) == "" {
			return errors.New("push.telegram: token is required")
		}
	default:
		return fmt.Errorf("push.driver: unknown driver %q", c.Push.Driver)
	}
	return nil
}
