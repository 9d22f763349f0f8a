// Package push abstracts the outbound notification transport.
//
// The reminder core only needs send(token, title, body) -> error; what a
// token means (a Web Push subscription, a Telegram chat ID) is a driver
// detail selected by config.
package push

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"classbell/pkg/logx"
)

// Sender delivers one rendered message to one recipient token.
// Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, token, title, body string) error
}

type Config struct {
	Driver      string
	SendTimeout time.Duration
	WebPush     WebPushConfig
	Telegram    TelegramConfig
}

type WebPushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

type TelegramConfig struct {
	Token string
}

var ErrNoToken = errors.New("push: empty token")

// New builds the configured driver.
func New(cfg Config, log logx.Logger) (Sender, error) {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "none":
		return nopSender{log: log}, nil
	case "webpush":
		return newWebPush(cfg.WebPush, cfg.SendTimeout)
	case "telegram":
		return newTelegram(cfg.Telegram, cfg.SendTimeout)
	default:
		return nil, fmt.Errorf("push: unknown driver %q", cfg.Driver)
	}
}

// nopSender logs and drops. Useful in development when no transport
// credentials are configured.
type nopSender struct {
	log logx.Logger
}

func (s nopSender) Send(_ context.Context, token, title, _ string) error {
	if token == "" {
		return ErrNoToken
	}
	s.log.Debug("push dropped (driver none)", logx.String("title", title))
	return nil
}
