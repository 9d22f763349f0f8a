package push

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// telegramSender delivers through a campus Telegram bot. The recipient
// token is the numeric chat ID the user registered with.
type telegramSender struct {
	bot *tele.Bot
}

func newTelegram(cfg TelegramConfig, _ time.Duration) (Sender, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("push: telegram requires a bot token")
	}
	bot, err := tele.NewBot(tele.Settings{
		Token: cfg.Token,
		// Send-only: no poller, no update handling.
		Offline: false,
	})
	if err != nil {
		return nil, fmt.Errorf("push: telegram init: %w", err)
	}
	return &telegramSender{bot: bot}, nil
}

func (s *telegramSender) Send(ctx context.Context, token, title, body string) error {
	if token == "" {
		return ErrNoToken
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return fmt.Errorf("push: bad chat id %q: %w", token, err)
	}

	// telebot has no per-call context; keep the contract by checking before
	// the blocking call.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	text := title + "\n\n" + body
	_, err = s.bot.Send(tele.ChatID(chatID), text)
	return err
}
