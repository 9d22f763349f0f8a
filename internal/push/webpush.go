package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// webpushSender delivers via the Web Push protocol with VAPID
// authentication. The recipient token is the serialized PushSubscription
// JSON the browser handed to the client app.
type webpushSender struct {
	opts    webpush.Options
	timeout time.Duration
}

func newWebPush(cfg WebPushConfig, timeout time.Duration) (Sender, error) {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return nil, errors.New("push: webpush requires a VAPID key pair")
	}
	return &webpushSender{
		opts: webpush.Options{
			Subscriber:      cfg.Subscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             60,
		},
		timeout: timeout,
	}, nil
}

func (s *webpushSender) Send(ctx context.Context, token, title, body string) error {
	if token == "" {
		return ErrNoToken
	}
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(token), &sub); err != nil {
		return fmt.Errorf("push: bad subscription: %w", err)
	}

	payload, err := json.Marshal(struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{Title: title, Body: body})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, &s.opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// 404/410 mean the subscription is gone; the caller logs and moves on.
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push: endpoint returned %s", resp.Status)
	}
	return nil
}
