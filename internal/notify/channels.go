package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sendTimeout = 15 * time.Second

// ChatWebhook delivers to a WhatsApp-style chat webhook that accepts
// {"text": "..."} payloads.
type ChatWebhook struct {
	URL    string
	client *http.Client
}

// NewChatWebhook creates the chat channel.
func NewChatWebhook(url string) *ChatWebhook {
	return &ChatWebhook{URL: url, client: &http.Client{Timeout: sendTimeout}}
}

// Name implements Channel.
func (c *ChatWebhook) Name() string { return "chat" }

// Send implements Channel.
func (c *ChatWebhook) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return fmt.Errorf("encode chat payload: %w", err)
	}
	return postJSON(ctx, c.client, c.URL, payload, "chat webhook")
}

// EmailWebhook delivers through an HTTP email-send API
// ({"to", "subject", "body"} payloads).
type EmailWebhook struct {
	URL     string
	To      string
	Subject string
	client  *http.Client
}

// NewEmailWebhook creates the email channel.
func NewEmailWebhook(url, to string) *EmailWebhook {
	return &EmailWebhook{
		URL:     url,
		To:      to,
		Subject: "Job hunt run report",
		client:  &http.Client{Timeout: sendTimeout},
	}
}

// Name implements Channel.
func (e *EmailWebhook) Name() string { return "email" }

// Send implements Channel.
func (e *EmailWebhook) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      e.To,
		"subject": e.Subject,
		"body":    message,
	})
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}
	return postJSON(ctx, e.client, e.URL, payload, "email webhook")
}

func postJSON(ctx context.Context, client *http.Client, url string, payload []byte, what string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", what, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned HTTP %d", what, resp.StatusCode)
	}
	return nil
}
