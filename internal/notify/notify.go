// Package notify delivers run summaries to the configured channels. A short
// plain digest goes to the chat channel, a rich variant to email. Channels
// fail independently and a delivery failure never propagates past Notify.
package notify

import (
	"context"
	"log"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Channel delivers one formatted message.
type Channel interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// Notifier fans a run summary out to its channels.
type Notifier struct {
	chat  Channel
	email Channel
}

// New creates a notifier. Either channel may be nil when unconfigured.
func New(chat, email Channel) *Notifier {
	return &Notifier{chat: chat, email: email}
}

// Notify formats and delivers the summary. Returns true only when every
// configured channel accepted its message. Never panics.
func (n *Notifier) Notify(ctx context.Context, summary types.RunSummary) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[notify] recovered: %v", rec)
			ok = false
		}
	}()

	ok = true
	if n.chat != nil {
		if err := n.chat.Send(ctx, Digest(summary)); err != nil {
			log.Printf("[notify] %s delivery failed: %v", n.chat.Name(), err)
			ok = false
		}
	}
	if n.email != nil {
		if err := n.email.Send(ctx, RichSummary(summary)); err != nil {
			log.Printf("[notify] %s delivery failed: %v", n.email.Name(), err)
			ok = false
		}
	}
	return ok
}
