package notify

import (
	"context"
	"log"
	"time"

	"travel-backend/internal/metrics"
	"travel-backend/internal/models"
)

// Dispatcher fans a new lead out to the email and chat channels. Dispatch
// is fire-and-forget: each channel runs in its own goroutine with its own
// timeout, and a failed channel is logged and counted, never surfaced to
// the caller. Lead capture must not depend on either provider being up.
type Dispatcher struct {
	email EmailSender
	chat  ChatNotifier
}

func NewDispatcher(email EmailSender, chat ChatNotifier) *Dispatcher {
	return &Dispatcher{email: email, chat: chat}
}

// DispatchLead triggers both channels and returns immediately.
func (d *Dispatcher) DispatchLead(inquiry *models.Inquiry) {
	if d == nil {
		return
	}

	if d.email != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := d.email.SendLeadAlert(ctx, inquiry); err != nil {
				log.Printf("[Notify] Email alert failed for inquiry %d: %v", inquiry.ID, err)
				metrics.NotificationFailures.WithLabelValues("email").Inc()
			}
		}()
	}

	if d.chat != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := d.chat.NotifyLead(ctx, inquiry); err != nil {
				log.Printf("[Notify] Chat alert failed for inquiry %d: %v", inquiry.ID, err)
				metrics.NotificationFailures.WithLabelValues("chat").Inc()
			}
		}()
	}
}
