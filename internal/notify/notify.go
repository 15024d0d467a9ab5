package notify

import (
	"context"

	"travel-backend/internal/models"
)

// EmailSender delivers the lead-alert email to the agency inbox.
type EmailSender interface {
	SendLeadAlert(ctx context.Context, inquiry *models.Inquiry) error
}

// ChatNotifier posts a short alert card to the team chat webhook.
type ChatNotifier interface {
	NotifyLead(ctx context.Context, inquiry *models.Inquiry) error
}
