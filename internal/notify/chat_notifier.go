package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"travel-backend/internal/models"
)

// WebhookChatNotifier posts lead alerts to a team chat incoming webhook
// (Google Chat / Slack style: a JSON body with a "text" field).
type WebhookChatNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookChatNotifier(webhookURL string) *WebhookChatNotifier {
	return &WebhookChatNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (n *WebhookChatNotifier) NotifyLead(ctx context.Context, inquiry *models.Inquiry) error {
	text := fmt.Sprintf("*New %s lead*\nName: %s\nPhone: %s", inquiry.Type.Display(), inquiry.Name, inquiry.Phone)
	if inquiry.Destination != "" {
		text += "\nDestination: " + inquiry.Destination
	}

	payload := map[string]interface{}{"text": text}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("chat webhook error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// MockChatNotifier logs instead of posting, for unconfigured environments.
type MockChatNotifier struct{}

func (n *MockChatNotifier) NotifyLead(ctx context.Context, inquiry *models.Inquiry) error {
	log.Printf("[MockChat] Lead alert for %s (%s)", inquiry.Name, inquiry.Phone)
	return nil
}
