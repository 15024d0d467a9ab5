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

// HTTPEmailSender posts lead alerts to a transactional email API.
type HTTPEmailSender struct {
	endpoint string
	apiKey   string
	inbox    string
	client   *http.Client
}

func NewHTTPEmailSender(endpoint, apiKey, inbox string) *HTTPEmailSender {
	return &HTTPEmailSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		inbox:    inbox,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SendLeadAlert delivers a new-lead email to the agency inbox.
func (s *HTTPEmailSender) SendLeadAlert(ctx context.Context, inquiry *models.Inquiry) error {
	subject := fmt.Sprintf("New %s lead: %s", inquiry.Type.Display(), inquiry.Name)

	body := fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nDestination: %s\nMessage: %s",
		inquiry.Name, inquiry.Phone, inquiry.Email, inquiry.Destination, inquiry.Message)

	payload := map[string]interface{}{
		"to":      s.inbox,
		"subject": subject,
		"text":    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// MockEmailSender logs instead of sending. Used when the email API is not
// configured so lead capture keeps working in development.
type MockEmailSender struct{}

func (s *MockEmailSender) SendLeadAlert(ctx context.Context, inquiry *models.Inquiry) error {
	log.Printf("[MockEmail] Lead alert for %s (%s)", inquiry.Name, inquiry.Phone)
	return nil
}
