package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks a captcha token from the public lead form.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// HTTPVerifier validates tokens against a reCAPTCHA-style siteverify
// endpoint. A response is accepted when success is true and the score,
// if present, clears the configured floor.
type HTTPVerifier struct {
	verifyURL string
	secret    string
	minScore  float64
	client    *http.Client
}

func NewHTTPVerifier(verifyURL, secret string, minScore float64) *HTTPVerifier {
	return &HTTPVerifier{
		verifyURL: verifyURL,
		secret:    secret,
		minScore:  minScore,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, "POST", v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool     `json:"success"`
		Score   *float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Success {
		return false, nil
	}
	if result.Score != nil && *result.Score < v.minScore {
		return false, nil
	}
	return true, nil
}

// NilVerifier accepts every submission. Used when no captcha secret is
// configured so the public form keeps working in development.
type NilVerifier struct{}

func (NilVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return true, nil
}
