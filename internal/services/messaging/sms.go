package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boreal/internal/config"
)

// SMSClient sends a text message and returns the provider message id.
type SMSClient interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioClient calls the Twilio Messages REST endpoint directly.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

func NewTwilioClient() *TwilioClient {
	return &TwilioClient{
		accountSID: config.GetEnv("TWILIO_ACCOUNT_SID", ""),
		authToken:  config.GetEnv("TWILIO_AUTH_TOKEN", ""),
		from:       config.GetEnv("TWILIO_FROM_NUMBER", ""),
		baseURL:    config.GetEnv("TWILIO_API_URL", "https://api.twilio.com"),
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *TwilioClient) Send(ctx context.Context, to, body string) (string, error) {
	if c.accountSID == "" || c.authToken == "" || c.from == "" {
		return "", fmt.Errorf("twilio credentials not configured")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	form := url.Values{}
	form.Add("To", to)
	form.Add("From", c.from)
	form.Add("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode sms response: %w", err)
	}
	return result.SID, nil
}
