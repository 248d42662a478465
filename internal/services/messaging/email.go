package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boreal/internal/config"
)

// EmailClient sends an email and returns a provider reference.
type EmailClient interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

// GraphClient sends mail through the Microsoft Graph sendMail endpoint
// using client-credentials tokens.
type GraphClient struct {
	tenantID     string
	clientID     string
	clientSecret string
	sender       string
	baseURL      string
	http         *http.Client
}

func NewGraphClient() *GraphClient {
	return &GraphClient{
		tenantID:     config.GetEnv("GRAPH_TENANT_ID", ""),
		clientID:     config.GetEnv("GRAPH_CLIENT_ID", ""),
		clientSecret: config.GetEnv("GRAPH_CLIENT_SECRET", ""),
		sender:       config.GetEnv("GRAPH_SENDER", ""),
		baseURL:      config.GetEnv("GRAPH_API_URL", "https://graph.microsoft.com/v1.0"),
		http:         &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *GraphClient) Send(ctx context.Context, to, subject, body string) (string, error) {
	if c.tenantID == "" || c.clientID == "" || c.clientSecret == "" || c.sender == "" {
		return "", fmt.Errorf("graph credentials not configured")
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"message": map[string]interface{}{
			"subject": subject,
			"body": map[string]string{
				"contentType": "Text",
				"content":     body,
			},
			"toRecipients": []map[string]interface{}{
				{"emailAddress": map[string]string{"address": to}},
			},
		},
		"saveToSentItems": true,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", c.baseURL, c.sender)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	// Graph returns 202 with no body; there is no message id to keep.
	return "graph-accepted", nil
}

func (c *GraphClient) token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Add("client_id", c.clientID)
	form.Add("client_secret", c.clientSecret)
	form.Add("scope", "https://graph.microsoft.com/.default")
	form.Add("grant_type", "client_credentials")

	endpoint := fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return result.AccessToken, nil
}
