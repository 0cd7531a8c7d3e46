// Package backend provides the HTTP client that forwards payment status updates to the merchant backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

var _ ports.PaymentNotifier = (*Client)(nil)

// Client implements ports.PaymentNotifier.
type Client struct {
	notifyURL  string
	apiKey     string
	httpClient ports.HTTPDoer
}

// NewClient creates a new merchant backend client.
func NewClient(notifyURL, apiKey string, httpClient ports.HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		notifyURL:  notifyURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// NotifyPaymentStatus posts a processed callback to the backend.
func (c *Client) NotifyPaymentStatus(ctx context.Context, update domain.PaymentStatusUpdate) error {
	jsonBody, err := json.Marshal(update)
	if err != nil {
		return domain.NewServiceError(domain.ErrNotifyFailed,
			"failed to marshal payload", domain.CodeNotify)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.notifyURL, bytes.NewReader(jsonBody))
	if err != nil {
		return domain.NewServiceError(domain.ErrNotifyFailed,
			"failed to create request", domain.CodeNotify)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Webhook-Secret", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewServiceError(domain.ErrNotifyFailed,
			"request failed: "+err.Error(), domain.CodeNotify)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return domain.NewServiceError(domain.ErrNotifyFailed,
			fmt.Sprintf("backend returned status %d: %s", resp.StatusCode, string(body)),
			domain.CodeNotify)
	}

	return nil
}

// NopNotifier drops every update. Used when no backend URL is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyPaymentStatus(context.Context, domain.PaymentStatusUpdate) error {
	return nil
}
