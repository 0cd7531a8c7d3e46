// Package momo implements the PaymentGateway port against the MTN Mobile Money collection API.
package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	liveEndpoint    = "https://momodeveloper.mtn.com"
	sandboxEndpoint = "https://sandbox.momodeveloper.mtn.com"

	tokenPath         = "/collection/token/"
	requestToPayPath  = "/collection/v1_0/requesttopay"
	balancePath       = "/collection/v1_0/account/balance"
	accountHolderPath = "/collection/v1_0/accountholder/%s/%s/active"
	apiUserPath       = "/v1_0/apiuser"
	apiKeyPath        = "/v1_0/apiuser/%s/apikey"

	defaultTimeout = 30 * time.Second
)

var _ ports.PaymentGateway = (*Gateway)(nil)

// Gateway is the single entry point for MTN MoMo operations.
// It holds no state between calls besides its configuration; every
// authenticated operation fetches its own access token.
type Gateway struct {
	cfg        domain.GatewayConfig
	httpClient ports.HTTPDoer
	logger     *zap.Logger
	newID      func() string
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client ports.HTTPDoer) Option {
	return func(g *Gateway) { g.httpClient = client }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) { g.httpClient = &http.Client{Timeout: timeout} }
}

// WithLogger sets the logger used for outbound calls.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// WithIDGenerator replaces the UUID v4 generator used for reference and user ids.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

// NewGateway creates a new MTN MoMo gateway.
func NewGateway(cfg domain.GatewayConfig, opts ...Option) *Gateway {
	if cfg.TargetEnvironment == "" {
		cfg.TargetEnvironment = domain.EnvironmentSandbox
	}
	if cfg.CallbackHost == "" {
		cfg.CallbackHost = defaultCallbackHost
	}

	g := &Gateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the display name of the gateway.
func (g *Gateway) Name() string {
	return "MTN Mobile Money"
}

// Config returns the gateway configuration.
func (g *Gateway) Config() domain.GatewayConfig {
	return g.cfg
}

// baseURL picks the sandbox or live host.
func baseURL(cfg domain.GatewayConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.TestMode() {
		return sandboxEndpoint
	}
	return liveEndpoint
}

// bearerHeaders are the headers of every token-authenticated call.
func bearerHeaders(cfg domain.GatewayConfig, token *domain.AccessToken) map[string]string {
	return map[string]string{
		"Authorization":             "Bearer " + token.Value,
		"X-Target-Environment":      string(cfg.TargetEnvironment),
		"Ocp-Apim-Subscription-Key": cfg.SubscriptionKey,
	}
}

// send performs exactly one HTTP call and reads the full response.
// Errors returned wrap domain.ErrTransport.
func (g *Gateway) send(ctx context.Context, method, url string, headers map[string]string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal payload: %v", domain.ErrTransport, err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrTransport, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("momo request failed",
			zap.String("method", method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrTransport, err)
	}

	g.logger.Debug("momo request completed",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return newEnvelope(resp.StatusCode, raw), nil
}

// localFailure turns an error raised before a response was received into a failed
// Response: 401 for token exchange failures, 500 for everything else.
func localFailure(err error) domain.Response {
	code := http.StatusInternalServerError
	if errors.Is(err, domain.ErrAuth) {
		code = http.StatusUnauthorized
	}
	return domain.Response{
		Outcome: domain.OutcomeFailed,
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}
