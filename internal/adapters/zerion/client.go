package zerion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/folio-service/folio_service/pkg/logger"
	"github.com/folio-service/folio_service/pkg/metrics"
	"github.com/folio-service/folio_service/pkg/retry"
)

const (
	defaultBaseURL  = "https://api.zerion.io"
	defaultCurrency = "usd"
	defaultTimeout  = 10 * time.Second
	maxErrorBody    = 512
)

// Config represents Zerion API configuration
type Config struct {
	APIKey     string
	BaseURL    string
	Currency   string
	Timeout    time.Duration
	MaxRetries int
}

// Client represents a Zerion API client
type Client struct {
	config         Config
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *logger.Logger
}

// NewClient creates a new Zerion API client
func NewClient(config Config, log *logger.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Currency == "" {
		config.Currency = defaultCurrency
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}

	cbSettings := gobreaker.Settings{
		Name:        "ZerionAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("Zerion circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Client{
		config:         config,
		httpClient:     &http.Client{Timeout: config.Timeout},
		circuitBreaker: gobreaker.NewCircuitBreaker(cbSettings),
		logger:         log,
	}
}

// GetPositions retrieves the simple wallet positions for an address,
// sorted by value with trash positions filtered upstream.
func (c *Client) GetPositions(ctx context.Context, address string) (*PositionsResponse, error) {
	endpoint := fmt.Sprintf(
		"/v1/wallets/%s/positions/?filter[positions]=only_simple&currency=%s&filter[trash]=only_non_trash&sort=value",
		url.PathEscape(address), c.config.Currency)

	var resp PositionsResponse
	if err := c.doRequestWithRetry(ctx, "positions", endpoint, &resp); err != nil {
		return nil, fmt.Errorf("get positions failed: %w", err)
	}
	if err := validatePositionsResponse("positions", &resp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("positions", "invalid").Inc()
		return nil, err
	}
	return &resp, nil
}

// GetPortfolio retrieves the aggregate portfolio totals for an address
func (c *Client) GetPortfolio(ctx context.Context, address string) (*PortfolioResponse, error) {
	endpoint := fmt.Sprintf(
		"/v1/wallets/%s/portfolio?filter[positions]=only_simple&currency=%s",
		url.PathEscape(address), c.config.Currency)

	var resp PortfolioResponse
	if err := c.doRequestWithRetry(ctx, "portfolio", endpoint, &resp); err != nil {
		return nil, fmt.Errorf("get portfolio failed: %w", err)
	}
	if err := validatePortfolioResponse("portfolio", &resp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("portfolio", "invalid").Inc()
		return nil, err
	}
	return &resp, nil
}

// GetPnL retrieves the realized and unrealized gain figures for an address
func (c *Client) GetPnL(ctx context.Context, address string) (*PnLResponse, error) {
	endpoint := fmt.Sprintf("/v1/wallets/%s/pnl/?currency=%s",
		url.PathEscape(address), c.config.Currency)

	var resp PnLResponse
	if err := c.doRequestWithRetry(ctx, "pnl", endpoint, &resp); err != nil {
		return nil, fmt.Errorf("get pnl failed: %w", err)
	}
	if err := validatePnLResponse("pnl", &resp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("pnl", "invalid").Inc()
		return nil, err
	}
	return &resp, nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return c.config
}

// doRequest performs a single GET through the circuit breaker
func (c *Client) doRequest(ctx context.Context, name, endpoint string, response interface{}) error {
	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, c.doRequestInternal(ctx, name, endpoint, response)
	})
	return err
}

func (c *Client) doRequestInternal(ctx context.Context, name, endpoint string, response interface{}) error {
	fullURL := c.config.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authorizationHeader())

	c.logger.Debug("Sending Zerion API request", "endpoint", name, "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Received Zerion API response",
		"endpoint", name,
		"status_code", resp.StatusCode,
		"body_size", len(respBody))

	if resp.StatusCode >= 400 {
		metrics.UpstreamRequestsTotal.WithLabelValues(name, "error").Inc()
		body := string(respBody)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &APIError{StatusCode: resp.StatusCode, Endpoint: name, Body: body}
	}

	if len(respBody) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("empty response from %s", fullURL)
	}

	if err := json.Unmarshal(respBody, response); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(name, "success").Inc()
	return nil
}

// doRequestWithRetry performs a GET with exponential backoff retry
func (c *Client) doRequestWithRetry(ctx context.Context, name, endpoint string, response interface{}) error {
	retryConfig := retry.RetryConfig{
		MaxAttempts: c.config.MaxRetries,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2.0,
	}

	retryableFunc := func() error {
		return c.doRequest(ctx, name, endpoint, response)
	}

	isRetryable := func(err error) bool {
		if err == nil {
			return false
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.IsRetryable()
		}
		// Network-level failures are worth another attempt
		return true
	}

	return retry.WithExponentialBackoff(ctx, retryConfig, retryableFunc, isRetryable)
}

func (c *Client) authorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.config.APIKey+":"))
}
