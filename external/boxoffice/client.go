// Package boxoffice fetches gross figures from the box-office data service.
package boxoffice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
	"github.com/moviedraft/movie-auction/internal/platform/resilience"
	"github.com/moviedraft/movie-auction/internal/usecase"
)

const (
	defaultBaseURL     = "https://api.boxofficedata.dev"
	maxResponseBytes   = 1 << 20
	defaultHTTPTimeout = 15 * time.Second
)

var errBoxOfficeTransient = crerr.New("box office transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.BoxOfficeProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type searchEnvelope struct {
	Results []struct {
		Title         string `json:"title"`
		Year          int    `json:"year"`
		Domestic      int64  `json:"domestic"`
		International int64  `json:"international"`
	} `json:"results"`
}

// FetchBoxOffice returns the grosses for the best title match. An empty
// result set is a confirmed "no reported gross", not an error.
func (c *Client) FetchBoxOffice(ctx context.Context, title string, year int) (usecase.BoxOfficeResult, error) {
	if strings.TrimSpace(title) == "" {
		return usecase.BoxOfficeResult{}, fmt.Errorf("title is required")
	}

	values := url.Values{}
	values.Set("title", strings.TrimSpace(title))
	if year > 0 {
		values.Set("year", strconv.Itoa(year))
	}
	fullURL := c.baseURL + "/v1/titles?" + values.Encode()

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "box office circuit breaker rejected request", "state", c.breaker.State())
			return usecase.BoxOfficeResult{}, fmt.Errorf("%w: box office provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errBoxOfficeTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return usecase.BoxOfficeResult{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return usecase.BoxOfficeResult{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var env searchEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return usecase.BoxOfficeResult{}, fmt.Errorf("decode box office payload: %w", err)
	}
	if len(env.Results) == 0 {
		return usecase.BoxOfficeResult{Found: false}, nil
	}

	best := env.Results[0]
	if best.Domestic < 0 || best.International < 0 {
		return usecase.BoxOfficeResult{}, fmt.Errorf("provider returned negative gross for %q", title)
	}
	return usecase.BoxOfficeResult{
		Domestic:      best.Domestic,
		International: best.International,
		Found:         true,
	}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errBoxOfficeTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errBoxOfficeTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errBoxOfficeTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "box office request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
