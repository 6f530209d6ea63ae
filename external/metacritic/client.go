// Package metacritic fetches aggregate critic scores from movie pages.
package metacritic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
	"github.com/moviedraft/movie-auction/internal/platform/resilience"
	"github.com/moviedraft/movie-auction/internal/usecase"
)

const (
	defaultBaseURL     = "https://www.metacritic.com"
	maxResponseBytes   = 4 << 20
	defaultHTTPTimeout = 15 * time.Second
	userAgent          = "Mozilla/5.0 (compatible; movie-auction/1.0)"
)

var errMetacriticTransient = crerr.New("metacritic transient failure")

// ratingRegex matches the JSON-LD metascore embedded in a movie page.
var ratingRegex = regexp.MustCompile(`"ratingValue"\s*:\s*"?(\d{1,3})"?`)
var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.CriticScoreProvider.
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

// FetchCriticScore loads the movie page and extracts the metascore. A page
// that resolves but carries no score (404 included) is a confirmed absence.
func (c *Client) FetchCriticScore(ctx context.Context, title string) (usecase.CriticScoreResult, error) {
	slug := Slug(title)
	if slug == "" {
		return usecase.CriticScoreResult{}, fmt.Errorf("title is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "metacritic circuit breaker rejected request", "state", c.breaker.State())
			return usecase.CriticScoreResult{}, fmt.Errorf("%w: critic score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + "/movie/" + slug + "/"
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		res, reqErr := c.fetchPage(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errMetacriticTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return res, reqErr
	})
	if err != nil {
		return usecase.CriticScoreResult{}, err
	}

	res, ok := out.(usecase.CriticScoreResult)
	if !ok {
		return usecase.CriticScoreResult{}, fmt.Errorf("unexpected response payload type %T", out)
	}
	return res, nil
}

// Slug converts a title to the path segment metacritic uses for its pages.
func Slug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (c *Client) fetchPage(ctx context.Context, fullURL string) (usecase.CriticScoreResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return usecase.CriticScoreResult{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("user-agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errMetacriticTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errMetacriticTransient, readErr)
			case resp.StatusCode == http.StatusNotFound:
				return usecase.CriticScoreResult{Found: false}, nil
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return extractScore(raw), nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errMetacriticTransient, resp.StatusCode)
			default:
				return usecase.CriticScoreResult{}, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return usecase.CriticScoreResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "metacritic request failed", "url", fullURL, "error", lastErr)
	return usecase.CriticScoreResult{}, lastErr
}

func extractScore(page []byte) usecase.CriticScoreResult {
	m := ratingRegex.FindSubmatch(page)
	if len(m) != 2 {
		return usecase.CriticScoreResult{Found: false}
	}
	score, err := strconv.Atoi(string(m[1]))
	if err != nil || score < 0 || score > 100 {
		return usecase.CriticScoreResult{Found: false}
	}
	return usecase.CriticScoreResult{Score: score, Found: true}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
