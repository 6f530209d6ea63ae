// Package omdb fetches award data and reference links from the OMDb API.
package omdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
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
	defaultBaseURL     = "https://www.omdbapi.com"
	maxResponseBytes   = 1 << 20
	defaultHTTPTimeout = 15 * time.Second
)

var errOMDBTransient = crerr.New("omdb transient failure")

var (
	nominatedRegex          = regexp.MustCompile(`(?i)nominated for (\d+) oscars?`)
	wonWithNominationsRegex = regexp.MustCompile(`(?i)won (\d+) oscars?\.\s*(\d+) nominations`)
	wonRegex                = regexp.MustCompile(`(?i)won (\d+) oscars?`)
	apiKeyRegex             = regexp.MustCompile(`apikey=[^&\s"']+`)
	slugRegex               = regexp.MustCompile(`[^a-z0-9]+`)
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.NominationsProvider and usecase.MovieLinksProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
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
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type titleEnvelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Awards   string `json:"Awards"`
	IMDBID   string `json:"imdbID"`
}

// FetchNominations resolves the Oscar nomination count from the title's
// awards summary. An unknown title is a confirmed zero, not an error.
func (c *Client) FetchNominations(ctx context.Context, title string, year int) (usecase.NominationsResult, error) {
	env, err := c.lookupTitle(ctx, title, year)
	if err != nil {
		return usecase.NominationsResult{}, err
	}
	if !strings.EqualFold(env.Response, "True") {
		return usecase.NominationsResult{Found: false}, nil
	}

	return usecase.NominationsResult{Count: ParseOscarNominations(env.Awards), Found: true}, nil
}

// FetchLinks derives reference URLs for a movie. Letterboxd has no lookup
// API, so its URL is built from a slug of the title.
func (c *Client) FetchLinks(ctx context.Context, title string, year int) (usecase.MovieLinks, error) {
	env, err := c.lookupTitle(ctx, title, year)
	if err != nil {
		return usecase.MovieLinks{}, err
	}
	if !strings.EqualFold(env.Response, "True") {
		return usecase.MovieLinks{LetterboxdURL: letterboxdURL(title)}, nil
	}

	links := usecase.MovieLinks{LetterboxdURL: letterboxdURL(title)}
	if env.IMDBID != "" {
		links.IMDBURL = "https://www.imdb.com/title/" + env.IMDBID + "/"
	}
	return links, nil
}

// ParseOscarNominations extracts the Oscar nomination count from an OMDb
// awards summary such as "Nominated for 3 Oscars. 12 wins & 21 nominations
// total". "Won X Oscars. N nominations" reports N, the nomination total the
// wins came out of. A win without an explicit nomination figure counts as
// that many nominations, since every win was a nomination first.
func ParseOscarNominations(awards string) int {
	if m := nominatedRegex.FindStringSubmatch(awards); len(m) == 2 {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	if m := wonWithNominationsRegex.FindStringSubmatch(awards); len(m) == 3 {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return n
		}
	}
	if m := wonRegex.FindStringSubmatch(awards); len(m) == 2 {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 0
}

func letterboxdURL(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return ""
	}
	return "https://letterboxd.com/film/" + slug + "/"
}

func (c *Client) lookupTitle(ctx context.Context, title string, year int) (titleEnvelope, error) {
	if strings.TrimSpace(title) == "" {
		return titleEnvelope{}, fmt.Errorf("title is required")
	}

	values := url.Values{}
	values.Set("t", strings.TrimSpace(title))
	if year > 0 {
		values.Set("y", strconv.Itoa(year))
	}
	values.Set("apikey", c.apiKey)

	fullURL := c.baseURL + "/?" + values.Encode()

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "omdb circuit breaker rejected request", "state", c.breaker.State())
			return titleEnvelope{}, fmt.Errorf("%w: award data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errOMDBTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return titleEnvelope{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return titleEnvelope{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var env titleEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return titleEnvelope{}, fmt.Errorf("decode omdb payload: %w", err)
	}
	return env, nil
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
			lastErr = fmt.Errorf("%w: send request: %s", errOMDBTransient, redactAPIKey(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errOMDBTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errOMDBTransient, resp.StatusCode)
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
	c.logger.WarnContext(ctx, "omdb request failed", "url", redactAPIKey(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func redactAPIKey(text string) string {
	return apiKeyRegex.ReplaceAllString(text, "apikey=REDACTED")
}
