// Package resend delivers run-report summaries through the Resend e-mail API.
package resend

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/moviedraft/movie-auction/internal/platform/logging"
	"github.com/moviedraft/movie-auction/internal/usecase"
)

const (
	defaultEndpoint = "https://api.resend.com/emails"
	defaultTimeout  = 10 * time.Second
)

type NotifierConfig struct {
	Endpoint string
	APIKey   string
	From     string
	To       []string
	Timeout  time.Duration
	Logger   *logging.Logger
}

// Notifier implements usecase.ReportNotifier. It is constructed only when an
// API key is configured; otherwise the noop notifier is wired instead.
type Notifier struct {
	client   *fasthttp.Client
	endpoint string
	apiKey   string
	from     string
	to       []string
	timeout  time.Duration
	logger   *logging.Logger
}

func NewNotifier(cfg NotifierConfig) (*Notifier, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if strings.TrimSpace(cfg.From) == "" || len(cfg.To) == 0 {
		return nil, fmt.Errorf("resend sender and recipients are required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Notifier{
		client:   &fasthttp.Client{},
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		from:     strings.TrimSpace(cfg.From),
		to:       cfg.To,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *Notifier) SendRunReport(ctx context.Context, report usecase.RunReport) error {
	subject := fmt.Sprintf("Movie stats update: %d ok, %d with errors, %d skipped",
		report.Successful, report.WithErrors, report.Skipped)

	body, err := sonic.Marshal(emailPayload{
		From:    n.from,
		To:      n.to,
		Subject: subject,
		HTML:    FormatReportHTML(report),
	})
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.SetBody(body)

	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return ctx.Err()
	}

	if err := n.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return fmt.Errorf("resend status=%d body=%s", status, abbreviate(resp.Body()))
	}

	n.logger.InfoContext(ctx, "run report email sent", "recipients", len(n.to), "subject", subject)
	return nil
}

// FormatReportHTML renders the run report grouped by movie status.
func FormatReportHTML(report usecase.RunReport) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("<h2>Movie stats update</h2>")
	_, _ = fmt.Fprintf(buf, "<p>Total: %d &middot; Successful: %d &middot; With errors: %d &middot; Skipped: %d</p>",
		report.Total, report.Successful, report.WithErrors, report.Skipped)

	sections := []struct {
		heading  string
		statuses []usecase.ReconcileStatus
	}{
		{heading: "Updated", statuses: []usecase.ReconcileStatus{usecase.ReconcileSuccess}},
		{heading: "With errors", statuses: []usecase.ReconcileStatus{usecase.ReconcilePartial, usecase.ReconcileFailed}},
		{heading: "Skipped (not released)", statuses: []usecase.ReconcileStatus{usecase.ReconcileSkipped}},
	}

	for _, section := range sections {
		var movies []usecase.MovieReport
		for _, m := range report.Movies {
			for _, status := range section.statuses {
				if m.Status == status {
					movies = append(movies, m)
					break
				}
			}
		}
		if len(movies) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(buf, "<h3>%s</h3><ul>", section.heading)
		for _, m := range movies {
			_, _ = fmt.Fprintf(buf, "<li><strong>%s</strong>", htmlEscape(m.Title))
			for _, c := range m.Changes {
				_, _ = fmt.Fprintf(buf, " %s: %v &rarr; %v;", htmlEscape(c.Field), c.Old, c.New)
			}
			for _, e := range m.Errors {
				_, _ = fmt.Fprintf(buf, " <em>%s</em>;", htmlEscape(e))
			}
			_, _ = buf.WriteString("</li>")
		}
		_, _ = buf.WriteString("</ul>")
	}

	return buf.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

func abbreviate(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
