package resend

import (
	"strings"
	"testing"

	"github.com/moviedraft/movie-auction/internal/usecase"
)

func TestNewNotifierRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewNotifier(NotifierConfig{From: "a@b.c", To: []string{"d@e.f"}}); err == nil {
		t.Fatalf("NewNotifier() accepted missing api key")
	}
	if _, err := NewNotifier(NotifierConfig{APIKey: "k"}); err == nil {
		t.Fatalf("NewNotifier() accepted missing sender/recipients")
	}
	if _, err := NewNotifier(NotifierConfig{APIKey: "k", From: "a@b.c", To: []string{"d@e.f"}}); err != nil {
		t.Fatalf("NewNotifier(): %v", err)
	}
}

func TestFormatReportHTMLGroupsByStatus(t *testing.T) {
	t.Parallel()

	report := usecase.RunReport{
		Total: 3, Successful: 1, WithErrors: 1, Skipped: 1,
		Movies: []usecase.MovieReport{
			{
				Title:  "Atlas",
				Status: usecase.ReconcileSuccess,
				Changes: []usecase.FieldChange{
					{Field: "criticScore", Old: 80, New: 86},
				},
			},
			{
				Title:  "Borealis",
				Status: usecase.ReconcilePartial,
				Errors: []string{"critic score: scrape timeout"},
			},
			{Title: "Comet", Status: usecase.ReconcileSkipped},
		},
	}

	html := FormatReportHTML(report)

	for _, want := range []string{
		"Total: 3",
		"<h3>Updated</h3>",
		"<h3>With errors</h3>",
		"<h3>Skipped (not released)</h3>",
		"<strong>Atlas</strong>",
		"criticScore: 80 &rarr; 86",
		"<em>critic score: scrape timeout</em>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("FormatReportHTML() missing %q in:\n%s", want, html)
		}
	}
}

func TestFormatReportHTMLEscapesContent(t *testing.T) {
	t.Parallel()

	report := usecase.RunReport{
		Total: 1, Successful: 1,
		Movies: []usecase.MovieReport{
			{Title: "Fast & <Furious>", Status: usecase.ReconcileSuccess},
		},
	}

	html := FormatReportHTML(report)
	if !strings.Contains(html, "Fast &amp; &lt;Furious&gt;") {
		t.Fatalf("FormatReportHTML() did not escape title: %s", html)
	}
}
