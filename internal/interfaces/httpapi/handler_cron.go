package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/moviedraft/movie-auction/internal/usecase"
)

const maxCronBodyBytes = 64 * 1024

type cronRunResponse struct {
	Success   bool              `json:"success"`
	Timestamp string            `json:"timestamp"`
	Results   usecase.RunReport `json:"results"`
}

type updateMovieRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

func (h *Handler) UpdateAllMovies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateAllMovies")
	defer span.End()

	report, err := h.batchService.RunAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch update failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch update finished",
		"total", report.Total,
		"successful", report.Successful,
		"with_errors", report.WithErrors,
		"skipped", report.Skipped,
	)

	writeBare(ctx, w, http.StatusOK, cronRunResponse{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   report,
	})
}

func (h *Handler) UpdateMovieByTitle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMovieByTitle")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCronBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req updateMovieRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	report, err := h.batchService.RunOne(ctx, req.Title)
	if err != nil {
		h.logger.WarnContext(ctx, "single movie update failed", "title", req.Title, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBare(ctx, w, http.StatusOK, cronRunResponse{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   report,
	})
}
