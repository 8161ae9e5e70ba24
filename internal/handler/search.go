package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/glimpse-search/glimpse/internal/pipeline"
	"github.com/glimpse-search/glimpse/internal/search"
	"github.com/glimpse-search/glimpse/internal/summary"
)

const maxLongPollWait = 60 * time.Second

// Runner executes the search-and-summarize pipeline for one query.
type Runner interface {
	Run(ctx context.Context, query string) (*pipeline.Outcome, error)
}

type SearchHandler struct {
	runner    Runner
	summaries *SummaryRegistry
	log       *zap.Logger
}

func NewSearchHandler(runner Runner, summaries *SummaryRegistry, log *zap.Logger) *SearchHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchHandler{runner: runner, summaries: summaries, log: log.Named("handler")}
}

type summaryState struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

type searchResponse struct {
	Query         string          `json:"query"`
	Results       []search.Result `json:"results"`
	TopSources    []search.Result `json:"topSources"`
	RelatedImages []string        `json:"relatedImages"`
	Summary       summaryState    `json:"summary"`
}

// Search handles the initial page query: the result list responds
// immediately and the summary comes back as a pending handle for the client
// to poll.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	outcome, err := h.runner.Run(r.Context(), query)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	writeData(w, http.StatusOK, searchResponse{
		Query:         outcome.Query,
		Results:       outcome.Results,
		TopSources:    outcome.TopSources,
		RelatedImages: outcome.RelatedImages,
		Summary:       h.deferredState(outcome.Summary),
	})
}

type followupRequest struct {
	Query string `json:"query"`
}

// Followup handles follow-up submissions. Unlike the initial query, the
// response waits for the summary so the client gets a complete answer in one
// round trip.
func (h *SearchHandler) Followup(w http.ResponseWriter, r *http.Request) {
	var req followupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.runner.Run(r.Context(), req.Query)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	status, text, waitErr := outcome.Summary.Wait(r.Context())
	state := summaryState{Status: string(status), Summary: text}
	if status == summary.StatusPending {
		writeError(w, http.StatusGatewayTimeout, "summary did not resolve in time: "+waitErr.Error())
		return
	}
	if status == summary.StatusFailed {
		state.Error = waitErr.Error()
	}

	writeData(w, http.StatusOK, searchResponse{
		Query:         outcome.Query,
		Results:       outcome.Results,
		TopSources:    outcome.TopSources,
		RelatedImages: outcome.RelatedImages,
		Summary:       state,
	})
}

// GetSummary polls a deferred summary handle. An optional wait parameter (in
// seconds) long-polls until resolution or the deadline, whichever is first.
func (h *SearchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fut, ok := h.summaries.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown or expired summary id")
		return
	}

	status, text, err := fut.Poll()
	if status == summary.StatusPending {
		if wait := parseWait(r.URL.Query().Get("wait")); wait > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), wait)
			defer cancel()
			status, text, err = fut.Wait(ctx)
		}
	}

	state := summaryState{ID: id, Status: string(status)}
	switch status {
	case summary.StatusComplete:
		state.Summary = text
	case summary.StatusFailed:
		state.Error = err.Error()
	case summary.StatusPending:
		// still resolving; the client polls again
	}
	writeData(w, http.StatusOK, state)
}

func (h *SearchHandler) deferredState(fut *summary.Future) summaryState {
	status, text, err := fut.Poll()
	switch status {
	case summary.StatusComplete:
		return summaryState{Status: string(status), Summary: text}
	case summary.StatusFailed:
		return summaryState{Status: string(status), Error: err.Error()}
	default:
		return summaryState{ID: h.summaries.Put(fut), Status: string(status)}
	}
}

func parseWait(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0
	}
	wait := time.Duration(secs) * time.Second
	if wait > maxLongPollWait {
		wait = maxLongPollWait
	}
	return wait
}
