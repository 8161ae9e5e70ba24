package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glimpse-search/glimpse/internal/search"
	"github.com/glimpse-search/glimpse/internal/summary"
)

// TopSourceCount is how many leading results are surfaced as sources.
const TopSourceCount = 5

// Summarizer is the single-call summarization dependency.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Outcome is one finished pipeline run: the full normalized result list plus
// a summary that may still be resolving.
type Outcome struct {
	Query         string
	Results       []search.Result
	TopSources    []search.Result
	RelatedImages []string
	Summary       *summary.Future
}

// Options bound the pipeline's outbound work.
type Options struct {
	// SummaryTimeout caps the deferred summarization call. Zero means a
	// conservative default.
	SummaryTimeout time.Duration
}

// Pipeline composes normalizer → filter → prompt → summarizer per query.
type Pipeline struct {
	provider       search.Provider
	summarizer     Summarizer
	summaryTimeout time.Duration
	log            *zap.Logger
}

func New(provider search.Provider, summarizer Summarizer, opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.SummaryTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Pipeline{
		provider:       provider,
		summarizer:     summarizer,
		summaryTimeout: timeout,
		log:            log.Named("pipeline"),
	}
}

// Run executes the pipeline for one query. An empty query short-circuits to
// an empty, already-resolved outcome without touching either provider. A
// search failure fails the whole run; a summarization failure only fails the
// deferred summary.
func (p *Pipeline) Run(ctx context.Context, query string) (*Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Outcome{
			Query:         query,
			Results:       []search.Result{},
			TopSources:    []search.Result{},
			RelatedImages: []string{},
			Summary:       summary.Resolved(""),
		}, nil
	}

	started := time.Now()
	results, err := p.provider.Search(ctx, query)
	if err != nil {
		p.log.Warn("search failed",
			zap.String("query", query),
			zap.String("errorType", search.ClassifyError(err)),
			zap.Error(err))
		return nil, err
	}
	p.log.Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(started)))

	filtered := FilterSummarizable(results)
	prompt := summary.BuildPrompt(query, filtered)

	fut := summary.NewFuture()
	// Detach from the request context: the page response returns before the
	// summary resolves and must not cancel the in-flight model call.
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.summaryTimeout)
	go func() {
		defer cancel()
		text, err := p.summarizer.Summarize(bgCtx, prompt)
		if err != nil {
			p.log.Warn("summarization failed",
				zap.String("query", query),
				zap.Error(err))
			fut.Fail(err)
			return
		}
		fut.Resolve(text)
	}()

	return &Outcome{
		Query:         query,
		Results:       results,
		TopSources:    TopSources(results),
		RelatedImages: RelatedImages(results),
		Summary:       fut,
	}, nil
}

// FilterSummarizable keeps the knowledge-graph, organic and answer-box
// entries, preserving their relative order.
func FilterSummarizable(results []search.Result) []search.Result {
	out := make([]search.Result, 0, len(results))
	for _, r := range results {
		if r.Summarizable() {
			out = append(out, r)
		}
	}
	return out
}

// TopSources takes the first entries of the full sequence in emission order,
// regardless of the summarization filter.
func TopSources(results []search.Result) []search.Result {
	n := TopSourceCount
	if len(results) < n {
		n = len(results)
	}
	out := make([]search.Result, n)
	copy(out, results[:n])
	return out
}

// RelatedImages collects sidebar thumbnails: every answer-box or top-stories
// entry carrying one, in original order.
func RelatedImages(results []search.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		if r.Thumbnail == "" {
			continue
		}
		if r.Kind == search.KindAnswerBox || r.Kind == search.KindTopStories {
			out = append(out, r.Thumbnail)
		}
	}
	return out
}
