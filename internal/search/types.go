package search

import (
	"context"
	"strings"
)

// Kind tags a normalized result with the provider section it came from.
type Kind string

const (
	KindKnowledgeGraph  Kind = "knowledge_graph"
	KindAnswerBox       Kind = "answer_box"
	KindOrganicResult   Kind = "organic_result"
	KindInlineVideo     Kind = "inline_video"
	KindTopStories      Kind = "top_stories"
	KindRelatedQuestion Kind = "related_question"
	KindRelatedSearches Kind = "related_searches"
)

// GoogleSource labels provider-native panels that carry no publisher of
// their own (answer box, related searches).
const GoogleSource = "Google"

// Result is one normalized search hit. Position is zero-based and assigned
// in emission order; the order is load-bearing downstream: it decides which
// results count as top sources and which thumbnails reach the sidebar.
type Result struct {
	Position    int    `json:"position"`
	Title       string `json:"title,omitempty"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Kind        Kind   `json:"kind"`
}

// Summarizable reports whether this result's kind is fed to the summarizer.
func (r Result) Summarizable() bool {
	switch r.Kind {
	case KindKnowledgeGraph, KindOrganicResult, KindAnswerBox:
		return true
	}
	return false
}

// Provider issues one search request and returns the normalized result list.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
}

// Query carries the caller-supplied query plus the fixed locale parameter.
type Query struct {
	Query    string
	Location string
}

func (q Query) Normalize() Query {
	return Query{
		Query:    strings.TrimSpace(q.Query),
		Location: strings.TrimSpace(q.Location),
	}
}
