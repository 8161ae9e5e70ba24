package search

import "github.com/tidwall/gjson"

// Normalize flattens a SerpAPI response document into one uniform, ordered
// result list. Every section is independently optional and every field access
// degrades to an empty value, so a missing or malformed section never aborts
// the rest of the document.
//
// Emission order is fixed: knowledge graph, answer box, organic results,
// inline videos, top stories, related questions, related searches. Positions
// are sequential and gapless from zero.
func Normalize(body []byte) []Result {
	doc := gjson.ParseBytes(body)
	out := make([]Result, 0, 16)

	emit := func(r Result) {
		r.Position = len(out)
		out = append(out, r)
	}

	if kg := doc.Get("knowledge_graph"); kg.IsObject() {
		emit(Result{
			Kind:        KindKnowledgeGraph,
			Title:       kg.Get("title").String(),
			Link:        kg.Get("website").String(),
			Description: kg.Get("description").String(),
			Source:      kg.Get("source.name").String(),
			Thumbnail:   kg.Get("thumbnail").String(),
		})
	}

	// The answer box carries its text in "answer", not "snippet".
	if ab := doc.Get("answer_box"); ab.IsObject() && len(ab.Map()) > 0 {
		emit(Result{
			Kind:        KindAnswerBox,
			Title:       ab.Get("title").String(),
			Link:        ab.Get("link").String(),
			Description: ab.Get("answer").String(),
			Source:      GoogleSource,
			Thumbnail:   ab.Get("thumbnail").String(),
		})
	}

	for _, row := range listSection(doc, "organic_results") {
		emit(Result{
			Kind:        KindOrganicResult,
			Title:       row.Get("title").String(),
			Link:        row.Get("link").String(),
			Description: row.Get("snippet").String(),
			Source:      row.Get("source").String(),
		})
	}

	for _, row := range listSection(doc, "inline_videos") {
		emit(Result{
			Kind:      KindInlineVideo,
			Title:     row.Get("title").String(),
			Link:      row.Get("link").String(),
			Source:    row.Get("channel").String(),
			Thumbnail: row.Get("thumbnail").String(),
		})
	}

	// Top stories have no snippet; the title doubles as the description.
	for _, row := range listSection(doc, "top_stories") {
		title := row.Get("title").String()
		emit(Result{
			Kind:        KindTopStories,
			Title:       title,
			Link:        row.Get("link").String(),
			Description: title,
			Source:      row.Get("source").String(),
			Thumbnail:   row.Get("thumbnail").String(),
		})
	}

	for _, row := range listSection(doc, "related_questions") {
		emit(Result{
			Kind:        KindRelatedQuestion,
			Title:       row.Get("question").String(),
			Link:        row.Get("link").String(),
			Description: row.Get("snippet").String(),
			Source:      row.Get("displayed_link").String(),
		})
	}

	for _, row := range listSection(doc, "related_searches") {
		query := row.Get("query").String()
		emit(Result{
			Kind:        KindRelatedSearches,
			Title:       query,
			Link:        row.Get("link").String(),
			Description: query,
			Source:      GoogleSource,
		})
	}

	return out
}

// listSection returns a list section's entries. A section that is not an
// array, and any entry that is not an object, counts as absent; gjson's
// Array() would otherwise wrap a scalar section into a one-element list and
// emit a phantom result that consumes a position.
func listSection(doc gjson.Result, path string) []gjson.Result {
	sec := doc.Get(path)
	if !sec.IsArray() {
		return nil
	}
	rows := sec.Array()
	out := make([]gjson.Result, 0, len(rows))
	for _, row := range rows {
		if row.IsObject() {
			out = append(out, row)
		}
	}
	return out
}
