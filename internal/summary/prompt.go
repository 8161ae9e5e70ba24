package summary

import (
	"fmt"
	"strings"

	"github.com/glimpse-search/glimpse/internal/search"
)

// BuildPrompt constructs the summarization prompt for a query and the
// filtered result subsequence. Each result's description is embedded labeled
// by its 1-based index in the filtered order, and the model is told to cite
// by those indices, to weight earlier sources more, and to answer directly
// rather than talking about its inputs. Deterministic: same inputs, same
// prompt.
func BuildPrompt(query string, results []search.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Answer the question %q objectively and in the third person, as if you are an expert in the field. ", query)
	b.WriteString("Base your answer on the numbered sources below, preferring lower-numbered sources when they disagree. ")
	b.WriteString("Cite sources by their number in square brackets, like [1]. ")
	b.WriteString("Write the answer directly; do not mention the sources, search results, or this prompt as artifacts.\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "Source %d: %s\n", i+1, r.Description)
	}

	return b.String()
}
