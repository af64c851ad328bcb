package chatbot

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/beyondbinary/buddeee/core"
)

// modelOutput is the structure the generation model is instructed to emit.
// Only the type tag, message and suggestions are trusted; event content is
// always replaced with retrieved data downstream.
type modelOutput struct {
	Type        string            `json:"type"`
	Message     string            `json:"message"`
	Suggestions []core.Suggestion `json:"suggestions"`
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	fenceMarkerPattern = regexp.MustCompile("```json\\s*|\\s*```")
)

// parseModelResponse extracts a structured response from raw model output.
// The model is instructed to emit pure JSON but does not always comply, so
// three strategies are tried in order, first success wins:
//
//  1. Parse the text directly as JSON.
//  2. Extract and parse the contents of a markdown code fence.
//  3. Extract and parse the substring from the first '{' to the last '}'.
//
// Returns nil if every strategy fails. Parsing is structural only; the text
// is never evaluated.
func parseModelResponse(raw string) *modelOutput {
	if out := tryUnmarshal(raw); out != nil {
		return out
	}

	if m := fencedBlockPattern.FindStringSubmatch(raw); m != nil {
		if out := tryUnmarshal(strings.TrimSpace(m[1])); out != nil {
			return out
		}
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		if out := tryUnmarshal(raw[first : last+1]); out != nil {
			return out
		}
	}

	return nil
}

func tryUnmarshal(s string) *modelOutput {
	var out modelOutput
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return &out
}

// stripCodeFences removes leftover markdown fence markers from model output
// that failed structured parsing, so the fallback text reply reads cleanly.
func stripCodeFences(raw string) string {
	return strings.TrimSpace(fenceMarkerPattern.ReplaceAllString(raw, ""))
}
