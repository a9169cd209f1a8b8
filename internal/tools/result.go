package tools

import (
	"encoding/json"
	"strings"
)

// ContentTypeText is the only content type tools produce.
const ContentTypeText = "text"

// Content is one block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the envelope returned for every tool call.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text returns the concatenated text content.
func (r Result) Text() string {
	var b strings.Builder
	for _, c := range r.Content {
		b.WriteString(c.Text)
	}
	return b.String()
}

// report wraps an informational outcome.
func report(text string) Result {
	return Result{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// fault wraps a failed call.
func fault(err error) Result {
	return Result{
		Content: []Content{{Type: ContentTypeText, Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// Descriptor describes a tool for tools/list.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}
