// Package sop renders standard operating procedure documents, which are
// stored as markdown.
package sop

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/venapictures/studio/internal/entity"
)

// Raw HTML in the source is escaped because WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.TaskList),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Rendered is an SOP with its content converted to HTML.
type Rendered struct {
	entity.SOP
	HTML string `json:"html"`
}

// RenderHTML converts markdown to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// Render attaches the HTML form of the document's content.
func Render(doc entity.SOP) (Rendered, error) {
	html, err := RenderHTML(doc.Content)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{SOP: doc, HTML: html}, nil
}

// Categories returns the distinct categories of docs in sorted order.
func Categories(docs []entity.SOP) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, d := range docs {
		if d.Category == "" || seen[d.Category] {
			continue
		}
		seen[d.Category] = true
		out = append(out, d.Category)
	}
	sort.Strings(out)
	return out
}
