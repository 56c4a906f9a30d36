// Package refdoc loads the optional reference document and extracts a
// heading outline from it for operator feedback.
package refdoc

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNotFound indicates the reference file does not exist.
var ErrNotFound = errors.New("reference file not found")

// Load reads a reference markdown file as a whole.
func Load(path string) (string, error) {
	// #nosec G304 -- path is user-provided by design
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read reference file: %w", err)
	}
	return string(data), nil
}

// Heading is one section heading of the reference document.
type Heading struct {
	Level int
	Text  string
}

// Outline extracts the heading structure of a markdown document.
// Returns nil for content without headings.
func Outline(content string) []Heading {
	source := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, Heading{
				Level: h.Level,
				Text:  headingText(h, source),
			})
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// headingText concatenates the text segments of a heading node.
func headingText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(sb.String())
}

// WordCount counts whitespace-separated words, for progress output.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
