// Package deck runs the outline and content generation stages of the
// presentation pipeline.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOutline indicates the outline response could not be parsed.
var ErrInvalidOutline = errors.New("invalid outline")

// Outline is the slide structure the outline stage returns as JSON.
type Outline struct {
	Title  string         `json:"title"`
	Slides []OutlineSlide `json:"slides"`
}

// OutlineSlide is one planned slide: a heading and the point it must make.
type OutlineSlide struct {
	Heading    string `json:"heading"`
	KeyMessage string `json:"key_message"`
}

// ParseOutline parses the outline stage's response into a typed Outline.
//
// Models often wrap the JSON object in a fenced code block despite being told
// not to; the wrapping is stripped before unmarshaling. The raw response
// string stays the source of truth for the content stage - a parse failure
// here only loses telemetry, not the pipeline.
func ParseOutline(response string) (Outline, error) {
	raw := stripFences(response)

	var o Outline
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return Outline{}, fmt.Errorf("parse outline JSON: %v: %w", err, ErrInvalidOutline)
	}
	if len(o.Slides) == 0 {
		return Outline{}, fmt.Errorf("outline has no slides: %w", ErrInvalidOutline)
	}
	return o, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	last := len(lines) - 1
	if strings.TrimSpace(lines[last]) != "```" {
		return s
	}
	return strings.Join(lines[1:last], "\n")
}
