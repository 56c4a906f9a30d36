package deck_test

import (
	"errors"
	"testing"

	"github.com/alnah/go-deckgen/internal/deck"
)

// ---------------------------------------------------------------------------
// TestParseOutline - Outline JSON parsing
// ---------------------------------------------------------------------------

func TestParseOutline(t *testing.T) {
	t.Parallel()

	const outlineJSON = `{
  "title": "Go Concurrency",
  "slides": [
    {"heading": "Goroutines", "key_message": "cheap concurrent units"},
    {"heading": "Channels", "key_message": "communicate, don't share"}
  ]
}`

	t.Run("plain JSON", func(t *testing.T) {
		t.Parallel()

		o, err := deck.ParseOutline(outlineJSON)
		if err != nil {
			t.Fatalf("ParseOutline() error: %v", err)
		}
		if o.Title != "Go Concurrency" {
			t.Errorf("Title = %q, want %q", o.Title, "Go Concurrency")
		}
		if len(o.Slides) != 2 {
			t.Fatalf("got %d slides, want 2", len(o.Slides))
		}
		if o.Slides[0].Heading != "Goroutines" || o.Slides[0].KeyMessage != "cheap concurrent units" {
			t.Errorf("slide[0] = %+v", o.Slides[0])
		}
	})

	t.Run("JSON wrapped in code fence", func(t *testing.T) {
		t.Parallel()

		o, err := deck.ParseOutline("```json\n" + outlineJSON + "\n```")
		if err != nil {
			t.Fatalf("ParseOutline() error: %v", err)
		}
		if len(o.Slides) != 2 {
			t.Errorf("got %d slides, want 2", len(o.Slides))
		}
	})

	t.Run("fence without language tag", func(t *testing.T) {
		t.Parallel()

		o, err := deck.ParseOutline("```\n" + outlineJSON + "\n```\n")
		if err != nil {
			t.Fatalf("ParseOutline() error: %v", err)
		}
		if o.Title != "Go Concurrency" {
			t.Errorf("Title = %q, want %q", o.Title, "Go Concurrency")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := deck.ParseOutline("here is your outline: ...")
		if !errors.Is(err, deck.ErrInvalidOutline) {
			t.Errorf("error = %v, want ErrInvalidOutline", err)
		}
	})

	t.Run("valid JSON without slides", func(t *testing.T) {
		t.Parallel()

		_, err := deck.ParseOutline(`{"title": "Empty", "slides": []}`)
		if !errors.Is(err, deck.ErrInvalidOutline) {
			t.Errorf("error = %v, want ErrInvalidOutline", err)
		}
	})

	t.Run("unclosed fence left alone and rejected", func(t *testing.T) {
		t.Parallel()

		_, err := deck.ParseOutline("```json\n{\"title\": \"x\"}")
		if !errors.Is(err, deck.ErrInvalidOutline) {
			t.Errorf("error = %v, want ErrInvalidOutline", err)
		}
	})
}
