package mermaid

import (
	"fmt"
	"strings"
)

// Violation is a single structural finding: a notes region that does not
// close where it must. Line numbers are 1-based, slide ordinals start at 1.
type Violation struct {
	Slide   int
	Line    int
	Message string
}

// String formats the violation the way the CLI prints it.
func (v Violation) String() string {
	return fmt.Sprintf("slide %d, line %d: %s", v.Slide, v.Line, v.Message)
}

// Report is the outcome of one validation pass. Violations are in
// line-ascending order. A nil or empty Violations slice means the document
// is structurally valid.
type Report struct {
	Violations []Violation
}

// Valid reports whether the document passed validation.
func (r Report) Valid() bool { return len(r.Violations) == 0 }

// Validation messages.
const (
	msgNotOpen     = "closing ::: without a matching open"
	msgAlreadyOpen = "notes section already open"
	msgOpenAtBreak = "notes section not closed before slide separator"
	msgOpenAtEOF   = "notes section not closed at end of document"
)

// Validate walks the document top to bottom and reports every notes region
// that is left open across a slide boundary, opened twice, or closed without
// being open. It never modifies the document, and the same input always
// yields the same report.
//
// Validation is advisory: callers decide whether to reject, repair, or log.
func Validate(content string) Report {
	var report Report

	notesOpen := false
	slide := 1

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		switch classifyLine(line) {
		case lineSeparator:
			if notesOpen {
				report.Violations = append(report.Violations, Violation{
					Slide:   slide,
					Line:    i + 1,
					Message: msgOpenAtBreak,
				})
				notesOpen = false
			}
			slide++

		case lineNotesOpen:
			if notesOpen {
				report.Violations = append(report.Violations, Violation{
					Slide:   slide,
					Line:    i + 1,
					Message: msgAlreadyOpen,
				})
			}
			// Repeated opens do not nest.
			notesOpen = true

		case lineNotesClose:
			if !notesOpen {
				report.Violations = append(report.Violations, Violation{
					Slide:   slide,
					Line:    i + 1,
					Message: msgNotOpen,
				})
			} else {
				notesOpen = false
			}
		}
	}

	if notesOpen {
		report.Violations = append(report.Violations, Violation{
			Slide:   slide,
			Line:    len(lines),
			Message: msgOpenAtEOF,
		})
	}

	return report
}
