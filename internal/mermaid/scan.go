// Package mermaid repairs and validates LLM-produced markdown containing
// embedded mermaid code blocks and speaker-note sections.
//
// Generators routinely emit malformed fence syntax: duplicated backticks on the
// opening line, several closing fences in a row, stray closers far from any
// block. Normalize collapses each diagram block into a single well-formed
// open/close pair, and Validate checks that notes regions close before slide
// boundaries. Both are total: any input degrades to partially-cleaned output or
// to a report with findings, never to an error.
package mermaid

import "strings"

// Document tokens. Slide content follows pandoc conventions: fenced code
// blocks, `---` slide separators, and `::: notes` speaker-note divs.
const (
	fenceMarker    = "```"
	diagramTag     = "mermaid"
	notesOpenToken = "::: notes"
	notesCloseLine = ":::"
	separatorLine  = "---"
)

// lineKind classifies a single document line.
type lineKind int

const (
	linePlain lineKind = iota
	lineFenceOpen     // fence marker + "mermaid" tag, possibly with duplicated marker characters
	lineFenceBare     // fence marker alone
	lineFencePrefixed // fence marker followed by anything else (e.g. ```go, ```{.haskell})
	lineNotesOpen
	lineNotesClose
	lineSeparator
)

// classifyLine determines the kind of a line from its trimmed form.
func classifyLine(line string) lineKind {
	s := strings.TrimSpace(line)
	switch {
	case s == separatorLine:
		return lineSeparator
	case s == notesCloseLine:
		return lineNotesClose
	case strings.HasPrefix(s, notesOpenToken):
		return lineNotesOpen
	case !strings.HasPrefix(s, fenceMarker):
		return linePlain
	}

	// Fence territory: count the leading marker run.
	run := len(s) - len(strings.TrimLeft(s, "`"))
	rest := s[run:]

	switch {
	case rest == "":
		return lineFenceBare
	case strings.TrimRight(rest, "`") == diagramTag:
		// Tolerates trailing duplicated markers on the opening line
		// ("```mermaid```" and similar artifacts).
		return lineFenceOpen
	default:
		return lineFencePrefixed
	}
}

// Block is a diagram block span over the document's lines (0-based indexes).
//
// A well-formed block has exactly one opening line (Start) and one closing
// line (Close), with End == Close. A malformed block absorbs stray closing
// fences directly after its genuine closer, so End > Close. An unterminated
// block has Close == -1 and End set to the last line of its span.
type Block struct {
	Start int // opening fence line
	Close int // first bare closing fence, -1 if none found
	End   int // last line belonging to the block span
}

// Terminated reports whether the block has a resolvable closer.
func (b Block) Terminated() bool { return b.Close >= 0 }

// scanResult is the outcome of one scanner pass over the document lines.
type scanResult struct {
	blocks       []Block // terminated blocks, in document order
	unterminated []Block // opening fences with no closer before EOF or the next opener
}

// scan locates all diagram block spans in the document.
//
// Generic (non-mermaid) fenced code blocks are skipped whole so that their
// closing fences are never mistaken for diagram closers or orphan markers.
// Everything between a diagram opener and the first bare fence is inner
// content, even lines that look like fences themselves; those are artifacts
// the normalizer strips.
func scan(lines []string) scanResult {
	var res scanResult

	for i := 0; i < len(lines); {
		switch classifyLine(lines[i]) {
		case lineFenceOpen:
			i = scanDiagram(lines, i, &res)
		case lineFencePrefixed:
			i = skipCodeBlock(lines, i)
		default:
			i++
		}
	}

	return res
}

// scanDiagram consumes one diagram block starting at the opener index.
// Returns the index of the first line after the block span.
func scanDiagram(lines []string, open int, res *scanResult) int {
	closer := -1
	for j := open + 1; j < len(lines); j++ {
		kind := classifyLine(lines[j])
		if kind == lineFenceOpen {
			// Another opener before any closer: the first block is unterminated
			// and its span ends just before the new opener.
			res.unterminated = append(res.unterminated, Block{Start: open, Close: -1, End: j - 1})
			return j
		}
		if kind == lineFenceBare {
			closer = j
			break
		}
	}

	if closer == -1 {
		// No closer before end of document.
		res.unterminated = append(res.unterminated, Block{Start: open, Close: -1, End: len(lines) - 1})
		return len(lines)
	}

	// Absorb immediately following bare fences: they are stray duplicated
	// closers belonging to this block, not openers of a new one.
	end := closer
	for end+1 < len(lines) && classifyLine(lines[end+1]) == lineFenceBare {
		end++
	}

	res.blocks = append(res.blocks, Block{Start: open, Close: closer, End: end})
	return end + 1
}

// skipCodeBlock consumes a generic fenced code block (```go, ```{...}, ...)
// up to and including its closing fence. Returns the index after the block.
// If the block never closes, the rest of the document belongs to it.
func skipCodeBlock(lines []string, open int) int {
	for j := open + 1; j < len(lines); j++ {
		if classifyLine(lines[j]) == lineFenceBare {
			return j + 1
		}
	}
	return len(lines)
}
