package mermaid

// Exports for testing. These allow black-box tests to exercise internal
// logic without widening the public API.

type LineKind = lineKind

const (
	LinePlain         = linePlain
	LineFenceOpen     = lineFenceOpen
	LineFenceBare     = lineFenceBare
	LineFencePrefixed = lineFencePrefixed
	LineNotesOpen     = lineNotesOpen
	LineNotesClose    = lineNotesClose
	LineSeparator     = lineSeparator
)

var ClassifyLine = classifyLine

type ScanResult = scanResult

func Scan(lines []string) ScanResult {
	return scan(lines)
}

func (r ScanResult) Blocks() []Block       { return r.blocks }
func (r ScanResult) Unterminated() []Block { return r.unterminated }
