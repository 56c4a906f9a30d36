package mermaid

import "strings"

// Strictness controls how the normalizer treats an unterminated diagram block
// (an opening fence with no bare closer before end of document or before the
// next opener). Neither mode invents a closing fence.
type Strictness int

const (
	// StrictnessLenient leaves unterminated blocks byte-identical and only
	// reports them. Default.
	StrictnessLenient Strictness = iota

	// StrictnessStrict additionally strips stray fence-marker lines inside an
	// unterminated block's span, without adding a closer.
	StrictnessStrict
)

// DefaultOrphanLookback is how many lines below a diagram block a bare fence
// marker is still presumed to be a leftover closer of that block.
// Override with WithOrphanLookback.
const DefaultOrphanLookback = 10

// Normalizer collapses malformed diagram blocks into well-formed ones.
//
// Normalization is idempotent and total: it never fails, and applying it to
// already-clean content returns that content unchanged. Lines outside diagram
// block spans are untouched except for orphan-marker deletion.
type Normalizer struct {
	lookback   int
	strictness Strictness
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithOrphanLookback sets the orphan-marker look-back window in lines.
// Values < 0 disable orphan deletion entirely; 0 keeps only directly
// adjacent deletion (which block scanning already covers).
func WithOrphanLookback(n int) NormalizerOption {
	return func(nm *Normalizer) {
		nm.lookback = n
	}
}

// WithStrictness sets the unterminated-block handling mode.
func WithStrictness(s Strictness) NormalizerOption {
	return func(nm *Normalizer) {
		nm.strictness = s
	}
}

// NewNormalizer creates a Normalizer with the given options.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		lookback:   DefaultOrphanLookback,
		strictness: StrictnessLenient,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize repairs malformed diagram blocks in content and returns the
// cleaned document plus any unterminated blocks it found. Unterminated blocks
// are reported, not repaired: a closing fence is never invented.
//
// For each matched block it emits a canonical opening fence, the inner lines
// minus any stray fence-marker artifacts (relative order and blank lines
// preserved), and a single closing fence. Bare fence markers outside any block
// are deleted only when a diagram block ended within the look-back window
// above them (measured on the output document); they are leftover closers
// from a block whose opener was already consumed by an earlier match. A bare
// fence with no diagram block above it is always kept, even with no opener in
// sight: deleting every unmatched marker would eat the closers of long
// generic code blocks and make repeated runs disagree.
func (n *Normalizer) Normalize(content string) (string, []Block) {
	lines := strings.Split(content, "\n")
	res := scan(lines)

	out := make([]string, 0, len(lines))
	// Index of the last emitted diagram closing fence in out, or -1.
	lastBlockEnd := -1

	emitBlock := func(b Block) {
		out = append(out, fenceMarker+diagramTag)
		for _, inner := range lines[b.Start+1 : b.Close] {
			if strings.HasPrefix(strings.TrimSpace(inner), fenceMarker) {
				continue // stray fence artifact inside the block
			}
			out = append(out, inner)
		}
		out = append(out, fenceMarker)
		lastBlockEnd = len(out) - 1
	}

	emitUnterminated := func(b Block) {
		for j := b.Start; j <= b.End; j++ {
			if n.strictness == StrictnessStrict && j > b.Start &&
				strings.HasPrefix(strings.TrimSpace(lines[j]), fenceMarker) {
				continue
			}
			out = append(out, lines[j])
		}
	}

	blocks := res.blocks
	unterminated := res.unterminated

	for i := 0; i < len(lines); {
		if len(blocks) > 0 && blocks[0].Start == i {
			b := blocks[0]
			blocks = blocks[1:]
			emitBlock(b)
			i = b.End + 1
			continue
		}
		if len(unterminated) > 0 && unterminated[0].Start == i {
			b := unterminated[0]
			unterminated = unterminated[1:]
			emitUnterminated(b)
			i = b.End + 1
			continue
		}

		if classifyLine(lines[i]) == lineFencePrefixed {
			// Generic code block: copy verbatim through its closer.
			next := skipCodeBlock(lines, i)
			out = append(out, lines[i:next]...)
			i = next
			continue
		}

		if n.isOrphan(lines[i], len(out), lastBlockEnd) {
			i++ // leftover closer, drop it
			continue
		}

		out = append(out, lines[i])
		i++
	}

	return strings.Join(out, "\n"), res.unterminated
}

// isOrphan reports whether a line outside any block is an orphan fence marker.
// Distance is measured on the output document so that repeated normalization
// makes identical decisions (idempotence).
func (n *Normalizer) isOrphan(line string, outLen, lastBlockEnd int) bool {
	if n.lookback < 0 || lastBlockEnd < 0 {
		return false
	}
	if classifyLine(line) != lineFenceBare {
		return false
	}
	return outLen-lastBlockEnd <= n.lookback
}

// Normalize repairs content with default settings. See Normalizer.Normalize.
func Normalize(content string) (string, []Block) {
	return NewNormalizer().Normalize(content)
}
