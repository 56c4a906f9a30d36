// Package pandoc invokes the external pandoc binary to convert markdown
// decks into PowerPoint files.
//
// Conversion is a boundary operation with binary success: a missing binary or
// a non-zero exit is reported to the caller, who logs it and moves on. The
// markdown artifact is always persisted before conversion is attempted, so a
// converter failure never loses content.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNotFound indicates the pandoc binary is not installed or not in PATH.
var ErrNotFound = errors.New("pandoc not found")

// runFn runs a command and returns its stderr output.
type runFn func(ctx context.Context, path string, args []string) (string, error)

// Converter converts markdown files via the pandoc binary.
type Converter struct {
	path string
	run  runFn
}

// Option configures a Converter.
type Option func(*Converter)

// WithPath sets an explicit pandoc binary path, bypassing PATH lookup.
func WithPath(path string) Option {
	return func(c *Converter) { c.path = path }
}

// WithRun sets a custom run function (for testing).
func WithRun(fn runFn) Option {
	return func(c *Converter) { c.run = fn }
}

// NewConverter creates a Converter, resolving the pandoc binary from PATH
// unless an explicit path is given. Returns ErrNotFound if pandoc is not
// installed; callers treat that as a reportable, non-fatal condition.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{run: defaultRun}
	for _, opt := range opts {
		opt(c)
	}

	if c.path == "" {
		path, err := exec.LookPath("pandoc")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		c.path = path
	}
	return c, nil
}

// Convert turns the input markdown file into the output file. The output
// format is inferred by pandoc from the output extension.
func (c *Converter) Convert(ctx context.Context, input, output string) error {
	stderr, err := c.run(ctx, c.path, []string{"-o", output, input})
	if err != nil {
		return fmt.Errorf("pandoc %s -> %s: %w\nOutput: %s", input, output, err, stderr)
	}
	return nil
}

// defaultRun is the production implementation. Stderr is captured because
// pandoc writes its diagnostics there.
func defaultRun(ctx context.Context, path string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}
