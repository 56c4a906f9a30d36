package cli

import "errors"

// Sentinel errors for CLI validation failures.
// These map to specific exit codes in cmd/deckgen.
var (
	// ErrMissingInput indicates neither a prompt nor a reference file was supplied.
	ErrMissingInput = errors.New("either a prompt or a reference file is required")

	// ErrInvalidSlideCount indicates a non-positive slide count.
	ErrInvalidSlideCount = errors.New("slide count must be a positive integer")

	// ErrAPIKeyMissing indicates OPENAI_API_KEY is not set.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY not set (set it in the environment or a .env file)")

	// ErrFileNotFound indicates a user-supplied input file doesn't exist.
	ErrFileNotFound = errors.New("file not found")
)
