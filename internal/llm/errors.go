package llm

import "errors"

// ErrEmptyResponse indicates the API returned no completion choices.
var ErrEmptyResponse = errors.New("no response from API")

// ErrContextTooLong indicates the combined prompts exceed the model's context window.
var ErrContextTooLong = errors.New("input exceeds model context window")
