package repository

import (
	"context"
	"errors"
)

var (
	// ErrRemoteUnavailable no credential configured, the remote model is never called
	ErrRemoteUnavailable = errors.New("remote completion unavailable")

	// ErrRemoteCallFailed network, protocol or remote-side failure
	ErrRemoteCallFailed = errors.New("remote completion failed")
)

// CompletionRepository remote text generation endpoint.
//
// Complete makes at most one request per call. It never retries. Failures are
// reported as errors wrapping ErrRemoteUnavailable or ErrRemoteCallFailed.
type CompletionRepository interface {
	Complete(ctx context.Context, systemPrompt, userInput string) (string, error)
}
