package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located,
	// including an incomplete branch -> chat -> model -> provider -> endpoint
	// chain during generation-context resolution.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyActive signifies that a generation is already in flight for
	// the requested branch. A second generation on the same branch is rejected
	// so that two streams never interleave output on one subscription.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrAlreadyActive = errors.New("generation already active for branch")

	// ErrNoActiveStream signifies that a reconnect was attempted for a branch
	// that has no live streaming session. This is an expected condition, not a
	// failure: the client simply has nothing to resume.
	ErrNoActiveStream = errors.New("no active stream for branch")

	// ErrUpstream signifies that the provider HTTP request or its byte stream
	// failed. It never reaches the original caller of generate: the detached
	// task logs it and stops.
	ErrUpstream = errors.New("upstream provider failure")

	// ErrMalformedFrame signifies that a single provider frame could not be
	// decoded or parsed. The offending frame text is attached via wrapping.
	ErrMalformedFrame = errors.New("malformed provider frame")

	// ErrPersistence signifies a database failure. During record creation it
	// rolls the transaction back and surfaces synchronously; during
	// final-content persistence it is logged only.
	ErrPersistence = errors.New("persistence failure")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
