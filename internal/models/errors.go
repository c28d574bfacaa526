package models

import "errors"

// Error categories surfaced at pipeline boundaries. Callers match with
// errors.Is and decide how to present them; wrapped causes stay attached.
var (
	// ErrInput covers bad user input: a missing ingestion directory, an
	// empty resume or role.
	ErrInput = errors.New("invalid input")

	// ErrDependency covers unreachable collaborators: the embedding
	// model, the vector index, the database.
	ErrDependency = errors.New("service unavailable")

	// ErrGeneration covers failures of the generation model call
	// (network, auth, rate limit), after retries are exhausted.
	ErrGeneration = errors.New("generation failed")
)
