package httpapi

import "errors"

var (
	// ErrEventRepositoryRequired is returned when no event repository is provided.
	ErrEventRepositoryRequired = errors.New("event repository is required")

	// ErrUserRepositoryRequired is returned when no user repository is provided.
	ErrUserRepositoryRequired = errors.New("user repository is required")

	// ErrInteractionRepositoryRequired is returned when no interaction repository is provided.
	ErrInteractionRepositoryRequired = errors.New("interaction repository is required")
)
