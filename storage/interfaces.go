package storage

import (
	"context"

	"github.com/beyondbinary/buddeee/core"
)

// EventRepository provides operations for the events catalog.
// Implementations must be thread-safe and support concurrent access.
type EventRepository interface {
	// ListEvents retrieves events newest first, optionally filtered by type.
	// A limit of 0 means no limit.
	ListEvents(ctx context.Context, eventType string, limit int) ([]*core.Event, error)

	// ListAllEvents retrieves the entire catalog. Used for index rebuilds.
	ListAllEvents(ctx context.Context) ([]*core.Event, error)

	// GetEvent retrieves a single event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	GetEvent(ctx context.Context, id int64) (*core.Event, error)

	// CreateEvent inserts a new event and returns its assigned ID.
	CreateEvent(ctx context.Context, event *core.Event) (int64, error)

	// UpdateEvent applies a partial update; nil fields keep their current value.
	// Returns ErrNotFound if the event doesn't exist.
	UpdateEvent(ctx context.Context, id int64, patch *EventPatch) error

	// DeleteEvent removes an event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	DeleteEvent(ctx context.Context, id int64) error

	// GetParticipantCounts retrieves current participant state for the given
	// event IDs in a single batch. Missing IDs are simply absent from the
	// returned map (no error).
	GetParticipantCounts(ctx context.Context, ids []int64) (map[int64]core.ParticipantCounts, error)

	// GetStats retrieves aggregate catalog statistics.
	GetStats(ctx context.Context) (*core.Stats, error)
}

// EventPatch describes a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Title               *string
	Location            *string
	Description         *string
	Time                *string
	CurrentParticipants *int
	MaxParticipants     *int
	EventType           *string
	Latitude            *float64
	Longitude           *float64
}

// UserRepository provides operations for user accounts.
type UserRepository interface {
	// CreateUser inserts a new account with a pre-hashed password.
	// Returns ErrDuplicateEmail if the email is already registered.
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)

	// GetUserByEmail retrieves an account by email.
	// Returns ErrNotFound if no account exists.
	GetUserByEmail(ctx context.Context, email string) (*core.User, error)

	// GetUser retrieves an account by ID.
	// Returns ErrNotFound if no account exists.
	GetUser(ctx context.Context, id int64) (*core.User, error)

	// UpdateUserProfile applies a partial profile update and returns the
	// updated account. Returns ErrNotFound if no account exists.
	UpdateUserProfile(ctx context.Context, id int64, patch *UserPatch) (*core.User, error)

	// ListUserEvents retrieves events the user created or joined and has not
	// since left, newest first.
	ListUserEvents(ctx context.Context, userID int64) ([]*core.Event, error)
}

// UserPatch describes a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Bio          *string
	InterestTags *string
	Username     *string
	DOB          *string
	Address      *string
	Caption      *string
}

// InteractionRepository provides operations for user-event interactions.
type InteractionRepository interface {
	// AddInteraction records a user acting on an event and returns the row ID.
	AddInteraction(ctx context.Context, userID, eventID int64, interactionType string) (int64, error)

	// ListUserInteractions retrieves a user's full interaction history,
	// newest first, joined with event title and type where the event still
	// exists.
	ListUserInteractions(ctx context.Context, userID int64) ([]*core.Interaction, error)
}
