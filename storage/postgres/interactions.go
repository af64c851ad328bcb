package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beyondbinary/buddeee/core"
	"github.com/beyondbinary/buddeee/storage"
)

// InteractionRepository implements storage.InteractionRepository on PostgreSQL.
type InteractionRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// NewInteractionRepository creates an interaction repository on the given backend.
func NewInteractionRepository(backend *Backend) (*InteractionRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &InteractionRepository{
		backend: backend,
		logger:  slog.Default().With("component", "interaction-repository"),
	}, nil
}

var _ storage.InteractionRepository = (*InteractionRepository)(nil)

// AddInteraction records a user acting on an event.
func (r *InteractionRepository) AddInteraction(ctx context.Context, userID, eventID int64, interactionType string) (int64, error) {
	if userID == 0 || eventID == 0 || interactionType == "" {
		return 0, storage.ErrInvalidInteraction
	}

	var id int64
	err := r.backend.db.QueryRowContext(ctx,
		`INSERT INTO user_interactions (user_id, event_id, interaction_type)
		 VALUES ($1, $2, $3) RETURNING id`,
		userID, eventID, interactionType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to add interaction: %w", err)
	}

	r.logger.Debug("added interaction", "id", id, "user", userID, "event", eventID, "type", interactionType)
	return id, nil
}

// ListUserInteractions retrieves a user's interaction history, newest first.
func (r *InteractionRepository) ListUserInteractions(ctx context.Context, userID int64) ([]*core.Interaction, error) {
	rows, err := r.backend.db.QueryContext(ctx,
		`SELECT ui.id, ui.user_id, ui.event_id, ui.interaction_type, ui.created_at,
			e.title, e.event_type
		 FROM user_interactions ui
		 LEFT JOIN events e ON ui.event_id = e.id
		 WHERE ui.user_id = $1
		 ORDER BY ui.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*core.Interaction
	for rows.Next() {
		var it core.Interaction
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.EventID,
			&it.InteractionType,
			&it.CreatedAt,
			&it.EventTitle,
			&it.EventType,
		); err != nil {
			return nil, err
		}
		interactions = append(interactions, &it)
	}
	return interactions, rows.Err()
}
