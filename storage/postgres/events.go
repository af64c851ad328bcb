// Copyright 2025 Beyond Binary
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/beyondbinary/buddeee/core"
	"github.com/beyondbinary/buddeee/storage"
	"github.com/lib/pq"
)

const eventColumns = `id, title, location, description, time, current_participants,
	max_participants, event_type, latitude, longitude, creator_user_id, created_at`

// EventRepository implements storage.EventRepository on PostgreSQL.
type EventRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// NewEventRepository creates an event repository on the given backend.
func NewEventRepository(backend *Backend) (*EventRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &EventRepository{
		backend: backend,
		logger:  slog.Default().With("component", "event-repository"),
	}, nil
}

var _ storage.EventRepository = (*EventRepository)(nil)

// scanEvent reads one event row. The scanner argument accepts both *sql.Row
// and *sql.Rows.
func scanEvent(scan func(dest ...any) error) (*core.Event, error) {
	var (
		event       core.Event
		description sql.NullString
		schedule    sql.NullString
	)

	err := scan(
		&event.ID,
		&event.Title,
		&event.Location,
		&description,
		&schedule,
		&event.CurrentParticipants,
		&event.MaxParticipants,
		&event.EventType,
		&event.Latitude,
		&event.Longitude,
		&event.CreatorUserID,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Description = description.String
	event.Time = schedule.String
	return &event, nil
}

func collectEvents(rows *sql.Rows) ([]*core.Event, error) {
	defer rows.Close()

	var events []*core.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// ListEvents retrieves events newest first, optionally filtered by type.
func (r *EventRepository) ListEvents(ctx context.Context, eventType string, limit int) ([]*core.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}

	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.backend.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return collectEvents(rows)
}

// ListAllEvents retrieves the entire catalog for index rebuilds.
func (r *EventRepository) ListAllEvents(ctx context.Context) ([]*core.Event, error) {
	return r.ListEvents(ctx, "", 0)
}

// GetEvent retrieves a single event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*core.Event, error) {
	row := r.backend.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return event, nil
}

// CreateEvent inserts a new event and returns its assigned ID.
func (r *EventRepository) CreateEvent(ctx context.Context, event *core.Event) (int64, error) {
	if err := core.ValidateEvent(event); err != nil {
		return 0, err
	}

	var id int64
	err := r.backend.db.QueryRowContext(ctx,
		`INSERT INTO events (title, location, description, time, current_participants,
			max_participants, event_type, latitude, longitude, creator_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		event.Title,
		event.Location,
		nullIfEmpty(event.Description),
		nullIfEmpty(event.Time),
		event.CurrentParticipants,
		event.MaxParticipants,
		event.EventType,
		event.Latitude,
		event.Longitude,
		event.CreatorUserID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	r.logger.Debug("created event", "id", id, "title", event.Title)
	return id, nil
}

// UpdateEvent applies a partial update; nil patch fields keep current values.
func (r *EventRepository) UpdateEvent(ctx context.Context, id int64, patch *storage.EventPatch) error {
	if patch == nil {
		patch = &storage.EventPatch{}
	}

	result, err := r.backend.db.ExecContext(ctx,
		`UPDATE events SET
			title = COALESCE($1, title),
			location = COALESCE($2, location),
			description = COALESCE($3, description),
			time = COALESCE($4, time),
			current_participants = COALESCE($5, current_participants),
			max_participants = COALESCE($6, max_participants),
			event_type = COALESCE($7, event_type),
			latitude = COALESCE($8, latitude),
			longitude = COALESCE($9, longitude)
		 WHERE id = $10`,
		patch.Title,
		patch.Location,
		patch.Description,
		patch.Time,
		patch.CurrentParticipants,
		patch.MaxParticipants,
		patch.EventType,
		patch.Latitude,
		patch.Longitude,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	result, err := r.backend.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	r.logger.Debug("deleted event", "id", id)
	return nil
}

// GetParticipantCounts retrieves live participant state for the given IDs in
// one batch. IDs with no matching row are absent from the result.
func (r *EventRepository) GetParticipantCounts(ctx context.Context, ids []int64) (map[int64]core.ParticipantCounts, error) {
	counts := make(map[int64]core.ParticipantCounts, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows, err := r.backend.db.QueryContext(ctx,
		`SELECT id, current_participants, max_participants FROM events WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get participant counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id int64
			pc core.ParticipantCounts
		)
		if err := rows.Scan(&id, &pc.Current, &pc.Max); err != nil {
			return nil, err
		}
		counts[id] = pc
	}
	return counts, rows.Err()
}

// GetStats retrieves aggregate catalog statistics.
func (r *EventRepository) GetStats(ctx context.Context) (*core.Stats, error) {
	var stats core.Stats
	err := r.backend.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COUNT(DISTINCT event_type),
			COALESCE(SUM(current_participants), 0),
			COALESCE(AVG(current_participants * 100.0 / NULLIF(max_participants, 0)), 0)
		 FROM events`,
	).Scan(&stats.TotalEvents, &stats.EventTypes, &stats.TotalParticipants, &stats.AvgOccupancy)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
