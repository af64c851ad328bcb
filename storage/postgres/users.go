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

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, bio, interest_tags, username, dob,
	address, caption, created_at`

// UserRepository implements storage.UserRepository on PostgreSQL.
type UserRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// NewUserRepository creates a user repository on the given backend.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &UserRepository{
		backend: backend,
		logger:  slog.Default().With("component", "user-repository"),
	}, nil
}

var _ storage.UserRepository = (*UserRepository)(nil)

func scanUser(scan func(dest ...any) error) (*core.User, error) {
	var user core.User
	err := scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.InterestTags,
		&user.Username,
		&user.DOB,
		&user.Address,
		&user.Caption,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account with a pre-hashed password.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := r.backend.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return 0, storage.ErrDuplicateEmail
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("created user", "id", id)
	return id, nil
}

// GetUserByEmail retrieves an account by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	row := r.backend.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUser retrieves an account by ID.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*core.User, error) {
	row := r.backend.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// UpdateUserProfile applies a partial profile update and returns the updated
// account.
func (r *UserRepository) UpdateUserProfile(ctx context.Context, id int64, patch *storage.UserPatch) (*core.User, error) {
	if patch == nil {
		patch = &storage.UserPatch{}
	}

	result, err := r.backend.db.ExecContext(ctx,
		`UPDATE users SET
			bio = COALESCE($1, bio),
			interest_tags = COALESCE($2, interest_tags),
			username = COALESCE($3, username),
			dob = COALESCE($4, dob),
			address = COALESCE($5, address),
			caption = COALESCE($6, caption)
		 WHERE id = $7`,
		patch.Bio,
		patch.InterestTags,
		patch.Username,
		patch.DOB,
		patch.Address,
		patch.Caption,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}

	return r.GetUser(ctx, id)
}

// ListUserEvents retrieves events the user created or joined and has not
// since left, newest first.
func (r *UserRepository) ListUserEvents(ctx context.Context, userID int64) ([]*core.Event, error) {
	rows, err := r.backend.db.QueryContext(ctx,
		`SELECT DISTINCT e.id, e.title, e.location, e.description, e.time,
			e.current_participants, e.max_participants, e.event_type,
			e.latitude, e.longitude, e.creator_user_id, e.created_at
		 FROM user_interactions ui
		 JOIN events e ON ui.event_id = e.id
		 WHERE ui.user_id = $1
		   AND ui.interaction_type IN ('created', 'joined')
		   AND NOT EXISTS (
		       SELECT 1 FROM user_interactions ui_left
		       WHERE ui_left.user_id = $1
		         AND ui_left.event_id = e.id
		         AND ui_left.interaction_type = 'left'
		         AND ui_left.created_at > ui.created_at
		   )
		 ORDER BY e.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user events: %w", err)
	}
	return collectEvents(rows)
}
