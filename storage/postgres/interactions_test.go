package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondbinary/buddeee/storage"
)

func newMockedInteractionRepository(t *testing.T) (*InteractionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewInteractionRepository(NewBackend(db))
	require.NoError(t, err)
	return repo, mock
}

func TestAddInteraction(t *testing.T) {
	ctx := context.Background()

	t.Run("records and returns id", func(t *testing.T) {
		repo, mock := newMockedInteractionRepository(t)

		mock.ExpectQuery(`(?s)INSERT INTO user_interactions .+ RETURNING id`).
			WithArgs(int64(3), int64(7), "joined").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		id, err := repo.AddInteraction(ctx, 3, 7, "joined")
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
	})

	t.Run("rejects incomplete interactions", func(t *testing.T) {
		repo, mock := newMockedInteractionRepository(t)

		_, err := repo.AddInteraction(ctx, 0, 7, "joined")
		assert.ErrorIs(t, err, storage.ErrInvalidInteraction)

		_, err = repo.AddInteraction(ctx, 3, 7, "")
		assert.ErrorIs(t, err, storage.ErrInvalidInteraction)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListUserInteractions(t *testing.T) {
	repo, mock := newMockedInteractionRepository(t)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "event_id", "interaction_type", "created_at", "title", "event_type",
	}).
		AddRow(int64(11), int64(3), int64(7), "joined", time.Now(), "Basketball at the park", "sports").
		AddRow(int64(12), int64(3), int64(9), "left", time.Now(), nil, nil)

	mock.ExpectQuery(`(?s)SELECT ui\.id.+LEFT JOIN events e`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	interactions, err := repo.ListUserInteractions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, interactions, 2)

	assert.Equal(t, "joined", interactions[0].InteractionType)
	require.NotNil(t, interactions[0].EventTitle)
	assert.Equal(t, "Basketball at the park", *interactions[0].EventTitle)

	assert.Nil(t, interactions[1].EventTitle, "deleted events leave no title")
}
