package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEvent(t *testing.T) {
	valid := func() *Event {
		return &Event{
			Title:               "Basketball Pickup Game",
			Location:            "Victoria Park",
			EventType:           "sports",
			CurrentParticipants: 6,
			MaxParticipants:     12,
		}
	}

	t.Run("valid event", func(t *testing.T) {
		require.NoError(t, ValidateEvent(valid()))
	})

	t.Run("nil event", func(t *testing.T) {
		err := ValidateEvent(nil)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("empty title", func(t *testing.T) {
		event := valid()
		event.Title = ""
		err := ValidateEvent(event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty location", func(t *testing.T) {
		event := valid()
		event.Location = ""
		err := ValidateEvent(event)
		assert.ErrorIs(t, err, ErrEmptyLocation)
	})

	t.Run("empty event type", func(t *testing.T) {
		event := valid()
		event.EventType = ""
		err := ValidateEvent(event)
		assert.ErrorIs(t, err, ErrEmptyEventType)
	})

	t.Run("overfull event", func(t *testing.T) {
		event := valid()
		event.CurrentParticipants = 13
		err := ValidateEvent(event)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("uncapped event", func(t *testing.T) {
		event := valid()
		event.MaxParticipants = 0
		event.CurrentParticipants = 100
		require.NoError(t, ValidateEvent(event))
	})
}

func TestValidateResponseType(t *testing.T) {
	for _, rt := range []ResponseType{ResponseTypeText, ResponseTypeEvents, ResponseTypeSuggestions} {
		assert.NoError(t, ValidateResponseType(rt))
	}

	err := ValidateResponseType(ResponseType("banana"))
	assert.ErrorIs(t, err, ErrInvalidResponseType)
}
