package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The chat response wire shape is consumed by mobile clients; the type tag and
// tag-specific fields must serialize exactly as documented.
func TestChatResponseWireShape(t *testing.T) {
	t.Run("text response omits events and suggestions", func(t *testing.T) {
		resp := &ChatResponse{
			Type:    ResponseTypeText,
			Message: "Hi there!",
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"text","message":"Hi there!"}`, string(data))
	})

	t.Run("events response carries event records", func(t *testing.T) {
		resp := &ChatResponse{
			Type:    ResponseTypeEvents,
			Message: "I found 1 event(s) for you! Tap any card to view details:",
			Events: []*Event{
				{
					ID:                  7,
					Title:               "Basketball Pickup Game",
					Location:            "Victoria Park",
					EventType:           "sports",
					CurrentParticipants: 7,
					MaxParticipants:     12,
				},
			},
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "events", decoded["type"])
		events, ok := decoded["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 1)
		first := events[0].(map[string]any)
		assert.Equal(t, float64(7), first["id"])
		assert.Equal(t, float64(7), first["currentParticipants"])
		assert.NotContains(t, decoded, "suggestions")
	})

	t.Run("suggestions response carries exactly the emitted options", func(t *testing.T) {
		resp := &ChatResponse{
			Type:    ResponseTypeSuggestions,
			Message: "Here are some ideas:",
			Suggestions: []Suggestion{
				{EventType: "picnic", MaxParticipants: 15, DescriptionHint: "Sunset picnic in the park"},
				{EventType: "hike", MaxParticipants: 8, DescriptionHint: "Morning trail walk"},
				{EventType: "board games", MaxParticipants: 6, DescriptionHint: "Casual games night"},
			},
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded struct {
			Type        string       `json:"type"`
			Suggestions []Suggestion `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "suggestions", decoded.Type)
		require.Len(t, decoded.Suggestions, 3)
		assert.Equal(t, "picnic", decoded.Suggestions[0].EventType)
		assert.Equal(t, 15, decoded.Suggestions[0].MaxParticipants)
	})
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	user := &User{ID: 1, Email: "sam@example.com", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}
