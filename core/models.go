package core

import "time"

// Event is a single entry in the events catalog (title, type, location,
// schedule, participant counts). The events table in the relational store is
// the source of truth; the embedding index only ever holds denormalized
// snapshots of these records.
type Event struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Location            string    `json:"location"`
	Description         string    `json:"description,omitempty"`
	Time                string    `json:"time,omitempty"`
	CurrentParticipants int       `json:"currentParticipants"`
	MaxParticipants     int       `json:"maxParticipants"`
	EventType           string    `json:"eventType"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	CreatorUserID       *int64    `json:"creatorUserId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ParticipantCounts is the live participant state of an event, looked up in
// batch during response verification.
type ParticipantCounts struct {
	Current int
	Max     int
}

// ConversationTurn is a single {role, content} exchange in a chat session.
// Turns are supplied by the caller with each request and are not persisted.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseType discriminates the shape of a ChatResponse.
type ResponseType string

const (
	// ResponseTypeText is a plain conversational reply.
	ResponseTypeText ResponseType = "text"
	// ResponseTypeEvents is a reply referencing catalog events.
	ResponseTypeEvents ResponseType = "events"
	// ResponseTypeSuggestions is a reply proposing event ideas to host.
	ResponseTypeSuggestions ResponseType = "suggestions"
)

// ChatResponse is the tagged response produced by the chat pipeline.
// At most one of Events or Suggestions is populated, depending on Type.
type ChatResponse struct {
	Type        ResponseType `json:"type"`
	Message     string       `json:"message"`
	Events      []*Event     `json:"events,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion is one event idea offered when the user wants to host something.
type Suggestion struct {
	EventType       string `json:"eventType"`
	MaxParticipants int    `json:"maxParticipants"`
	DescriptionHint string `json:"descriptionHint"`
}

// User is a registered account. PasswordHash never crosses the wire.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          *string   `json:"bio,omitempty"`
	InterestTags *string   `json:"interest_tags,omitempty"`
	Username     *string   `json:"username,omitempty"`
	DOB          *string   `json:"dob,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Caption      *string   `json:"caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Interaction records a user acting on an event (created, joined, left).
// EventTitle and EventType are populated only when listing history.
type Interaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	EventID         int64     `json:"event_id"`
	InteractionType string    `json:"interaction_type"`
	CreatedAt       time.Time `json:"created_at"`
	EventTitle      *string   `json:"title,omitempty"`
	EventType       *string   `json:"eventType,omitempty"`
}

// Stats is the aggregate catalog summary.
type Stats struct {
	TotalEvents       int     `json:"totalEvents"`
	EventTypes        int     `json:"eventTypes"`
	TotalParticipants int     `json:"totalParticipants"`
	AvgOccupancy      float64 `json:"avgOccupancy"`
}
