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


package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beyondbinary/buddeee/ai"
	"github.com/beyondbinary/buddeee/core"
	"github.com/beyondbinary/buddeee/index"
	"github.com/beyondbinary/buddeee/storage"
)

const (
	// retrievalK is the number of candidate events fetched per request.
	retrievalK = 5

	// defaultGenerationTimeout bounds the synthesis model call. Expiry is
	// treated as a generation failure and falls back to the apology reply.
	defaultGenerationTimeout = 30 * time.Second

	unparseableMessage = "Sorry, I had trouble understanding that. Could you try again?"
	apologyMessage     = "Sorry, I encountered an error. Please try again."
	noEventsMessage    = "Sorry, I couldn't find any matching events right now. Try searching for something else!"
)

func verifiedEventsMessage(count int) string {
	return fmt.Sprintf("I found %d event(s) for you! Tap any card to view details:", count)
}

// state is threaded through the three pipeline stages. Each stage reads
// fields written by its predecessors and writes only its own; verify may
// additionally rewrite the events and message inside the synthesized
// response.
type state struct {
	userMessage         string
	userID              *int64
	conversationHistory []core.ConversationTurn
	retrievedEvents     []*core.Event
	synthesizedResponse *core.ChatResponse
	finalResponse       *core.ChatResponse
}

// Chatbot runs the retrieve/synthesize/verify pipeline for chat requests.
// Requests are independent; a Chatbot is safe for concurrent use.
type Chatbot struct {
	index             *index.Index
	events            storage.EventRepository
	generator         ai.Generator
	generationTimeout time.Duration
	logger            *slog.Logger
}

// Option configures a Chatbot.
type Option func(*Chatbot) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chatbot) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithGenerationTimeout bounds the synthesis model call.
// Default is 30 seconds. Values <= 0 disable the bound.
func WithGenerationTimeout(timeout time.Duration) Option {
	return func(c *Chatbot) error {
		c.generationTimeout = timeout
		return nil
	}
}

// NewChatbot creates the conversational pipeline.
func NewChatbot(
	ix *index.Index,
	events storage.EventRepository,
	generator ai.Generator,
	opts ...Option,
) (*Chatbot, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if events == nil {
		return nil, ErrEventRepositoryRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Chatbot{
		index:             ix,
		events:            events,
		generator:         generator,
		generationTimeout: defaultGenerationTimeout,
		logger:            slog.Default().With("component", "chatbot"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Chat runs one message through the pipeline and always returns a well-formed
// response. Internal failures are absorbed stage by stage; nothing propagates
// to the caller as an error.
func (c *Chatbot) Chat(ctx context.Context, message string, userID *int64, history []core.ConversationTurn) *core.ChatResponse {
	st := &state{
		userMessage:         message,
		userID:              userID,
		conversationHistory: history,
	}

	c.retrieve(ctx, st)
	c.synthesize(ctx, st)
	c.verify(ctx, st)

	if st.finalResponse == nil {
		// Unreachable in practice; verify always writes a response.
		return &core.ChatResponse{Type: core.ResponseTypeText, Message: apologyMessage}
	}
	return st.finalResponse
}

// retrieve performs semantic search for events relevant to the user message.
// Retrieval failure never aborts the pipeline; synthesis proceeds without
// catalog context.
func (c *Chatbot) retrieve(ctx context.Context, st *state) {
	events, err := c.index.Query(ctx, st.userMessage, retrievalK)
	if err != nil {
		c.logger.Error("retrieval failed, continuing without context", "err", err)
		st.retrievedEvents = []*core.Event{}
		return
	}
	st.retrievedEvents = events
}

// synthesize calls the generation model with the composed prompt and parses
// its output into a tagged response.
func (c *Chatbot) synthesize(ctx context.Context, st *state) {
	prompt := buildSynthesisPrompt(st.userMessage, st.conversationHistory, st.retrievedEvents)

	if c.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.generationTimeout)
		defer cancel()
	}

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		c.logger.Error("generation failed", "err", err)
		st.synthesizedResponse = &core.ChatResponse{
			Type:    core.ResponseTypeText,
			Message: apologyMessage,
		}
		return
	}

	parsed := parseModelResponse(raw)
	if parsed != nil && core.ValidateResponseType(core.ResponseType(parsed.Type)) == nil {
		response := &core.ChatResponse{
			Type:    core.ResponseType(parsed.Type),
			Message: parsed.Message,
		}
		switch response.Type {
		case core.ResponseTypeEvents:
			// The model is trusted for the message and the shape decision
			// only; event content always comes from retrieval.
			if len(st.retrievedEvents) > 0 {
				response.Events = st.retrievedEvents
			}
		case core.ResponseTypeSuggestions:
			response.Suggestions = parsed.Suggestions
		}
		st.synthesizedResponse = response
		return
	}

	// Unrecognized output: return it as plain text, minus fence markers.
	message := stripCodeFences(raw)
	if message == "" {
		message = unparseableMessage
	}
	st.synthesizedResponse = &core.ChatResponse{
		Type:    core.ResponseTypeText,
		Message: message,
	}
}

// verify reconciles referenced events against the authoritative store:
// participant counts are refreshed and deleted events dropped. Store failures
// fail open with the unverified response rather than blocking the user.
func (c *Chatbot) verify(ctx context.Context, st *state) {
	response := st.synthesizedResponse

	if response == nil || response.Type != core.ResponseTypeEvents || len(response.Events) == 0 {
		st.finalResponse = response
		return
	}

	ids := make([]int64, 0, len(response.Events))
	for _, event := range response.Events {
		if event.ID != 0 {
			ids = append(ids, event.ID)
		}
	}
	if len(ids) == 0 {
		st.finalResponse = response
		return
	}

	counts, err := c.events.GetParticipantCounts(ctx, ids)
	if err != nil {
		c.logger.Error("verification lookup failed, returning unverified response", "err", err)
		st.finalResponse = response
		return
	}

	verified := make([]*core.Event, 0, len(response.Events))
	for _, event := range response.Events {
		current, ok := counts[event.ID]
		if event.ID == 0 || !ok {
			continue
		}
		event.CurrentParticipants = current.Current
		event.MaxParticipants = current.Max
		verified = append(verified, event)
	}

	if len(verified) == 0 {
		st.finalResponse = &core.ChatResponse{
			Type:    core.ResponseTypeText,
			Message: noEventsMessage,
		}
		return
	}

	response.Events = verified
	response.Message = verifiedEventsMessage(len(verified))
	st.finalResponse = response
}
