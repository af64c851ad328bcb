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


// Package httpapi exposes the Buddeee REST surface: events CRUD, users,
// interactions, stats and the chat assistant endpoint.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/beyondbinary/buddeee/chatbot"
	"github.com/beyondbinary/buddeee/index"
	"github.com/beyondbinary/buddeee/storage"
)

// Server wires the HTTP surface to the repositories and the chat pipeline.
type Server struct {
	events       storage.EventRepository
	users        storage.UserRepository
	interactions storage.InteractionRepository
	bot          *chatbot.Chatbot
	reindexer    *index.Reindexer
	validate     *validator.Validate
	logger       *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithChatbot attaches the chat pipeline. Without it the chat endpoint
// answers 503.
func WithChatbot(bot *chatbot.Chatbot) Option {
	return func(s *Server) error {
		s.bot = bot
		return nil
	}
}

// WithReindexer attaches the reindex trigger fired after catalog mutations.
func WithReindexer(reindexer *index.Reindexer) Option {
	return func(s *Server) error {
		s.reindexer = reindexer
		return nil
	}
}

// NewServer creates the HTTP server facade.
func NewServer(
	events storage.EventRepository,
	users storage.UserRepository,
	interactions storage.InteractionRepository,
	opts ...Option,
) (*Server, error) {
	if events == nil {
		return nil, ErrEventRepositoryRequired
	}
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	if interactions == nil {
		return nil, ErrInteractionRepositoryRequired
	}

	s := &Server{
		events:       events,
		users:        users,
		interactions: interactions,
		validate:     validator.New(),
		logger:       slog.Default().With("component", "httpapi"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Routes builds the router with all API endpoints registered.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/events/nearby", s.handleNearbyEvents).Methods(http.MethodGet)
	r.HandleFunc("/api/events", s.handleListEvents).Methods(http.MethodGet)
	r.HandleFunc("/api/events", s.handleCreateEvent).Methods(http.MethodPost)
	r.HandleFunc("/api/events/{id:[0-9]+}", s.handleGetEvent).Methods(http.MethodGet)
	r.HandleFunc("/api/events/{id:[0-9]+}", s.handleUpdateEvent).Methods(http.MethodPut)
	r.HandleFunc("/api/events/{id:[0-9]+}", s.handleDeleteEvent).Methods(http.MethodDelete)

	r.HandleFunc("/api/users", s.handleRegisterUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/login", s.handleLoginUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{userId:[0-9]+}/events", s.handleUserEvents).Methods(http.MethodGet)

	r.HandleFunc("/api/interactions", s.handleCreateInteraction).Methods(http.MethodPost)
	r.HandleFunc("/api/interactions/{userId:[0-9]+}", s.handleListInteractions).Methods(http.MethodGet)

	r.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)

	r.HandleFunc("/api/chatbot", s.handleChat).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "Buddeee API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// catalogMutated fires the background reindex after a write commits.
func (s *Server) catalogMutated() {
	if s.reindexer != nil {
		s.reindexer.OnCatalogMutated()
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// decodeAndValidate decodes the request body into v and validates struct tags.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}
