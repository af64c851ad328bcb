package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type createInteractionRequest struct {
	UserID          int64  `json:"user_id" validate:"required"`
	EventID         int64  `json:"event_id" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"required"`
}

func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "user_id, event_id and interaction_type are required")
		return
	}

	id, err := s.interactions.AddInteraction(r.Context(), req.UserID, req.EventID, req.InteractionType)
	if err != nil {
		s.logger.Error("failed to record interaction", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to record interaction")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"interactionId": id,
	})
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	interactions, err := s.interactions.ListUserInteractions(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list interactions", "userId", userID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch interactions")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"count":        len(interactions),
		"interactions": interactions,
	})
}
