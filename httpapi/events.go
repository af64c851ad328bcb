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


package httpapi

import (
	"errors"
	"math"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/beyondbinary/buddeee/core"
	"github.com/beyondbinary/buddeee/storage"
)

const (
	defaultNearbyRadiusKm = 50.0
	earthRadiusKm         = 6371.0
)

type createEventRequest struct {
	Title               string   `json:"title" validate:"required"`
	Description         string   `json:"description"`
	Location            string   `json:"location" validate:"required"`
	Time                string   `json:"time"`
	CurrentParticipants int      `json:"currentParticipants" validate:"gte=0"`
	MaxParticipants     int      `json:"maxParticipants" validate:"gte=0"`
	EventType           string   `json:"eventType" validate:"required"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	CreatorUserID       *int64   `json:"creatorUserId"`
}

type updateEventRequest struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	Location            *string  `json:"location"`
	Time                *string  `json:"time"`
	CurrentParticipants *int     `json:"currentParticipants"`
	MaxParticipants     *int     `json:"maxParticipants"`
	EventType           *string  `json:"eventType"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("eventType")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	events, err := s.events.ListEvents(r.Context(), eventType, limit)
	if err != nil {
		s.logger.Error("failed to list events", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch events")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(events),
		"events":  events,
	})
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "event not found")
			return
		}
		s.logger.Error("failed to get event", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch event")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"event":   event,
	})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "title, location and eventType are required")
		return
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = 10
	}

	event := &core.Event{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Time:                req.Time,
		CurrentParticipants: req.CurrentParticipants,
		MaxParticipants:     maxParticipants,
		EventType:           req.EventType,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		CreatorUserID:       req.CreatorUserID,
	}

	if err := core.ValidateEvent(event); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.events.CreateEvent(r.Context(), event)
	if err != nil {
		s.logger.Error("failed to create event", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	event.ID = id

	s.catalogMutated()

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"event":   event,
	})
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req updateEventRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := &storage.EventPatch{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Time:                req.Time,
		CurrentParticipants: req.CurrentParticipants,
		MaxParticipants:     req.MaxParticipants,
		EventType:           req.EventType,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
	}

	if err := s.events.UpdateEvent(r.Context(), id, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "event not found")
			return
		}
		s.logger.Error("failed to update event", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	s.catalogMutated()

	updated, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to reload updated event", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch updated event")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"event":   updated,
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := s.events.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "event not found")
			return
		}
		s.logger.Error("failed to delete event", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	s.catalogMutated()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Event deleted",
	})
}

type nearbyEvent struct {
	*core.Event
	DistanceKm float64 `json:"distanceKm"`
}

func (s *Server) handleNearbyEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, latErr := strconv.ParseFloat(query.Get("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(query.Get("longitude"), 64)
	if latErr != nil || lngErr != nil {
		s.writeError(w, http.StatusBadRequest, "Latitude and longitude required")
		return
	}

	radiusKm := defaultNearbyRadiusKm
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		radiusKm = parsed
	}

	events, err := s.events.ListAllEvents(r.Context())
	if err != nil {
		s.logger.Error("failed to list events for nearby search", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch events")
		return
	}

	nearby := make([]nearbyEvent, 0)
	for _, event := range events {
		if event.Latitude == nil || event.Longitude == nil {
			continue
		}
		distance := haversineKm(lat, lng, *event.Latitude, *event.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, nearbyEvent{Event: event, DistanceKm: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(nearby),
		"radius":  radiusKm,
		"events":  nearby,
	})
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.events.GetStats(r.Context())
	if err != nil {
		s.logger.Error("failed to compute stats", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}
