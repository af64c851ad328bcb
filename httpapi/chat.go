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
	"net/http"

	"github.com/beyondbinary/buddeee/core"
)

type chatRequest struct {
	Message             string                  `json:"message" validate:"required"`
	UserID              *int64                  `json:"userId"`
	ConversationHistory []core.ConversationTurn `json:"conversationHistory"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.bot == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Chatbot is still starting up, please retry shortly",
		})
		return
	}

	var req chatRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	response := s.bot.Chat(r.Context(), req.Message, req.UserID, req.ConversationHistory)

	s.writeJSON(w, http.StatusOK, response)
}
