package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-crypt/x/bcrypt"
	"github.com/gorilla/mux"

	"github.com/beyondbinary/buddeee/storage"
)

// bcryptCost matches the cost the mobile clients were provisioned against.
const bcryptCost = 10

type registerUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginUserRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Username     *string `json:"username"`
	Bio          *string `json:"bio"`
	InterestTags *string `json:"interest_tags"`
	DOB          *string `json:"dob"`
	Address      *string `json:"address"`
	Caption      *string `json:"caption"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "a valid email and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	userID, err := s.users.CreateUser(r.Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			s.writeJSON(w, http.StatusConflict, map[string]any{
				"success": false,
				"message": "An account with this email already exists",
			})
			return
		}
		s.logger.Error("failed to create user", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User created successfully",
		"userId":  userID,
	})
}

func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	var req loginUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "No account found with this email",
			})
			return
		}
		s.logger.Error("failed to look up user", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to look up user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Incorrect password",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"userId":  user.ID,
		"user":    user,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.logger.Error("failed to get user", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := &storage.UserPatch{
		Username:     req.Username,
		Bio:          req.Bio,
		InterestTags: req.InterestTags,
		DOB:          req.DOB,
		Address:      req.Address,
		Caption:      req.Caption,
	}

	user, err := s.users.UpdateUserProfile(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.logger.Error("failed to update user", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (s *Server) handleUserEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	events, err := s.users.ListUserEvents(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list user events", "userId", userID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch user events")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(events),
		"events":  events,
	})
}
