package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserEndpoint(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"sam@example.com","password":"hunter22"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Success bool  `json:"success"`
			UserID  int64 `json:"userId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.NotZero(t, body.UserID)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"sam@example.com","password":"short"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid emails", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"not-an-email","password":"hunter22"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"sam@example.com","password":"hunter22"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"sam@example.com","password":"hunter22"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})
}

func TestLoginUserEndpoint(t *testing.T) {
	register := func(t *testing.T, server *Server) {
		rec := doRequest(t, server, http.MethodPost, "/api/users",
			`{"email":"sam@example.com","password":"hunter22"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("correct credentials", func(t *testing.T) {
		server, _ := newTestServer(t)
		register(t, server)

		rec := doRequest(t, server, http.MethodPost, "/api/users/login",
			`{"email":"sam@example.com","password":"hunter22"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool            `json:"success"`
			UserID  int64           `json:"userId"`
			User    json.RawMessage `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.NotZero(t, body.UserID)
		assert.NotContains(t, string(body.User), "password", "hash never crosses the wire")
	})

	t.Run("wrong password", func(t *testing.T) {
		server, _ := newTestServer(t)
		register(t, server)

		rec := doRequest(t, server, http.MethodPost, "/api/users/login",
			`{"email":"sam@example.com","password":"wrong-pass"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/api/users/login",
			`{"email":"nobody@example.com","password":"hunter22"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserProfileEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/api/users",
		`{"email":"sam@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("get user", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/users/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "sam@example.com")
	})

	t.Run("update profile", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPut, "/api/users/1",
			`{"bio":"climber","username":"sam"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "climber")
	})

	t.Run("missing user", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/users/404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInteractionEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("record and list", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/interactions",
			`{"user_id":3,"event_id":1,"interaction_type":"joined"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, server, http.MethodGet, "/api/interactions/3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
	})

	t.Run("rejects incomplete payloads", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/interactions",
			`{"user_id":3}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
