package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
)

func TestFetchTickets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tickets", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]dto.TicketResponse{
			{ID: 1, Title: "Printer", State: "Open", Owner: "Bob"},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	tickets, err := c.FetchTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Printer", tickets[0].Title)
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bob@example.com", req.Username)

		http.SetCookie(w, &http.Cookie{Name: "ticket_session", Value: "abc", Path: "/"})
		_ = json.NewEncoder(w).Encode(dto.UserResponse{ID: 2, Name: "Bob"})
	})
	mux.HandleFunc("/api/session/current", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("ticket_session")
		if err != nil || cookie.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string][]string{"errors": {"Not authenticated"}})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.UserResponse{ID: 2, Name: "Bob"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	user, err := c.Login(context.Background(), "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)

	// The jar must replay the session cookie on the next call.
	user, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
}

func TestErrorEnvelopeDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"errors": {"Only administrators may change the category"},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	err = c.SetTicketCategory(context.Background(), 1, "payment")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, []string{"Only administrators may change the category"}, apiErr.Messages)
	assert.False(t, IsNotAuthenticated(err))
}

func TestErrorEnvelopeFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	err = c.Logout(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, []string{"Failed to contact the server"}, apiErr.Messages)
}

func TestIsNotAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string][]string{"errors": {"Not authenticated"}})
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	_, err = c.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotAuthenticated(err))
}

func TestEstimateTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/estimate-time", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req dto.EstimateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.IsAdmin == 1 {
			_ = json.NewEncoder(w).Encode(dto.EstimateHoursResponse{EstimatedHours: 120})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.EstimateDaysResponse{EstimatedDays: 5})
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.URL)
	require.NoError(t, err)

	result, err := c.EstimateTime(context.Background(), "tok-123", "Printer", "maintenance", 1)
	require.NoError(t, err)
	require.NotNil(t, result.EstimatedHours)
	assert.Equal(t, 120, *result.EstimatedHours)
	assert.Nil(t, result.EstimatedDays)

	result, err = c.EstimateTime(context.Background(), "tok-123", "Printer", "maintenance", 0)
	require.NoError(t, err)
	require.NotNil(t, result.EstimatedDays)
	assert.Equal(t, 5, *result.EstimatedDays)
}
