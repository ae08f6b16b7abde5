// Package client is a Go client for the ticket API and the estimation
// service. Session state rides on a cookie jar; estimator calls carry the
// short-lived bearer token obtained from the main API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
)

// APIError carries the error list from a non-2xx response envelope.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// IsNotAuthenticated reports whether err is the generic session rejection,
// so background probes can be filtered out of user-facing error state.
func IsNotAuthenticated(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	for _, msg := range apiErr.Messages {
		if msg == "Not authenticated" {
			return true
		}
	}
	return false
}

// Client talks to both services.
type Client struct {
	apiBase       string
	estimatorBase string
	http          *http.Client
}

// New builds a client. Base URLs are the service roots, e.g.
// "http://127.0.0.1:3001" and "http://127.0.0.1:3002".
func New(apiBase, estimatorBase string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		apiBase:       strings.TrimRight(apiBase, "/"),
		estimatorBase: strings.TrimRight(estimatorBase, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

// FetchTickets returns all tickets with their reply threads.
func (c *Client) FetchTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	var tickets []dto.TicketResponse
	err := c.call(ctx, http.MethodGet, c.apiBase+"/api/tickets", nil, "", &tickets)
	return tickets, err
}

// Login authenticates and establishes the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (dto.UserResponse, error) {
	var user dto.UserResponse
	body := dto.LoginRequest{Username: username, Password: password}
	err := c.call(ctx, http.MethodPost, c.apiBase+"/api/session", body, "", &user)
	return user, err
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, c.apiBase+"/api/session", nil, "", nil)
}

// CurrentUser returns the session user, if any.
func (c *Client) CurrentUser(ctx context.Context) (dto.UserResponse, error) {
	var user dto.UserResponse
	err := c.call(ctx, http.MethodGet, c.apiBase+"/api/session/current", nil, "", &user)
	return user, err
}

// CreateTicket submits a new ticket.
func (c *Client) CreateTicket(ctx context.Context, title, category, description string) error {
	body := dto.CreateTicketRequest{Title: title, Category: category, Description: description}
	return c.call(ctx, http.MethodPost, c.apiBase+"/api/create-ticket", body, "", nil)
}

// SetTicketState patches a ticket's state.
func (c *Client) SetTicketState(ctx context.Context, ticketID int64, state string) error {
	body := dto.PatchTicketRequest{State: &state}
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("%s/api/ticket/%d", c.apiBase, ticketID), body, "", nil)
}

// SetTicketCategory patches a ticket's category.
func (c *Client) SetTicketCategory(ctx context.Context, ticketID int64, category string) error {
	body := dto.PatchTicketRequest{Category: &category}
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("%s/api/ticket/%d", c.apiBase, ticketID), body, "", nil)
}

// AddTextBlock appends a reply to a ticket.
func (c *Client) AddTextBlock(ctx context.Context, ticketID int64, text string) error {
	body := dto.AddReplyRequest{Text: text}
	return c.call(ctx, http.MethodPost, fmt.Sprintf("%s/api/ticket/%d/text-block", c.apiBase, ticketID), body, "", nil)
}

// AuthToken fetches a fresh estimation token.
func (c *Client) AuthToken(ctx context.Context) (string, error) {
	var resp dto.TokenResponse
	err := c.call(ctx, http.MethodGet, c.apiBase+"/api/auth-token", nil, "", &resp)
	return resp.Token, err
}

// EstimateResult holds whichever unit the estimator returned.
type EstimateResult struct {
	EstimatedHours *int `json:"estimatedHours"`
	EstimatedDays  *int `json:"estimatedDays"`
}

// EstimateTime asks the estimation service for a closure estimate.
func (c *Client) EstimateTime(ctx context.Context, token, title, category string, isAdmin int) (EstimateResult, error) {
	var result EstimateResult
	body := dto.EstimateRequest{Title: title, Category: category, IsAdmin: isAdmin}
	err := c.call(ctx, http.MethodPost, c.estimatorBase+"/api/estimate-time", body, token, &result)
	return result, err
}

func (c *Client) call(ctx context.Context, method, rawURL string, body any, bearer string, out any) error {
	if _, err := url.Parse(rawURL); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Errors []string `json:"errors"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil || len(envelope.Errors) == 0 {
			envelope.Errors = []string{"Failed to contact the server"}
		}
		return &APIError{StatusCode: resp.StatusCode, Messages: envelope.Errors}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
