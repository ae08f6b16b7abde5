package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/client"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	api, err := client.New("http://127.0.0.1:0", "http://127.0.0.1:0")
	require.NoError(t, err)
	return NewModel(api)
}

func asModel(t *testing.T, m tea.Model) Model {
	t.Helper()
	out, ok := m.(Model)
	require.True(t, ok)
	return out
}

func TestTicketsLoaded(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(ticketsLoadedMsg{tickets: []dto.TicketResponse{
		{ID: 1, Title: "Printer", State: "Open"},
	}})
	m = asModel(t, updated)

	assert.False(t, m.loading)
	require.Len(t, m.tickets, 1)
	assert.Equal(t, "Printer", m.tickets[0].Title)
	// No admin session, so no estimate sweep is scheduled.
	assert.Nil(t, cmd)
}

func TestTicketsLoadedClampsCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 5

	updated, _ := m.Update(ticketsLoadedMsg{tickets: []dto.TicketResponse{{ID: 1}, {ID: 2}}})
	m = asModel(t, updated)

	assert.Equal(t, 1, m.cursor)
}

func TestTicketsLoadedError(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(ticketsLoadedMsg{err: &client.APIError{
		StatusCode: 500, Messages: []string{"Database error"},
	}})
	m = asModel(t, updated)

	assert.Equal(t, "Database error", m.errBanner)
	assert.NotNil(t, cmd) // banner fade tick
}

func TestSessionProbeAnonymousIsSilent(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(sessionProbeMsg{err: &client.APIError{
		StatusCode: 401, Messages: []string{"Not authenticated"},
	}})
	m = asModel(t, updated)

	assert.Nil(t, m.user)
	assert.Empty(t, m.errBanner)
	assert.Nil(t, cmd)
}

func TestSessionProbeSetsUser(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(sessionProbeMsg{user: dto.UserResponse{ID: 2, Name: "Bob"}})
	m = asModel(t, updated)

	require.NotNil(t, m.user)
	assert.Equal(t, "Bob", m.user.Name)
}

func TestSessionProbeAdminTriggersEstimates(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(sessionProbeMsg{user: dto.UserResponse{ID: 1, Name: "Alice", IsAdmin: 1}})
	assert.NotNil(t, cmd)
}

func TestLoginResult(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenLogin
	m.busy["login"] = true
	m.loginPassword.SetValue("pw")

	updated, cmd := m.Update(loginResultMsg{user: dto.UserResponse{ID: 2, Name: "Bob"}})
	m = asModel(t, updated)

	assert.False(t, m.busy["login"])
	assert.Equal(t, screenList, m.screen)
	require.NotNil(t, m.user)
	assert.Equal(t, "Logged in as Bob", m.okBanner)
	assert.Empty(t, m.loginPassword.Value())
	assert.NotNil(t, cmd)
}

func TestLoginResultError(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenLogin
	m.busy["login"] = true

	updated, _ := m.Update(loginResultMsg{err: &client.APIError{
		StatusCode: 401, Messages: []string{"Incorrect username or password"},
	}})
	m = asModel(t, updated)

	assert.False(t, m.busy["login"])
	assert.Nil(t, m.user)
	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, "Incorrect username or password", m.errBanner)
}

func TestLogoutClearsSessionState(t *testing.T) {
	m := newTestModel(t)
	user := dto.UserResponse{ID: 1, Name: "Alice", IsAdmin: 1}
	m.user = &user
	m.token = "tok"
	m.estimates[1] = "~3d"

	updated, _ := m.Update(logoutDoneMsg{})
	m = asModel(t, updated)

	assert.Nil(t, m.user)
	assert.Empty(t, m.token)
	assert.Empty(t, m.estimates)
	assert.Equal(t, "Logged out", m.okBanner)
}

func TestMutationDoneRefetches(t *testing.T) {
	m := newTestModel(t)
	m.busy["state"] = true

	updated, cmd := m.Update(mutationDoneMsg{control: "state"})
	m = asModel(t, updated)

	assert.False(t, m.busy["state"])
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestMutationDoneErrorClearsBusy(t *testing.T) {
	m := newTestModel(t)
	m.busy["category"] = true

	updated, _ := m.Update(mutationDoneMsg{control: "category", err: &client.APIError{
		StatusCode: 403, Messages: []string{"Only administrators may change the category"},
	}})
	m = asModel(t, updated)

	// The waiting flag clears even when the server rejects the change.
	assert.False(t, m.busy["category"])
	assert.False(t, m.loading)
	assert.Equal(t, "Only administrators may change the category", m.errBanner)
}

func TestEstimatesApplied(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(estimatesMsg{
		token:  "tok",
		values: map[int64]string{1: "~120h", 2: "~3d"},
	})
	m = asModel(t, updated)

	assert.Equal(t, "tok", m.token)
	assert.Equal(t, "~120h", m.estimates[1])
	assert.Equal(t, "~3d", m.estimates[2])
}

func TestEstimatesErrorKeepsToken(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(estimatesMsg{token: "tok", err: errors.New("boom")})
	m = asModel(t, updated)

	assert.Equal(t, "tok", m.token)
	assert.Equal(t, "Failed to contact the server", m.errBanner)
}

func TestBannerFade(t *testing.T) {
	m := newTestModel(t)
	m.errBanner = "stale"
	m.bannerSeq = 3

	// A fade for an older banner must not clear a newer one.
	updated, _ := m.Update(bannerFadeMsg{seq: 2})
	m = asModel(t, updated)
	assert.Equal(t, "stale", m.errBanner)

	updated, _ = m.Update(bannerFadeMsg{seq: 3})
	m = asModel(t, updated)
	assert.Empty(t, m.errBanner)
}

func TestListNavigation(t *testing.T) {
	m := newTestModel(t)
	m.tickets = []dto.TicketResponse{{ID: 1}, {ID: 2}}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = asModel(t, updated)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = asModel(t, updated)
	assert.Equal(t, 1, m.cursor) // clamped at the end

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = asModel(t, updated)
	assert.Equal(t, 0, m.cursor)
}

func TestToggleExpand(t *testing.T) {
	m := newTestModel(t)
	m.tickets = []dto.TicketResponse{{ID: 7}}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = asModel(t, updated)
	assert.True(t, m.expanded[7])

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = asModel(t, updated)
	assert.False(t, m.expanded[7])
}

func TestCreateRequiresLogin(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = asModel(t, updated)

	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Log in to create a ticket", m.errBanner)
}

func TestStateToggleDeniedForStranger(t *testing.T) {
	m := newTestModel(t)
	user := dto.UserResponse{ID: 3, Name: "Carol"}
	m.user = &user
	m.tickets = []dto.TicketResponse{{ID: 1, OwnerID: 2, State: "Open"}}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = asModel(t, updated)

	assert.False(t, m.busy["state"])
	assert.Equal(t, "Not allowed to change the state of this ticket", m.errBanner)
}

func TestStateToggleByOwnerStartsMutation(t *testing.T) {
	m := newTestModel(t)
	user := dto.UserResponse{ID: 2, Name: "Bob"}
	m.user = &user
	m.tickets = []dto.TicketResponse{{ID: 1, OwnerID: 2, State: "Open"}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = asModel(t, updated)

	assert.True(t, m.busy["state"])
	assert.NotNil(t, cmd)
}

func TestCategoryCycleDeniedForNonAdmin(t *testing.T) {
	m := newTestModel(t)
	user := dto.UserResponse{ID: 2, Name: "Bob"}
	m.user = &user
	m.tickets = []dto.TicketResponse{{ID: 1, OwnerID: 2, State: "Open", Category: "inquiry"}}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = asModel(t, updated)

	assert.False(t, m.busy["category"])
	assert.Equal(t, "Only administrators may change the category", m.errBanner)
}

func TestNextCategoryWraps(t *testing.T) {
	assert.Equal(t, "maintenance", nextCategory("inquiry"))
	assert.Equal(t, "inquiry", nextCategory("payment"))
	assert.Equal(t, "inquiry", nextCategory("unknown"))
}
