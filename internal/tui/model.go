// Package tui is the terminal client: a single top-level model holding the
// ticket list, the session user, the estimation token and transient UI
// state. Every mutation triggers a full ticket list refetch so the view
// always reflects server truth after a write.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/client"
	"github.com/spec-kit/ticket-desk/internal/domain"
)

// bannerTTL is how long error/success banners stay visible.
const bannerTTL = 5 * time.Second

type screen int

const (
	screenList screen = iota
	screenLogin
	screenCreate
	screenReply
)

// Messages delivered through the bubbletea loop.

type ticketsLoadedMsg struct {
	tickets []dto.TicketResponse
	err     error
}

// sessionProbeMsg is the result of the startup current-user check. A "Not
// authenticated" rejection is expected for anonymous browsing and is not
// surfaced as an error.
type sessionProbeMsg struct {
	user dto.UserResponse
	err  error
}

type loginResultMsg struct {
	user dto.UserResponse
	err  error
}

type logoutDoneMsg struct {
	err error
}

// mutationDoneMsg clears the named control's waiting flag regardless of
// outcome; on success the ticket list is refetched.
type mutationDoneMsg struct {
	control string
	err     error
}

// estimatesMsg carries bulk estimate annotations plus the token used to
// fetch them, so the model can reuse it until expiry.
type estimatesMsg struct {
	token    string
	tokenExp time.Time
	values   map[int64]string
	err      error
}

type bannerFadeMsg struct {
	seq int
}

// Model is the top-level bubbletea model.
type Model struct {
	api *client.Client

	screen  screen
	tickets []dto.TicketResponse
	user    *dto.UserResponse

	token    string
	tokenExp time.Time
	// estimates maps ticket id to a rendered estimate annotation.
	estimates map[int64]string

	cursor   int
	expanded map[int64]bool

	errBanner string
	okBanner  string
	bannerSeq int
	loading   bool
	busy      map[string]bool

	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    int

	titleInput  textinput.Model
	descInput   textarea.Model
	categoryIdx int
	createFocus int

	replyInput textarea.Model

	width  int
	height int
}

// NewModel builds the initial model.
func NewModel(api *client.Client) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "describe the problem"
	desc.SetHeight(5)

	reply := textarea.New()
	reply.Placeholder = "write a reply"
	reply.SetHeight(4)

	return Model{
		api:           api,
		screen:        screenList,
		estimates:     make(map[int64]string),
		expanded:      make(map[int64]bool),
		busy:          make(map[string]bool),
		loginEmail:    email,
		loginPassword: password,
		titleInput:    title,
		descInput:     desc,
		replyInput:    reply,
		loading:       true,
	}
}

// Init fetches the ticket list and probes the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTickets(), m.probeSession())
}

func (m Model) fetchTickets() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		tickets, err := api.FetchTickets(context.Background())
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

func (m Model) probeSession() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		user, err := api.CurrentUser(context.Background())
		return sessionProbeMsg{user: user, err: err}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		user, err := api.Login(context.Background(), username, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return logoutDoneMsg{err: api.Logout(context.Background())}
	}
}

func (m Model) mutate(control string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{control: control, err: fn(context.Background())}
	}
}

// annotateEstimates fetches (or reuses) the estimation token and asks the
// estimator for every ticket in one sweep. Admin only.
func (m Model) annotateEstimates() tea.Cmd {
	api := m.api
	tickets := m.tickets
	token := m.token
	tokenExp := m.tokenExp
	isAdmin := 0
	if m.user != nil {
		isAdmin = m.user.IsAdmin
	}
	return func() tea.Msg {
		ctx := context.Background()

		if token == "" || time.Now().After(tokenExp) {
			fresh, err := api.AuthToken(ctx)
			if err != nil {
				return estimatesMsg{err: err}
			}
			token = fresh
			// The server signs for 60 seconds; refresh slightly early.
			tokenExp = time.Now().Add(55 * time.Second)
		}

		values := make(map[int64]string, len(tickets))
		for _, t := range tickets {
			result, err := api.EstimateTime(ctx, token, t.Title, t.Category, isAdmin)
			if err != nil {
				return estimatesMsg{token: token, tokenExp: tokenExp, err: err}
			}
			switch {
			case result.EstimatedHours != nil:
				values[t.ID] = fmt.Sprintf("~%dh", *result.EstimatedHours)
			case result.EstimatedDays != nil:
				values[t.ID] = fmt.Sprintf("~%dd", *result.EstimatedDays)
			}
		}
		return estimatesMsg{token: token, tokenExp: tokenExp, values: values}
	}
}

func (m *Model) setError(messages ...string) tea.Cmd {
	if len(messages) == 0 {
		return nil
	}
	m.errBanner = messages[0]
	if apiMsgs := messages; len(apiMsgs) > 1 {
		m.errBanner = fmt.Sprintf("%s (+%d more)", messages[0], len(messages)-1)
	}
	m.okBanner = ""
	return m.fadeBanner()
}

func (m *Model) setSuccess(message string) tea.Cmd {
	m.okBanner = message
	m.errBanner = ""
	return m.fadeBanner()
}

func (m *Model) fadeBanner() tea.Cmd {
	m.bannerSeq++
	seq := m.bannerSeq
	return tea.Tick(bannerTTL, func(time.Time) tea.Msg {
		return bannerFadeMsg{seq: seq}
	})
}

func (m *Model) errorFrom(err error) tea.Cmd {
	if apiErr, ok := err.(*client.APIError); ok {
		return m.setError(apiErr.Messages...)
	}
	return m.setError("Failed to contact the server")
}

// domainUser converts the wire user for policy checks.
func (m Model) domainUser() (domain.User, bool) {
	if m.user == nil {
		return domain.User{}, false
	}
	return domain.User{ID: m.user.ID, Name: m.user.Name, Email: m.user.Email, IsAdmin: m.user.IsAdmin == 1}, true
}

func domainTicket(t dto.TicketResponse) domain.Ticket {
	return domain.Ticket{
		ID:      t.ID,
		OwnerID: t.OwnerID,
		State:   domain.TicketState(t.State),
	}
}

func (m Model) selectedTicket() (dto.TicketResponse, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tickets) {
		return dto.TicketResponse{}, false
	}
	return m.tickets[m.cursor], true
}
