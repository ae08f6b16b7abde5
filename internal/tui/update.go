package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-desk/internal/client"
	"github.com/spec-kit/ticket-desk/internal/domain"
)

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ticketsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.errorFrom(msg.err)
		}
		m.tickets = msg.tickets
		if m.cursor >= len(m.tickets) {
			m.cursor = max(0, len(m.tickets)-1)
		}
		if user, ok := m.domainUser(); ok && user.IsAdmin {
			return m, m.annotateEstimates()
		}
		return m, nil

	case sessionProbeMsg:
		if msg.err != nil {
			// Anonymous browsing is not an error state.
			if client.IsNotAuthenticated(msg.err) {
				return m, nil
			}
			return m, m.errorFrom(msg.err)
		}
		user := msg.user
		m.user = &user
		if user.IsAdmin == 1 {
			return m, m.annotateEstimates()
		}
		return m, nil

	case loginResultMsg:
		m.busy["login"] = false
		if msg.err != nil {
			return m, m.errorFrom(msg.err)
		}
		user := msg.user
		m.user = &user
		m.screen = screenList
		m.loginPassword.SetValue("")
		cmds := []tea.Cmd{m.setSuccess("Logged in as " + user.Name)}
		if user.IsAdmin == 1 {
			cmds = append(cmds, m.annotateEstimates())
		}
		return m, tea.Batch(cmds...)

	case logoutDoneMsg:
		if msg.err != nil {
			return m, m.errorFrom(msg.err)
		}
		m.user = nil
		m.token = ""
		m.estimates = make(map[int64]string)
		return m, m.setSuccess("Logged out")

	case mutationDoneMsg:
		// The waiting flag clears independent of success or failure.
		m.busy[msg.control] = false
		if msg.err != nil {
			return m, m.errorFrom(msg.err)
		}
		m.loading = true
		return m, tea.Batch(m.fetchTickets(), m.setSuccess("Saved"))

	case estimatesMsg:
		if msg.token != "" {
			m.token = msg.token
			m.tokenExp = msg.tokenExp
		}
		if msg.err != nil {
			return m, m.errorFrom(msg.err)
		}
		for id, val := range msg.values {
			m.estimates[id] = val
		}
		return m, nil

	case bannerFadeMsg:
		if msg.seq == m.bannerSeq {
			m.errBanner = ""
			m.okBanner = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenList:
			return m.updateList(msg)
		case screenLogin:
			return m.updateLogin(msg)
		case screenCreate:
			return m.updateCreate(msg)
		case screenReply:
			return m.updateReply(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tickets)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Toggle):
		if ticket, ok := m.selectedTicket(); ok {
			m.expanded[ticket.ID] = !m.expanded[ticket.ID]
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.fetchTickets()

	case key.Matches(msg, keys.Login):
		if m.user == nil {
			m.screen = screenLogin
			m.loginFocus = 0
			m.loginEmail.Focus()
			m.loginPassword.Blur()
			return m, nil
		}
		return m, m.logoutCmd()

	case key.Matches(msg, keys.Create):
		if m.user == nil {
			return m, m.setError("Log in to create a ticket")
		}
		m.screen = screenCreate
		m.createFocus = 0
		m.categoryIdx = 0
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.titleInput.Focus()
		m.descInput.Blur()
		return m, nil

	case key.Matches(msg, keys.Reply):
		user, ok := m.domainUser()
		if !ok {
			return m, m.setError("Log in to reply")
		}
		ticket, selected := m.selectedTicket()
		if !selected {
			return m, nil
		}
		if !domain.CanReply(user, domainTicket(ticket)) {
			return m, m.setError("Replies are limited to the owner or an admin while the ticket is open")
		}
		m.screen = screenReply
		m.replyInput.SetValue("")
		m.replyInput.Focus()
		return m, nil

	case key.Matches(msg, keys.ToggleState):
		user, ok := m.domainUser()
		if !ok {
			return m, m.setError("Log in to change ticket state")
		}
		ticket, selected := m.selectedTicket()
		if !selected {
			return m, nil
		}
		target := domain.TicketStateClosed
		if ticket.State == string(domain.TicketStateClosed) {
			target = domain.TicketStateOpen
		}
		if !domain.CanSetState(user, domainTicket(ticket), target) {
			return m, m.setError("Not allowed to change the state of this ticket")
		}
		control := "state"
		if m.busy[control] {
			return m, nil
		}
		m.busy[control] = true
		api := m.api
		id := ticket.ID
		return m, m.mutate(control, func(ctx context.Context) error {
			return api.SetTicketState(ctx, id, string(target))
		})

	case key.Matches(msg, keys.CycleCategory):
		user, ok := m.domainUser()
		if !ok || !domain.CanEditCategory(user) {
			return m, m.setError("Only administrators may change the category")
		}
		ticket, selected := m.selectedTicket()
		if !selected {
			return m, nil
		}
		control := "category"
		if m.busy[control] {
			return m, nil
		}
		m.busy[control] = true
		api := m.api
		id := ticket.ID
		next := nextCategory(ticket.Category)
		return m, m.mutate(control, func(ctx context.Context) error {
			return api.SetTicketCategory(ctx, id, next)
		})
	}

	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.screen = screenList
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.loginEmail.Focus()
			m.loginPassword.Blur()
		} else {
			m.loginEmail.Blur()
			m.loginPassword.Focus()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		if m.busy["login"] {
			return m, nil
		}
		email := strings.TrimSpace(m.loginEmail.Value())
		password := m.loginPassword.Value()
		if email == "" || password == "" {
			return m, m.setError("Email and password are required")
		}
		m.busy["login"] = true
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	} else {
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.screen = screenList
		return m, nil

	case msg.Type == tea.KeyTab:
		m.createFocus = (m.createFocus + 1) % 3
		m.syncCreateFocus()
		return m, nil

	case msg.Type == tea.KeyShiftTab:
		m.createFocus = (m.createFocus + 2) % 3
		m.syncCreateFocus()
		return m, nil

	case m.createFocus == 1 && (msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight):
		n := len(domain.Categories())
		if msg.Type == tea.KeyRight {
			m.categoryIdx = (m.categoryIdx + 1) % n
		} else {
			m.categoryIdx = (m.categoryIdx + n - 1) % n
		}
		return m, nil

	case msg.Type == tea.KeyCtrlD:
		if m.busy["create"] {
			return m, nil
		}
		title := strings.TrimSpace(m.titleInput.Value())
		description := strings.TrimSpace(m.descInput.Value())
		if title == "" || description == "" {
			return m, m.setError("Title and description are required")
		}
		m.busy["create"] = true
		api := m.api
		category := string(domain.Categories()[m.categoryIdx])
		m.screen = screenList
		return m, m.mutate("create", func(ctx context.Context) error {
			return api.CreateTicket(ctx, title, category, description)
		})
	}

	var cmd tea.Cmd
	switch m.createFocus {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 2:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateReply(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.screen = screenList
		return m, nil

	case msg.Type == tea.KeyCtrlD:
		if m.busy["reply"] {
			return m, nil
		}
		text := strings.TrimSpace(m.replyInput.Value())
		if text == "" {
			return m, m.setError("Text block content is required")
		}
		ticket, selected := m.selectedTicket()
		if !selected {
			m.screen = screenList
			return m, nil
		}
		m.busy["reply"] = true
		api := m.api
		id := ticket.ID
		m.screen = screenList
		return m, m.mutate("reply", func(ctx context.Context) error {
			return api.AddTextBlock(ctx, id, text)
		})
	}

	var cmd tea.Cmd
	m.replyInput, cmd = m.replyInput.Update(msg)
	return m, cmd
}

func (m *Model) syncCreateFocus() {
	m.titleInput.Blur()
	m.descInput.Blur()
	switch m.createFocus {
	case 0:
		m.titleInput.Focus()
	case 2:
		m.descInput.Focus()
	}
}

func nextCategory(current string) string {
	categories := domain.Categories()
	for i, c := range categories {
		if string(c) == current {
			return string(categories[(i+1)%len(categories)])
		}
	}
	return string(categories[0])
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
