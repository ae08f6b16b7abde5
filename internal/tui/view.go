package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-desk/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	closedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	estimateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	detailStyle   = lipgloss.NewStyle().PaddingLeft(4)
	formStyle     = lipgloss.NewStyle().Padding(1, 2)
)

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenCreate:
		body = m.viewCreate()
	case screenReply:
		body = m.viewReply()
	default:
		body = m.viewList()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewStatus(),
	)
}

func (m Model) viewHeader() string {
	who := "anonymous"
	if m.user != nil {
		who = m.user.Name
		if m.user.IsAdmin == 1 {
			who += " (admin)"
		}
	}
	return titleStyle.Render("Ticket Desk") + dimStyle.Render("  "+who)
}

func (m Model) viewStatus() string {
	switch {
	case m.errBanner != "":
		return errStyle.Render("✗ " + m.errBanner)
	case m.okBanner != "":
		return okStyle.Render("✓ " + m.okBanner)
	case m.loading:
		return dimStyle.Render("loading…")
	}
	return dimStyle.Render("j/k move · enter expand · n new · r reply · x close/reopen · c category · l login · q quit")
}

func (m Model) viewList() string {
	if len(m.tickets) == 0 {
		if m.loading {
			return dimStyle.Render("\n  fetching tickets…\n")
		}
		return dimStyle.Render("\n  no tickets yet\n")
	}

	var b strings.Builder
	for i, t := range m.tickets {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		state := openStyle.Render(t.State)
		if t.State == string(domain.TicketStateClosed) {
			state = closedStyle.Render(t.State)
		}

		line := fmt.Sprintf("%s[%s] %s", marker, state, t.Title)
		line += dimStyle.Render(fmt.Sprintf("  %s · %s · %s",
			t.Category, t.Owner, t.SubmittedAt.Local().Format("2006-01-02 15:04")))
		if est, ok := m.estimates[t.ID]; ok {
			line += "  " + estimateStyle.Render(est)
		}
		b.WriteString(line + "\n")

		if m.expanded[t.ID] {
			b.WriteString(detailStyle.Render(t.InitialText) + "\n")
			for _, block := range t.TextBlocks {
				meta := dimStyle.Render(fmt.Sprintf("%s · %s",
					block.Author, block.SubmittedAt.Local().Format("2006-01-02 15:04")))
				b.WriteString(detailStyle.Render("↳ "+block.Text+"  "+meta) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString("Log in\n\n")
	b.WriteString(m.loginEmail.View() + "\n")
	b.WriteString(m.loginPassword.View() + "\n\n")
	b.WriteString(dimStyle.Render("tab switch · enter submit · esc back"))
	return formStyle.Render(b.String())
}

func (m Model) viewCreate() string {
	categories := domain.Categories()
	var cats []string
	for i, c := range categories {
		label := string(c)
		if i == m.categoryIdx {
			label = cursorStyle.Render("[" + label + "]")
		}
		cats = append(cats, label)
	}

	var b strings.Builder
	b.WriteString("New ticket\n\n")
	b.WriteString(m.titleInput.View() + "\n\n")
	b.WriteString("category: " + strings.Join(cats, " ") + "\n\n")
	b.WriteString(m.descInput.View() + "\n\n")
	b.WriteString(dimStyle.Render("tab switch · ←/→ category · ctrl+d submit · esc back"))
	return formStyle.Render(b.String())
}

func (m Model) viewReply() string {
	ticket, _ := m.selectedTicket()
	var b strings.Builder
	b.WriteString("Reply to: " + ticket.Title + "\n\n")
	b.WriteString(m.replyInput.View() + "\n\n")
	b.WriteString(dimStyle.Render("ctrl+d submit · esc back"))
	return formStyle.Render(b.String())
}
