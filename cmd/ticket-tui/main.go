package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-desk/internal/client"
	"github.com/spec-kit/ticket-desk/internal/tui"
)

func main() {
	apiBase := envOr("TICKET_API_URL", "http://127.0.0.1:3001")
	estimatorBase := envOr("TICKET_ESTIMATOR_URL", "http://127.0.0.1:3002")

	api, err := client.New(apiBase, estimatorBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build client: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(api), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
