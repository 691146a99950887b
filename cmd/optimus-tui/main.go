package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/optimuscode/optimus/cmd/optimus-tui/ui"
)

func main() {
	apiURL := os.Getenv("OPTIMUS_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	m := ui.NewModel(apiURL)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
