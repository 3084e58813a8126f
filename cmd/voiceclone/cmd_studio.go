package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/tui"
)

// studioCmd opens the interactive dashboard. It requires a valid session
// up front so the TUI never starts half-authenticated.
func studioCmd() {
	app, err := internal.NewApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sess, err := app.Guard.CurrentSession(context.Background())
	if err != nil {
		var authErr *auth.AuthError
		if errors.Is(err, auth.ErrNoSession) || errors.As(err, &authErr) {
			fmt.Println("Not signed in. Run: voiceclone auth login")
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}

	model := tui.NewModel(app.Studio(), sess.Email)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running studio: %v\n", err)
		os.Exit(1)
	}
}
