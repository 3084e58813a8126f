package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
)

func authLoginCmd(email string) error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(email)
	if err != nil {
		return err
	}

	sess, err := app.Guard.SignIn(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s\n", sess.Email)
	return nil
}

func authSignupCmd(email string) error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(email)
	if err != nil {
		return err
	}

	if err := app.Guard.SignUp(context.Background(), email, password); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	fmt.Println("Account created. Check your inbox if email confirmation is enabled, then run: voiceclone auth login")
	return nil
}

func authLogoutCmd() error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	if err := app.Guard.SignOut(context.Background()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Println("Signed out")
	return nil
}

func authStatusCmd() error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	sess, err := app.Store.Load()
	if err != nil {
		if err == auth.ErrNoSession {
			return fmt.Errorf("not signed in. run: voiceclone auth login")
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	status := "active"
	if sess.IsExpired() {
		status = "expired"
	} else if sess.NeedsRefresh() {
		status = "needs refresh"
	}

	fmt.Println("\nSession:")
	fmt.Println("--------")
	fmt.Printf("  Email:   %s\n", sess.Email)
	fmt.Printf("  Status:  %s\n", status)
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("  Expires: %s\n", sess.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func promptCredentials(email string) (string, string, error) {
	var err error
	if strings.TrimSpace(email) == "" {
		email, err = promptLine("Email")
		if err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(email) == "" {
		return "", "", fmt.Errorf("email is required")
	}

	password, err := promptMasked("Password")
	if err != nil {
		return "", "", err
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}
	return strings.TrimSpace(email), password, nil
}

func promptLine(label string) (string, error) {
	rl, err := readline.New(label + ": ")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptMasked(label string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:     label + ": ",
		EnableMask: true,
		MaskRune:   '*',
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return line, nil
}
