package auth

import "testing"

func TestNewAuthCommand(t *testing.T) {
	cmd := NewAuthCommand()

	if cmd == nil {
		t.Fatalf("expected non-nil command")
	}

	if cmd.Use != "auth" {
		t.Errorf("expected command name 'auth', got %q", cmd.Use)
	}

	if cmd.RunE == nil {
		t.Error("expected command to have non-nil RunE()")
	}

	if !cmd.HasSubCommands() {
		t.Error("expected command to have subcommands")
	}

	allowedCommands := map[string]struct{}{
		"login":  {},
		"signup": {},
		"logout": {},
		"status": {},
	}

	for _, subcmd := range cmd.Commands() {
		if _, found := allowedCommands[subcmd.Name()]; !found {
			t.Errorf("unexpected subcommand %q", subcmd.Name())
		}
		delete(allowedCommands, subcmd.Name())
	}

	for name := range allowedCommands {
		t.Errorf("missing subcommand %q", name)
	}
}

func TestLoginCommandFlags(t *testing.T) {
	cmd := newLoginCommand()

	if cmd.Flags().Lookup("email") == nil {
		t.Error("expected login to have an --email flag")
	}
	if cmd.Flags().Lookup("password") != nil {
		t.Error("passwords must never be accepted as flags")
	}
}
