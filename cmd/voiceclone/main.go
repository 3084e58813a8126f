package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
	authcmd "github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal/auth"
	generationscmd "github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal/generations"
	voicescmd "github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal/voices"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/config"
)

const logo = "🎙"

func printVersion() {
	fmt.Printf("%s voiceclone %s\n", logo, internal.FormatVersion())
	build, goVer := internal.FormatBuildInfo()
	if build != "" {
		fmt.Printf("  Build: %s\n", build)
	}
	if goVer != "" {
		fmt.Printf("  Go: %s\n", goVer)
	}
}

// parseGlobalFlags extracts the --config override from args, returning
// the remaining args. Only the first occurrence before or after the
// command name is consumed; subcommand flags are left alone.
func parseGlobalFlags(args []string) ([]string, string, error) {
	filtered := make([]string, 0, len(args))
	var override string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config":
			if i+1 >= len(args) || strings.TrimSpace(args[i+1]) == "" {
				return nil, "", fmt.Errorf("--config requires a file path")
			}
			override = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			v := strings.TrimPrefix(arg, "--config=")
			if strings.TrimSpace(v) == "" {
				return nil, "", fmt.Errorf("--config requires a file path")
			}
			override = v
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, override, nil
}

func main() {
	args, configOverride, err := parseGlobalFlags(os.Args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if configOverride != "" {
		os.Setenv(config.EnvVoiceCloneConfig, configOverride)
	}
	os.Args = args

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "studio":
		studioCmd()
	case "generate":
		generateCmd()
	case "usage":
		usageCmd()
	case "auth":
		runGroup(authcmd.NewAuthCommand())
	case "voices":
		runGroup(voicescmd.NewVoicesCommand())
	case "generations":
		runGroup(generationscmd.NewGenerationsCommand())
	case "version", "--version", "-v":
		printVersion()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printHelp()
		os.Exit(1)
	}
}

// runGroup executes a cobra subcommand group with the remaining args.
func runGroup(cmd *cobra.Command) {
	cmd.SetArgs(os.Args[2:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf("%s voiceclone - Voice cloning studio v%s\n\n", logo, internal.FormatVersion())
	fmt.Println("Usage: voiceclone <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  studio       Open the interactive studio dashboard")
	fmt.Println("  generate     Generate speech from text with a cloned voice")
	fmt.Println("  usage        Show your generation quota")
	fmt.Println("  auth         Manage your session (login, signup, logout, status)")
	fmt.Println("  voices       Manage your voice library (list, upload)")
	fmt.Println("  generations  Browse past generations (list, download)")
	fmt.Println("  version      Show version information")
}
