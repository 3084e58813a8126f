package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// generateCmd runs a single generation from the command line:
// voiceclone generate --voice <id|name> --text "..." [--output out.wav]
func generateCmd() {
	var voice, text, textFile, output string

	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--voice", "-V":
			if i+1 < len(args) {
				voice = args[i+1]
				i++
			}
		case "--text", "-t":
			if i+1 < len(args) {
				text = args[i+1]
				i++
			}
		case "--text-file":
			if i+1 < len(args) {
				textFile = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--debug", "-d":
			logger.SetLevel(logger.DEBUG)
		default:
			fmt.Printf("Unknown flag: %s\n", args[i])
			generateHelp()
			os.Exit(1)
		}
	}

	text, err := resolveGenerateText(text, textFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(text) == "" {
		generateHelp()
		os.Exit(1)
	}

	app, err := internal.NewApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	st := app.Studio()
	ctx := context.Background()

	if err := st.Registry.Refresh(ctx); err != nil {
		fmt.Printf("Error loading voices: %v\n", err)
		os.Exit(1)
	}

	if voice != "" {
		id, ok := st.Registry.ResolveName(voice)
		if !ok {
			fmt.Printf("Voice %q not found. Run: voiceclone voices list\n", voice)
			os.Exit(1)
		}
		if err := st.Registry.Select(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The text goes through as given. Anything over the limit is rejected
	// up front rather than trimmed behind the caller's back.
	result, err := st.Generation.Generate(ctx, text)
	if err != nil {
		fmt.Printf("Generation failed: %v\n", err)
		os.Exit(1)
	}

	// Print the URL before touching the filesystem. The generation is
	// already charged, and a failed save must not strand it.
	fmt.Printf("Generated %s (remaining: %d)\n", result.GenerationID, result.Remaining)
	fmt.Printf("Download: %s\n", result.DownloadURL)

	if output == "" {
		return
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	f, err := os.Create(output)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := app.API.Download(ctx, result.DownloadURL, f)
	if err != nil {
		fmt.Printf("Download failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s (%d bytes)\n", output, n)
}

// resolveGenerateText picks the input text from the --text and --text-file
// flags. The text is returned exactly as given, whatever its length.
func resolveGenerateText(text, textFile string) (string, error) {
	if text != "" && textFile != "" {
		return "", fmt.Errorf("use either --text or --text-file, not both")
	}
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return string(data), nil
	}
	return text, nil
}

func generateHelp() {
	fmt.Println("\nUsage: voiceclone generate --text <text> [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --voice <id|name>   Voice to use (defaults to your first voice)")
	fmt.Println("  --text <text>       Text to generate speech for")
	fmt.Println("  --text-file <path>  Read the text from a file")
	fmt.Println("  --output <path>     Download the audio to a file")
	fmt.Println("  --debug             Enable debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  voiceclone generate --text 'Hello there'")
	fmt.Println("  voiceclone generate --voice Narrator --text-file script.txt --output out.wav")
}
