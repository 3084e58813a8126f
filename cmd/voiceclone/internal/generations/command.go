package generations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/utils"
)

// NewGenerationsCommand groups the generation history subcommands.
func NewGenerationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generations",
		Short: "Browse past generations (list, download)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newListCommand(),
		newDownloadCommand(),
	)

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your past generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generationsListCmd()
		},
	}
}

func newDownloadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <generation-id>",
		Short: "Download the audio of a past generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generationsDownloadCmd(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to <generation-id>.wav)")

	return cmd
}

func generationsListCmd() error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	records, err := app.API.ListGenerations(context.Background())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No generations yet.")
		return nil
	}

	fmt.Printf("%-38s %-12s %s\n", "ID", "VOICE", "TEXT")
	for _, r := range records {
		fmt.Printf("%-38s %-12s %s\n", r.ID, r.VoiceID, utils.Truncate(strings.ReplaceAll(r.Text, "\n", " "), 60))
	}
	return nil
}

func generationsDownloadCmd(id, output string) error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	records, err := app.API.ListGenerations(context.Background())
	if err != nil {
		return err
	}

	var downloadURL string
	for _, r := range records {
		if r.ID == id {
			downloadURL = r.DownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("generation %s not found", id)
	}

	if output == "" {
		output = id + ".wav"
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := app.API.Download(context.Background(), downloadURL, f)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("Saved %s (%d bytes)\n", output, n)
	return nil
}
