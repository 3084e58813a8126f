package voices

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
)

// NewVoicesCommand groups the voice library subcommands.
func NewVoicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "Manage your voice library (list, upload)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newListCommand(),
		newUploadCommand(),
	)

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your cloned voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return voicesListCmd()
		},
	}
}

func newUploadCommand() *cobra.Command {
	var (
		name string
		file string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload an audio sample to clone a new voice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return voicesUploadCmd(name, file)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the new voice")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the audio sample (.wav/.mp3)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func voicesListCmd() error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	voices, err := app.API.ListVoices(context.Background())
	if err != nil {
		return err
	}

	if len(voices) == 0 {
		fmt.Println("No voices yet. Upload one with: voiceclone voices upload --name <name> --file <sample>")
		return nil
	}

	fmt.Printf("%-38s %-24s %s\n", "ID", "NAME", "DURATION")
	for _, v := range voices {
		fmt.Printf("%-38s %-24s %.1fs\n", v.ID, v.Name, v.Duration)
	}
	return nil
}

func voicesUploadCmd(name, file string) error {
	app, err := internal.NewApp()
	if err != nil {
		return err
	}

	st := app.Studio()
	if err := st.Uploads.Begin(name); err != nil {
		return err
	}

	asset, err := st.Uploads.UploadFromFile(context.Background(), file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("Voice %q uploaded (id: %s)\n", asset.Name, asset.ID)
	return nil
}
