package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

var promptRaw bool

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the new chat prompt, ready to paste",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, layout, err := loadLayout(true)
		if err != nil {
			return err
		}
		if !utils.Exists(layout.PromptFile) {
			return &kb.NotInitializedError{Path: layout.PromptFile}
		}
		text, err := utils.ReadText(layout.PromptFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if promptRaw || noColor || cfg.NoColor || !isTerminal(out) {
			fmt.Fprint(out, text)
			return nil
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		rendered, err := r.Render(text)
		if err != nil {
			return fmt.Errorf("render prompt: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&promptRaw, "raw", false, "print the markdown source without rendering")
}
