package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/aicontext-cli/internal/ai"
)

var integrateForce bool

var integrateCmd = &cobra.Command{
	Use:   "integrate <vendor>",
	Short: "Write a ready-to-paste instructions file for a chat tool",
	Long: fmt.Sprintf(`Write <VENDOR>_INSTRUCTIONS.md at the project root with a prompt that walks the
assistant through the knowledge base. Supported vendors: %s.

The file is added to an existing .gitignore.`, strings.Join(ai.Vendors(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := ai.LookupVendor(args[0])
		if err != nil {
			return err
		}
		m, layout, err := loadLayout(true)
		if err != nil {
			return err
		}
		if err := layout.RequireInitialized(); err != nil {
			return err
		}
		data := ai.PromptData{
			InstructionsFile: m.Instructions.Target,
			GeneralDir:       m.GeneralDir,
			StructuredDir:    m.StructuredDir,
			Files:            m.General,
		}
		path, err := v.WriteInstructions(layout.Root, data, integrateForce)
		if err != nil {
			return err
		}
		con := newConsole(cmd)
		con.Success(fmt.Sprintf("%s integration written to %s", v.Display, path))
		ignored, err := v.IgnoreFile(layout.Root)
		if err != nil {
			con.Warn(fmt.Sprintf("could not update .gitignore: %v", err))
		} else if ignored {
			con.Dim("  added " + v.File + " to .gitignore")
		}
		con.Newline()
		con.Info(fmt.Sprintf("Paste the prompt from %s at the start of every %s session.", v.File, v.Display))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(integrateCmd)
	integrateCmd.Flags().BoolVarP(&integrateForce, "force", "f", false, "overwrite an existing instructions file")
}
