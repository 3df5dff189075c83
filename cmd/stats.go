package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/aicontext-cli/internal/analysis"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

var (
	statsVerbose bool
	statsFormat  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch statsFormat {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("invalid --format %q (use text, json or yaml)", statsFormat)
		}
		m, layout, err := loadLayout(true)
		if err != nil {
			return err
		}
		st, err := newAnalyzer(m).Stats(layout)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch statsFormat {
		case "json":
			b, err := utils.PrettyJSON(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		case "yaml":
			b, err := yaml.Marshal(st)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			fmt.Fprint(out, string(b))
		default:
			showStats(newConsole(cmd), st, statsVerbose)
		}
		return nil
	},
}

func showStats(con *report.Console, st *analysis.Stats, verbose bool) {
	con.Newline()
	con.Heading("Knowledge Base Statistics")
	con.Newline()
	con.Info(fmt.Sprintf("Total files: %d", st.TotalFiles))
	con.Info("Total words: " + report.Count(st.TotalWords))
	con.Info("Total lines: " + report.Count(st.TotalLines))
	con.Info("Total tokens: " + report.Count(st.TotalTokens))
	con.Info(fmt.Sprintf("Conversation entries: %d", st.ConversationEntries))
	con.Newline()

	if st.TotalFiles > 0 {
		con.Info(fmt.Sprintf("Most active file: %s (%s words)", st.MostActive.Name, report.Count(st.MostActive.Words)))
	}
	if !st.LastModified.IsZero() {
		con.Info("Last modified: " + report.Date(st.LastModified))
	}

	if verbose && len(st.Files) > 0 {
		con.Newline()
		con.Heading("Files")
		con.Newline()
		for _, f := range st.Files {
			con.Dim(fmt.Sprintf("  %s: %s words, %s tokens (%s)",
				f.Path, report.Count(f.Words), report.Count(f.Tokens), report.Date(f.LastModified)))
		}
	}
	con.Newline()
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVarP(&statsVerbose, "verbose", "v", false, "list every file with its modification date")
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "output format: text, json or yaml")
}
