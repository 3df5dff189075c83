package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/aicontext-cli/internal/ai"
	"github.com/KaramelBytes/aicontext-cli/internal/analysis"
	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
	"github.com/KaramelBytes/aicontext-cli/internal/watch"
)

var (
	tokensVerbose bool
	tokensAll     bool
	tokensWatch   bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Estimate the token usage of the knowledge base",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, layout, err := loadLayout(true)
		if err != nil {
			return err
		}
		if err := layout.RequireInitialized(); err != nil {
			return err
		}
		catalog, err := modelCatalog()
		if err != nil {
			return err
		}
		an := newAnalyzer(m)
		con := newConsole(cmd)

		run := func() error {
			records, err := an.Analyze(layout)
			if err != nil {
				return err
			}
			showTokens(con, an.Summarize(records), catalog, tokensVerbose, tokensAll)
			return nil
		}
		if err := run(); err != nil {
			return err
		}
		if !tokensWatch {
			return nil
		}
		return watchTokens(cmd.Context(), con, layout, run)
	},
}

func watchTokens(parent context.Context, con *report.Console, layout kb.Layout, run func() error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	con.Dim("Watching for changes (Ctrl+C to stop)...")
	w := watch.New([]string{layout.GeneralDir, layout.StructuredDir}, func() {
		if err := run(); err != nil {
			con.Error(err)
		}
	}, watch.WithLogger(logger))
	return w.Run(ctx)
}

// modelCatalog returns the built-in catalog merged with the configured JSON file, if any.
func modelCatalog() (ai.Catalog, error) {
	c := ai.DefaultCatalog()
	if cfg.ModelsCatalog == "" {
		return c, nil
	}
	extra, err := ai.LoadCatalogFromJSON(cfg.ModelsCatalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("merged models catalog", zap.String("path", cfg.ModelsCatalog), zap.Int("models", len(extra)))
	return c.Merge(extra), nil
}

func showTokens(con *report.Console, s analysis.UsageSummary, catalog ai.Catalog, verbose, all bool) {
	con.Newline()
	con.Heading("Token Usage Analysis")
	con.Newline()
	con.Info("Total tokens: " + report.Count(s.TotalTokens))
	con.Info("Total words: " + report.Count(s.TotalWords))
	con.Info("Total lines: " + report.Count(s.TotalLines))
	con.Newline()

	if verbose {
		con.Heading("By Category")
		con.Newline()
		cats := make([]string, 0, len(s.ByCategory))
		for c := range s.ByCategory {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			tokens := s.ByCategory[analysis.Category(c)]
			con.Info(fmt.Sprintf("  %s: %s tokens (%s)", c, report.Count(tokens), report.Percent(tokens, s.TotalTokens)))
		}
		con.Newline()

		con.Heading("Files")
		con.Newline()
		for _, f := range s.Files {
			con.Dim(fmt.Sprintf("  %s: %s tokens", f.Path, report.Count(f.Tokens)))
		}
		con.Newline()
	}

	if all {
		con.Heading("Context Window Fit")
		con.Newline()
		for _, fit := range catalog.ContextFit(s.TotalTokens) {
			mark, suffix := "✓", ""
			if !fit.Fits {
				mark, suffix = "✗", " (does not fit)"
			}
			line := fmt.Sprintf("  %s %s: %s of %s tokens", mark, fit.Model.Name,
				report.Percent(s.TotalTokens, fit.Model.ContextTokens), report.Count(fit.Model.ContextTokens))
			if fit.CostUSD > 0 {
				line += fmt.Sprintf(", ~$%.4f per paste", fit.CostUSD)
			}
			con.Info(line + suffix)
		}
		con.Newline()
	}

	con.Heading("Recommendations")
	con.Newline()
	for _, r := range s.Recommendations {
		con.Dim("  • " + r)
	}
	con.Newline()
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVarP(&tokensVerbose, "verbose", "v", false, "show per-category and per-file breakdown")
	tokensCmd.Flags().BoolVarP(&tokensAll, "all", "a", false, "show how the knowledge base fits each model's context window")
	tokensCmd.Flags().BoolVarP(&tokensWatch, "watch", "w", false, "re-run the analysis when knowledge base files change")
}
