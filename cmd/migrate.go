package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/reconcile"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
)

var (
	migrateForce   bool
	migrateVerbose bool
	migrateDryRun  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add knowledge base files that are missing, never overwriting existing ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, layout, err := loadLayout(true)
		if err != nil {
			return err
		}
		tmpl, err := manifest.Templates(cfg.Template, cfg.TemplatesDir)
		if err != nil {
			return err
		}

		con := newConsole(cmd)
		var rep report.Reporter = report.Nop{}
		if migrateVerbose {
			rep = con
			con.Info("Migrating knowledge base in: " + layout.Root)
		}
		rc := reconcile.New(m, tmpl, reconcile.WithReporter(warnOnly{rep, con}), reconcile.WithLogger(logger))

		if !migrateForce && !migrateDryRun && stdinIsTerminal() {
			planner := reconcile.New(m, tmpl, reconcile.WithLogger(logger))
			plan, err := planner.Migrate(layout, reconcile.MigrateOptions{DryRun: true})
			if err != nil {
				return err
			}
			if plan.UpToDate() {
				showMigration(con, layout.Root, plan, migrateVerbose)
				return nil
			}
			con.Info(fmt.Sprintf("%d files will be added to %s:", plan.FilesAdded(), layout.Root))
			for _, p := range plan.Added {
				con.Dim("  + " + p)
			}
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Proceed?")
			if err != nil {
				return err
			}
			if !ok {
				con.Warn("Migration cancelled")
				return nil
			}
		}

		res, err := rc.Migrate(layout, reconcile.MigrateOptions{DryRun: migrateDryRun})
		if err != nil {
			return err
		}
		showMigration(con, layout.Root, res, migrateVerbose)
		return nil
	},
}

func showMigration(con *report.Console, root string, res *reconcile.Result, verbose bool) {
	con.Newline()
	con.Heading("Migration Results")
	con.Dim("Knowledge base: " + root)
	con.Newline()
	if res.DryRun {
		con.Warn("Dry run - no files were actually modified")
		con.Newline()
	}
	if res.FilesAdded() > 0 {
		verb := "added"
		if res.DryRun {
			verb = "would be added"
		}
		con.Success(fmt.Sprintf("%d files %s", res.FilesAdded(), verb))
		if verbose || res.DryRun {
			for _, p := range res.Added {
				con.Dim("  + " + p)
			}
		}
	} else {
		con.Info("No files need to be added")
	}
	if verbose && res.FilesSkipped() > 0 {
		con.Newline()
		con.Info(fmt.Sprintf("%d files already exist (skipped)", res.FilesSkipped()))
		for _, p := range res.Skipped {
			con.Dim("  ✓ " + p)
		}
	}
	con.Newline()
	switch {
	case res.UpToDate():
		con.Success("Knowledge base is up to date!")
	case !res.DryRun:
		con.Success("Migration completed successfully!")
	}
}

// confirm asks a y/N question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVarP(&migrateForce, "force", "f", false, "skip the confirmation prompt")
	migrateCmd.Flags().BoolVarP(&migrateVerbose, "verbose", "v", false, "list added and skipped files")
	migrateCmd.Flags().BoolVarP(&migrateDryRun, "dry-run", "d", false, "show what would be added without writing")
}
