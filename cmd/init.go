package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/reconcile"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

var (
	initForce    bool
	initNoGit    bool
	initTemplate string
	initVerbose  bool
	initDryRun   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a knowledge base in the project directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, layout, err := loadLayout(false)
		if err != nil {
			return err
		}
		name := initTemplate
		if name == "" {
			name = cfg.Template
		}
		tmpl, err := manifest.Templates(name, cfg.TemplatesDir)
		if err != nil {
			return err
		}

		con := newConsole(cmd)
		var rep report.Reporter = report.Nop{}
		if initVerbose {
			rep = con
			con.Info(fmt.Sprintf("Initializing knowledge base in %s (template %q)", layout.Root, name))
		}
		rc := reconcile.New(m, tmpl, reconcile.WithReporter(warnOnly{rep, con}), reconcile.WithLogger(logger))
		res, err := rc.Initialize(layout, reconcile.InitOptions{Force: initForce, DryRun: initDryRun})
		if err != nil {
			return err
		}
		logger.Debug("init finished", zap.Int("added", res.FilesAdded()), zap.Bool("dry_run", res.DryRun))

		if res.DryRun {
			con.Heading("Dry run: no files were written")
			con.Newline()
			con.Info(fmt.Sprintf("Would create %d files:", res.FilesAdded()))
			for _, p := range res.Added {
				con.Dim("  + " + p)
			}
			return nil
		}

		con.Success(fmt.Sprintf("Knowledge base initialized in %s (%d files)", layout.Root, res.FilesAdded()))
		if initVerbose {
			for _, p := range res.Added {
				con.Dim("  + " + p)
			}
		}
		con.Newline()
		con.Heading("Next steps:")
		con.Info("  1. Fill in " + filepath.ToSlash(filepath.Join(m.GeneralDir, "project-overview.md")) + " with your project context")
		con.Info("  2. Start a new AI chat with the prompt in " + m.Prompt.Target)
		con.Info("  3. Run 'aic tokens' to keep an eye on context size")
		if !initNoGit && utils.Exists(filepath.Join(layout.Root, ".git")) {
			con.Newline()
			con.Dim(fmt.Sprintf("  Commit it: git add %s %s %s %s && git commit -m \"Add AI knowledge base\"",
				m.GeneralDir, m.StructuredDir, m.Instructions.Target, m.Prompt.Target))
		}
		return nil
	},
}

// warnOnly forwards progress to progress and warnings and errors to always.
type warnOnly struct {
	progress report.Reporter
	always   report.Reporter
}

func (w warnOnly) Progress(msg string) { w.progress.Progress(msg) }
func (w warnOnly) Warn(msg string)     { w.always.Warn(msg) }
func (w warnOnly) Error(err error)     { w.always.Error(err) }

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing knowledge base")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false, "skip the git commit hint")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "template set to install (default from config, then \"default\")")
	initCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "show progress and every file written")
	initCmd.Flags().BoolVarP(&initDryRun, "dry-run", "d", false, "list the files that would be written without writing them")
}
