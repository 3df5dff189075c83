// Package reconcile brings a knowledge base on disk in line with the manifest: init writes
// every file, migrate adds only what is missing and never overwrites.
package reconcile

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// Reconciler copies template files into a knowledge base layout.
type Reconciler struct {
	manifest  *manifest.Manifest
	templates fs.FS
	reporter  report.Reporter
	logger    *zap.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithReporter sets the progress sink. Defaults to report.Nop.
func WithReporter(r report.Reporter) Option {
	return func(rc *Reconciler) { rc.reporter = r }
}

// WithLogger sets the debug logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(rc *Reconciler) { rc.logger = l }
}

// New builds a Reconciler that copies from templates according to m.
func New(m *manifest.Manifest, templates fs.FS, opts ...Option) *Reconciler {
	rc := &Reconciler{
		manifest:  m,
		templates: templates,
		reporter:  report.Nop{},
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(rc)
	}
	return rc
}

// InitOptions controls Initialize.
type InitOptions struct {
	Force  bool
	DryRun bool
}

// MigrateOptions controls Migrate.
type MigrateOptions struct {
	DryRun bool
}

// Initialize writes every manifest file into layout. Without Force it refuses to touch a
// root that already has a general directory or an instructions file.
func (r *Reconciler) Initialize(layout kb.Layout, opts InitOptions) (*Result, error) {
	if !opts.Force {
		for _, p := range []string{layout.GeneralDir, layout.InstructionsFile} {
			if utils.Exists(p) {
				return nil, &kb.AlreadyInitializedError{Path: p}
			}
		}
	}

	res := &Result{DryRun: opts.DryRun}
	entries := r.manifest.Entries()
	if opts.DryRun {
		for _, e := range entries {
			res.add(e.Target)
		}
		r.logger.Debug("init dry run", zap.String("root", layout.Root), zap.Int("files", len(entries)))
		return res, nil
	}

	r.reporter.Progress("Creating directory structure...")
	for _, dir := range []string{layout.GeneralDir, layout.StructuredDir} {
		if err := utils.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	r.reporter.Progress("Copying template files...")
	for _, e := range entries {
		if err := utils.CopyFrom(r.templates, e.Template, layout.Abs(e.Target)); err != nil {
			return nil, fmt.Errorf("install %s: %w", e.Target, err)
		}
		r.logger.Debug("installed", zap.String("file", e.Target))
		res.add(e.Target)
	}
	return res, nil
}

// Migrate adds manifest files missing from an existing knowledge base. Present files are
// skipped whatever their content. A template missing from the template set is reported as
// a warning and its file skipped; any other failure aborts the run.
func (r *Reconciler) Migrate(layout kb.Layout, opts MigrateOptions) (*Result, error) {
	if err := layout.RequireInitialized(); err != nil {
		return nil, err
	}
	r.reporter.Progress("Checking for updates...")

	res := &Result{DryRun: opts.DryRun}
	if !utils.Exists(layout.StructuredDir) {
		if !opts.DryRun {
			if err := utils.EnsureDir(layout.StructuredDir); err != nil {
				return nil, err
			}
		}
		res.add(r.manifest.StructuredDir + "/")
	}

	for _, e := range r.manifest.Entries() {
		if err := r.migrateEntry(layout, e, opts.DryRun, res); err != nil {
			return nil, err
		}
	}
	r.logger.Debug("migrate finished",
		zap.String("root", layout.Root),
		zap.Int("added", res.FilesAdded()),
		zap.Int("skipped", res.FilesSkipped()),
		zap.Bool("dry_run", opts.DryRun))
	return res, nil
}

func (r *Reconciler) migrateEntry(layout kb.Layout, e manifest.Entry, dryRun bool, res *Result) error {
	dest := layout.Abs(e.Target)
	if utils.Exists(dest) {
		res.skip(e.Target)
		return nil
	}
	if _, err := fs.Stat(r.templates, e.Template); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.reporter.Warn(fmt.Sprintf("template %s not found, skipping %s", e.Template, e.Target))
			r.logger.Warn("missing template", zap.String("template", e.Template), zap.String("file", e.Target))
			res.skip(e.Target)
			return nil
		}
		return fmt.Errorf("stat template %s: %w", e.Template, err)
	}
	if !dryRun {
		if err := utils.CopyFrom(r.templates, e.Template, dest); err != nil {
			return fmt.Errorf("add %s: %w", e.Target, err)
		}
	}
	res.add(e.Target)
	return nil
}
