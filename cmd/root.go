package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KaramelBytes/aicontext-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/aicontext-cli/internal/config"
	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/report"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	noColor   bool
	targetDir string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "aic",
	Short: "aic: keep an AI chat knowledge base in your project",
	Long: `aic scaffolds and maintains a knowledge base of markdown and structured files
(.ai/, .aicf/, .ai-instructions, NEW_CHAT_PROMPT.md) that you paste into AI chat tools
so every new session starts with full project context.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.CommandPath()))
		logger.Debug("config", zap.String("template", cfg.Template), zap.String("templates_dir", cfg.TemplatesDir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.aic/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().StringVar(&targetDir, "dir", "", "project directory holding the knowledge base (default is the current directory)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
}

// newLogger writes console-encoded entries to stderr at warn level, or debug with --debug.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	config.Sampling = nil
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// resolveRoot returns the absolute target directory.
func resolveRoot() (string, error) {
	dir := targetDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// loadLayout resolves the manifest and the knowledge base paths of the target directory.
// With discover set and no --dir, the nearest ancestor holding a knowledge base is used.
func loadLayout(discover bool) (*manifest.Manifest, kb.Layout, error) {
	m, err := manifest.Default()
	if err != nil {
		return nil, kb.Layout{}, err
	}
	root, err := resolveRoot()
	if err != nil {
		return nil, kb.Layout{}, err
	}
	if discover && targetDir == "" {
		if found, err := utils.FindRoot(root, m.GeneralDir); err == nil {
			root = found
		}
	}
	logger.Debug("knowledge base root", zap.String("root", root))
	return m, kb.NewLayout(root, m), nil
}

func newConsole(cmd *cobra.Command) *report.Console {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	color := !noColor && !cfg.NoColor && isTerminal(out)
	return report.NewConsole(out, errOut, color)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newAnalyzer(m *manifest.Manifest) *analysis.Analyzer {
	th := analysis.Thresholds{
		Archive:   cfg.ArchiveThreshold,
		Split:     cfg.SplitThreshold,
		LargeFile: cfg.LargeFileThreshold,
	}
	return analysis.New(m, analysis.WithThresholds(th), analysis.WithLogger(logger))
}
