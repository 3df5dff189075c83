// Package analysis computes word, line and token statistics over a knowledge base.
package analysis

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/aicontext-cli/internal/kb"
	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// Category is a coarse reporting bucket for a knowledge base file.
type Category string

const (
	CategoryEntry      Category = "entry"
	CategoryCore       Category = "core"
	CategoryHistory    Category = "history"
	CategoryPlanning   Category = "planning"
	CategoryStructured Category = "structured"
)

var categoryByName = map[string]Category{
	"README.md":           CategoryEntry,
	"project-overview.md": CategoryEntry,
	"conversation-log.md": CategoryHistory,
	"next-steps.md":       CategoryPlanning,
}

// Categorize maps a file name to its category. Names ending in structuredExt are
// structured; unknown names are core.
func Categorize(name, structuredExt string) Category {
	if c, ok := categoryByName[name]; ok {
		return c
	}
	if structuredExt != "" && strings.HasSuffix(name, structuredExt) {
		return CategoryStructured
	}
	return CategoryCore
}

// FileRecord holds the metrics of one knowledge base file. A zero LastModified means the
// time is unknown.
type FileRecord struct {
	Path         string    `json:"path" yaml:"path"`
	Name         string    `json:"name" yaml:"name"`
	Words        int       `json:"words" yaml:"words"`
	Lines        int       `json:"lines" yaml:"lines"`
	Tokens       int       `json:"tokens" yaml:"tokens"`
	Category     Category  `json:"category" yaml:"category"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// NewFileRecord derives the metrics of a file from its name and content.
func NewFileRecord(relPath, content, structuredExt string) FileRecord {
	name := path.Base(relPath)
	words := utils.CountWords(content)
	return FileRecord{
		Path:     relPath,
		Name:     name,
		Words:    words,
		Lines:    utils.CountLines(content),
		Tokens:   utils.EstimateTokens(content),
		Category: Categorize(name, structuredExt),
	}
}

// Analyzer scans the general and structured directories of a knowledge base.
type Analyzer struct {
	manifest   *manifest.Manifest
	thresholds Thresholds
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThresholds overrides the recommendation thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New builds an Analyzer for knowledge bases shaped by m.
func New(m *manifest.Manifest, opts ...Option) *Analyzer {
	a := &Analyzer{manifest: m, thresholds: DefaultThresholds(), logger: zap.NewNop()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze returns a record per file in the general directory followed by the structured
// directory, if present. Sub-directories are not descended into.
func (a *Analyzer) Analyze(layout kb.Layout) ([]FileRecord, error) {
	if err := layout.RequireInitialized(); err != nil {
		return nil, err
	}
	records, err := a.analyzeDir(layout.GeneralDir, a.manifest.GeneralDir)
	if err != nil {
		return nil, err
	}
	if utils.Exists(layout.StructuredDir) {
		more, err := a.analyzeDir(layout.StructuredDir, a.manifest.StructuredDir)
		if err != nil {
			return nil, err
		}
		records = append(records, more...)
	}
	a.logger.Debug("analyzed knowledge base", zap.String("root", layout.Root), zap.Int("files", len(records)))
	return records, nil
}

func (a *Analyzer) analyzeDir(dir, relDir string) ([]FileRecord, error) {
	names, err := utils.ListEntries(dir)
	if err != nil {
		return nil, err
	}
	records := make([]FileRecord, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		info, err := utils.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			a.logger.Debug("skipping directory", zap.String("path", p))
			continue
		}
		content, err := utils.ReadText(p)
		if err != nil {
			return nil, err
		}
		rec := NewFileRecord(path.Join(relDir, name), content, a.manifest.StructuredExt)
		rec.LastModified = info.ModTime()
		records = append(records, rec)
	}
	return records, nil
}
