// Package manifest describes the fixed set of files that make up a knowledge base and
// where their templates come from.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// RootFile is a singleton file placed at the knowledge base root.
type RootFile struct {
	Target   string `yaml:"target"`
	Template string `yaml:"template"`
}

// Manifest lists every file init and migrate reconcile.
type Manifest struct {
	GeneralDir          string   `yaml:"general_dir"`
	GeneralTemplates    string   `yaml:"general_templates"`
	General             []string `yaml:"general"`
	StructuredDir       string   `yaml:"structured_dir"`
	StructuredTemplates string   `yaml:"structured_templates"`
	StructuredExt       string   `yaml:"structured_ext"`
	Structured          []string `yaml:"structured"`
	Instructions        RootFile `yaml:"instructions"`
	Prompt              RootFile `yaml:"prompt"`
}

// Entry pairs a template path inside a template set with its target path relative to the
// knowledge base root. Both use forward slashes.
type Entry struct {
	Template string
	Target   string
}

var loadDefault = sync.OnceValues(func() (*Manifest, error) {
	return Parse(manifestYAML)
})

// Default returns the manifest compiled into the binary.
func Default() (*Manifest, error) {
	return loadDefault()
}

// Parse decodes and validates a manifest document.
func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the structural invariants of the manifest.
func (m *Manifest) Validate() error {
	if m.GeneralDir == "" || m.StructuredDir == "" {
		return errors.New("manifest: general_dir and structured_dir are required")
	}
	if path.Clean(m.GeneralDir) == path.Clean(m.StructuredDir) {
		return fmt.Errorf("manifest: general and structured groups share directory %q", m.GeneralDir)
	}
	if !strings.HasPrefix(m.StructuredExt, ".") {
		return fmt.Errorf("manifest: structured_ext %q must start with '.'", m.StructuredExt)
	}
	if err := checkGroup("general", m.General); err != nil {
		return err
	}
	if err := checkGroup("structured", m.Structured); err != nil {
		return err
	}
	for _, rf := range []RootFile{m.Instructions, m.Prompt} {
		if rf.Target == "" || rf.Template == "" {
			return errors.New("manifest: instructions and prompt need target and template")
		}
	}
	if m.Instructions.Target == m.Prompt.Target {
		return fmt.Errorf("manifest: duplicate root file %q", m.Prompt.Target)
	}
	return nil
}

func checkGroup(group string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" || strings.ContainsAny(n, `/\`) {
			return fmt.Errorf("manifest: invalid %s file name %q", group, n)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("manifest: duplicate %s file %q", group, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Size is the total number of files the manifest places on disk.
func (m *Manifest) Size() int {
	return len(m.General) + len(m.Structured) + 2
}

// GeneralEntries returns the general group in declaration order.
func (m *Manifest) GeneralEntries() []Entry {
	return groupEntries(m.GeneralTemplates, m.GeneralDir, m.General)
}

// StructuredEntries returns the structured group in declaration order.
func (m *Manifest) StructuredEntries() []Entry {
	return groupEntries(m.StructuredTemplates, m.StructuredDir, m.Structured)
}

// RootEntries returns the instructions file followed by the prompt file.
func (m *Manifest) RootEntries() []Entry {
	return []Entry{
		{Template: m.Instructions.Template, Target: m.Instructions.Target},
		{Template: m.Prompt.Template, Target: m.Prompt.Target},
	}
}

// Entries returns every file in copy order: general, structured, then root files.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, 0, m.Size())
	out = append(out, m.GeneralEntries()...)
	out = append(out, m.StructuredEntries()...)
	return append(out, m.RootEntries()...)
}

func groupEntries(templateDir, targetDir string, names []string) []Entry {
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, Entry{
			Template: path.Join(templateDir, n),
			Target:   path.Join(targetDir, n),
		})
	}
	return out
}
