// Package kb locates the parts of a knowledge base inside a target directory.
package kb

import (
	"path/filepath"

	"github.com/KaramelBytes/aicontext-cli/internal/manifest"
	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// Layout holds absolute paths of a knowledge base rooted at Root.
type Layout struct {
	Root             string
	GeneralDir       string
	StructuredDir    string
	InstructionsFile string
	PromptFile       string
	ConversationLog  string
}

// ConversationLogName is the general file holding dated session entries.
const ConversationLogName = "conversation-log.md"

// NewLayout maps the manifest onto root.
func NewLayout(root string, m *manifest.Manifest) Layout {
	return Layout{
		Root:             root,
		GeneralDir:       filepath.Join(root, filepath.FromSlash(m.GeneralDir)),
		StructuredDir:    filepath.Join(root, filepath.FromSlash(m.StructuredDir)),
		InstructionsFile: filepath.Join(root, filepath.FromSlash(m.Instructions.Target)),
		PromptFile:       filepath.Join(root, filepath.FromSlash(m.Prompt.Target)),
		ConversationLog:  filepath.Join(root, filepath.FromSlash(m.GeneralDir), ConversationLogName),
	}
}

// Abs resolves a slash-separated path relative to the root.
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// Initialized reports whether the general directory exists.
func (l Layout) Initialized() bool {
	return utils.Exists(l.GeneralDir)
}

// RequireInitialized returns a NotInitializedError when the general directory is absent.
func (l Layout) RequireInitialized() error {
	if !l.Initialized() {
		return &NotInitializedError{Path: l.GeneralDir}
	}
	return nil
}
