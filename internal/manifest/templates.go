package manifest

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTemplate is the template set shipped with the binary.
const DefaultTemplate = "default"

//go:embed templates
var embedded embed.FS

// TemplateNotFoundError is returned when a named template set does not exist.
type TemplateNotFoundError struct {
	Name      string
	Available []string
}

func (e *TemplateNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("template %q not found", e.Name)
	}
	return fmt.Sprintf("template %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Templates resolves a template set by name. When dir is set, sets are looked up as
// sub-directories of dir on disk; otherwise only the embedded sets are available.
func Templates(name, dir string) (fs.FS, error) {
	if name == "" {
		name = DefaultTemplate
	}
	avail, err := Available(dir)
	if err != nil {
		return nil, err
	}
	found := false
	for _, a := range avail {
		if a == name {
			found = true
			break
		}
	}
	if !found {
		return nil, &TemplateNotFoundError{Name: name, Available: avail}
	}
	if dir != "" {
		return os.DirFS(filepath.Join(dir, name)), nil
	}
	return fs.Sub(embedded, "templates/"+name)
}

// Available lists the template set names, sorted.
func Available(dir string) ([]string, error) {
	var entries []fs.DirEntry
	var err error
	if dir != "" {
		entries, err = os.ReadDir(dir)
	} else {
		entries, err = fs.ReadDir(embedded, "templates")
	}
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
