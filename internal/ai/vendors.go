package ai

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

//go:embed vendors/*.tmpl
var vendorFS embed.FS

// Vendor is a chat tool that gets a dedicated instructions file.
type Vendor struct {
	Name    string // CLI name, e.g. "chatgpt"
	Display string
	File    string // written at the knowledge base root
}

var vendors = map[string]Vendor{
	"chatgpt": {Name: "chatgpt", Display: "ChatGPT", File: "CHATGPT_INSTRUCTIONS.md"},
	"gemini":  {Name: "gemini", Display: "Gemini AI", File: "GEMINI_INSTRUCTIONS.md"},
	"warp":    {Name: "warp", Display: "Warp AI", File: "WARP_AI_INSTRUCTIONS.md"},
}

// Vendors returns the known vendor names, sorted.
func Vendors() []string {
	out := make([]string, 0, len(vendors))
	for k := range vendors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupVendor resolves a vendor by name, case-insensitively.
func LookupVendor(name string) (Vendor, error) {
	v, ok := vendors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Vendor{}, &UnknownVendorError{Name: name, Known: Vendors()}
	}
	return v, nil
}

// PromptData feeds the vendor templates.
type PromptData struct {
	Vendor           string
	InstructionsFile string
	GeneralDir       string
	StructuredDir    string
	Files            []string // general file names in reading order
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

// Render produces the instructions document for v.
func (v Vendor) Render(data PromptData) (string, error) {
	data.Vendor = v.Name
	t, err := template.New(v.Name).Funcs(funcs).ParseFS(vendorFS, "vendors/shared.tmpl", "vendors/"+v.Name+".md.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", v.Name, err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, v.Name+".md.tmpl", data); err != nil {
		return "", fmt.Errorf("render %s template: %w", v.Name, err)
	}
	return buf.String(), nil
}

// WriteInstructions renders v into root/v.File. An existing file is only replaced when
// force is set. The returned path is absolute.
func (v Vendor) WriteInstructions(root string, data PromptData, force bool) (string, error) {
	dest := filepath.Join(root, v.File)
	if utils.Exists(dest) && !force {
		return "", &InstructionsExistError{Path: dest}
	}
	content, err := v.Render(data)
	if err != nil {
		return "", err
	}
	if err := utils.SafeWriteFile(dest, []byte(content)); err != nil {
		return "", fmt.Errorf("write %s: %w", v.File, err)
	}
	return dest, nil
}

// IgnoreFile adds v.File to root/.gitignore under a comment header. It does nothing when
// there is no .gitignore or a line already names the file, and reports whether it wrote.
func (v Vendor) IgnoreFile(root string) (bool, error) {
	p := filepath.Join(root, ".gitignore")
	if !utils.Exists(p) {
		return false, nil
	}
	content, err := utils.ReadText(p)
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == v.File {
			return false, nil
		}
	}
	updated := strings.TrimRight(content, " \t\r\n") + fmt.Sprintf("\n\n# %s instructions\n%s\n", v.Display, v.File)
	if err := utils.WriteText(p, updated); err != nil {
		return false, err
	}
	return true, nil
}

// UnknownVendorError reports an integrate target that has no template.
type UnknownVendorError struct {
	Name  string
	Known []string
}

func (e *UnknownVendorError) Error() string {
	return fmt.Sprintf("unknown vendor %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// InstructionsExistError is returned when a vendor file exists and force is not set.
type InstructionsExistError struct {
	Path string
}

func (e *InstructionsExistError) Error() string {
	return fmt.Sprintf("%s already exists; use --force to overwrite", e.Path)
}
