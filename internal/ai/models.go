package ai

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ModelInfo describes a chat model a knowledge base is pasted into.
// Prices are illustrative and only used for rough hints.
type ModelInfo struct {
	Name          string
	Vendor        string
	ContextTokens int     // approximate context window
	InputPerK     float64 // USD per 1K input tokens
}

// Catalog maps model names to their metadata.
type Catalog map[string]ModelInfo

var builtin = Catalog{
	"openai/gpt-4o": {
		Name:          "openai/gpt-4o",
		Vendor:        "chatgpt",
		ContextTokens: 128000,
		InputPerK:     0.005,
	},
	"openai/gpt-4o-mini": {
		Name:          "openai/gpt-4o-mini",
		Vendor:        "chatgpt",
		ContextTokens: 128000,
		InputPerK:     0.0006,
	},
	"openai/gpt-4": {
		Name:          "openai/gpt-4",
		Vendor:        "chatgpt",
		ContextTokens: 8192,
		InputPerK:     0.03,
	},
	"anthropic/claude-3.5-sonnet": {
		Name:          "anthropic/claude-3.5-sonnet",
		Vendor:        "claude",
		ContextTokens: 200000,
		InputPerK:     0.003,
	},
	"anthropic/claude-3-haiku": {
		Name:          "anthropic/claude-3-haiku",
		Vendor:        "claude",
		ContextTokens: 200000,
		InputPerK:     0.00025,
	},
	// Gemini
	"google/gemini-1.5-flash": {
		Name:          "google/gemini-1.5-flash",
		Vendor:        "gemini",
		ContextTokens: 1000000,
		InputPerK:     0.0002,
	},
	"google/gemini-1.5-pro": {
		Name:          "google/gemini-1.5-pro",
		Vendor:        "gemini",
		ContextTokens: 1000000,
		InputPerK:     0.00125,
	},
	"meta-llama/llama-3.1-70b-instruct": {
		Name:          "meta-llama/llama-3.1-70b-instruct",
		Vendor:        "llama",
		ContextTokens: 131072,
	},
	// Common local (Ollama) tags
	"llama3.1:8b-instruct": {
		Name:          "llama3.1:8b-instruct",
		Vendor:        "ollama",
		ContextTokens: 8192,
	},
	"phi3:mini-4k-instruct": {
		Name:          "phi3:mini-4k-instruct",
		Vendor:        "ollama",
		ContextTokens: 4096,
	},
}

// DefaultCatalog returns a copy of the built-in catalog.
func DefaultCatalog() Catalog {
	return builtin.clone()
}

func (c Catalog) clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Lookup returns ModelInfo and ok flag.
func (c Catalog) Lookup(name string) (ModelInfo, bool) {
	mi, ok := c[name]
	return mi, ok
}

// Merge returns a new catalog with m's entries added or replacing existing ones.
// Entries without a name take the key as their name.
func (c Catalog) Merge(m Catalog) Catalog {
	out := c.clone()
	for k, v := range m {
		if v.Name == "" {
			v.Name = k
		}
		out[k] = v
	}
	return out
}

// LoadCatalogFromJSON loads a JSON object map[string]ModelInfo from a file path.
// Example JSON entry:
// { "openai/gpt-4o-mini": {"Name":"openai/gpt-4o-mini","ContextTokens":128000,"InputPerK":0.0006} }
func LoadCatalogFromJSON(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open models catalog: %w", err)
	}
	defer f.Close()
	var m Catalog
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode models catalog %s: %w", path, err)
	}
	for k, v := range m {
		if v.ContextTokens <= 0 {
			return nil, fmt.Errorf("models catalog %s: %s has no context window", path, k)
		}
	}
	return m, nil
}

// Fit reports how much of a model's context window a token count occupies.
type Fit struct {
	Model   ModelInfo
	Tokens  int
	Percent float64 // share of the context window, may exceed 100
	Fits    bool
	CostUSD float64 // input cost of sending Tokens once
}

// EstimateCostUSD estimates the input cost in USD of sending tokens to model.
// If the model is unknown, returns 0 and ok=false.
func (c Catalog) EstimateCostUSD(model string, tokens int) (float64, bool) {
	mi, ok := c.Lookup(model)
	if !ok {
		return 0, false
	}
	return (float64(tokens) / 1000.0) * mi.InputPerK, true
}

// ContextFit computes the fit of tokens in every model, largest context window first,
// then by name.
func (c Catalog) ContextFit(tokens int) []Fit {
	fits := make([]Fit, 0, len(c))
	for name, mi := range c {
		cost, _ := c.EstimateCostUSD(name, tokens)
		f := Fit{Model: mi, Tokens: tokens, Fits: tokens <= mi.ContextTokens, CostUSD: cost}
		if mi.ContextTokens > 0 {
			f.Percent = float64(tokens) / float64(mi.ContextTokens) * 100
		}
		fits = append(fits, f)
	}
	sort.Slice(fits, func(i, j int) bool {
		a, b := fits[i].Model, fits[j].Model
		if a.ContextTokens != b.ContextTokens {
			return a.ContextTokens > b.ContextTokens
		}
		return a.Name < b.Name
	})
	return fits
}
