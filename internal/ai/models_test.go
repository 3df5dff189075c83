package ai

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogIsACopy(t *testing.T) {
	c := DefaultCatalog()
	delete(c, "openai/gpt-4o")
	if _, ok := DefaultCatalog().Lookup("openai/gpt-4o"); !ok {
		t.Fatalf("mutating a returned catalog must not affect the built-in one")
	}
}

func TestMergeCatalog(t *testing.T) {
	base := DefaultCatalog()
	merged := base.Merge(Catalog{
		"openai/gpt-4o": {ContextTokens: 64000},
		"custom/model":  {Name: "custom/model", ContextTokens: 32000},
	})
	mi, ok := merged.Lookup("openai/gpt-4o")
	if !ok || mi.ContextTokens != 64000 || mi.Name != "openai/gpt-4o" {
		t.Fatalf("override not applied: %+v", mi)
	}
	if _, ok := merged.Lookup("custom/model"); !ok {
		t.Fatalf("expected custom model after merge")
	}
	if base["openai/gpt-4o"].ContextTokens != 128000 {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestLoadCatalogFromJSON(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"x/y":{"Name":"x/y","ContextTokens":1000,"InputPerK":0.001}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalogFromJSON(good)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c["x/y"].ContextTokens != 1000 {
		t.Fatalf("unexpected entry: %+v", c["x/y"])
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"x/y":{"Name":"x/y"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogFromJSON(bad); err == nil {
		t.Fatalf("expected error for entry without context window")
	}
	if _, err := LoadCatalogFromJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestContextFit(t *testing.T) {
	c := Catalog{
		"small": {Name: "small", ContextTokens: 4000},
		"big":   {Name: "big", ContextTokens: 200000, InputPerK: 0.003},
		"mid-b": {Name: "mid-b", ContextTokens: 8000},
		"mid-a": {Name: "mid-a", ContextTokens: 8000},
	}
	fits := c.ContextFit(6000)
	order := []string{"big", "mid-a", "mid-b", "small"}
	if len(fits) != len(order) {
		t.Fatalf("got %d fits", len(fits))
	}
	for i, name := range order {
		if fits[i].Model.Name != name {
			t.Fatalf("fits[%d] = %s, want %s", i, fits[i].Model.Name, name)
		}
	}
	if !fits[0].Fits || !approx(fits[0].Percent, 3) {
		t.Fatalf("big: %+v", fits[0])
	}
	if fits[3].Fits || fits[3].Percent != 150 {
		t.Fatalf("small: %+v", fits[3])
	}
	if !approx(fits[0].CostUSD, 0.018) {
		t.Fatalf("cost = %v", fits[0].CostUSD)
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
