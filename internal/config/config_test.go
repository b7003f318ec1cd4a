package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.WordLimit != 20 || c.MinWordLength != 4 || len(c.ExcludedWords) != 13 {
		t.Fatalf("word defaults = %d %d %v", c.WordLimit, c.MinWordLength, c.ExcludedWords)
	}
	if c.Policy() != analysis.PolicyCarryOver || c.ExportDriver != "sqlite" {
		t.Fatalf("policy=%q driver=%q", c.Policy(), c.ExportDriver)
	}
	if want := filepath.Join(home, DirName, "sessions"); c.SessionsDir != want {
		t.Fatalf("sessions_dir = %q, want %q", c.SessionsDir, want)
	}
	if len(c.CategoryTable()) != 4 {
		t.Fatalf("expected built-in categories")
	}
	s, err := c.DefaultSort()
	if err != nil || s != analysis.DefaultSort() {
		t.Fatalf("DefaultSort = %v, %v", s, err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REVLENS_WORD_LIMIT", "5")
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	yml := `word_policy: recompute
word_stemming: true
default_sort_field: rating
default_sort_direction: asc
sessions_dir: ~/reviews
categories:
  - name: Pricing
    keywords: [Price, " Quote "]
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.WordLimit != 5 {
		t.Fatalf("env override ignored: %d", c.WordLimit)
	}
	if c.Policy() != analysis.PolicyRecompute || !c.WordOptions().Stem {
		t.Fatalf("policy=%q stem=%v", c.Policy(), c.WordStemming)
	}
	cats := c.CategoryTable()
	if len(cats) != 1 || cats[0].Name != "Pricing" || cats[0].Keywords[1] != "quote" {
		t.Fatalf("categories = %+v", cats)
	}
	s, _ := c.DefaultSort()
	if s != (analysis.SortSpec{Field: analysis.SortRating, Direction: analysis.Asc}) {
		t.Fatalf("sort = %v", s)
	}
	home, _ := os.UserHomeDir()
	if c.SessionsDir != filepath.Join(home, "reviews") {
		t.Fatalf("sessions_dir = %q", c.SessionsDir)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REVLENS_WORD_POLICY", "sometimes")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid word_policy")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.ExportDriver = "postgres"
	c.Delimiter = ";"
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ExportDriver != "postgres" || got.Delimiter != ";" {
		t.Fatalf("reloaded = %+v", got)
	}
}
