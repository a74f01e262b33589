package rss

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSources(t *testing.T) {
	t.Parallel()

	yaml := `sources:
  - url: https://techcrunch.com/category/startups/feed/
    foreign: true
  - url: https://digiato.com/label/startup/feed
`
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources returned error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if !sources[0].Foreign {
		t.Error("first source must be marked foreign")
	}
	if sources[1].Foreign {
		t.Error("second source must default to local")
	}
	if sources[1].URL != "https://digiato.com/label/startup/feed" {
		t.Errorf("unexpected url: %s", sources[1].URL)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadSources(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
