package rss

import (
	"log"
	"os"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// Source is one configured feed with its language origin.
type Source struct {
	URL     string `yaml:"url"`
	Foreign bool   `yaml:"foreign"` // foreign sources get translated, local ones rewritten
}

// SourcesConfig is YAML config structure
// sources:
//   - url: https://...
//     foreign: true
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the feed source list from a YAML file
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Sources, nil
}

// Fetcher downloads and parses a single feed.
type Fetcher interface {
	Fetch(url string) ([]*gofeed.Item, error)
}

// FeedFetcher backs Fetcher with gofeed over HTTP.
type FeedFetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *FeedFetcher {
	return &FeedFetcher{parser: gofeed.NewParser()}
}

func (f *FeedFetcher) Fetch(url string) ([]*gofeed.Item, error) {
	feed, err := f.parser.ParseURL(url)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d items from %s", len(feed.Items), url)
	return feed.Items, nil
}
