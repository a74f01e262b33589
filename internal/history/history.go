// Package history keeps the append-only log of published stories.
//
// The log is a flat text file of "link|title" lines, loaded in full at
// the start of a run. The link is the dedup key; insertion order is
// publication order. The store itself never deduplicates — the seen
// filter runs before Append.
package history

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// Record is one published (or duplicate-marked) story.
type Record struct {
	Link  string
	Title string
}

// Committer makes the current log durable for the next process run.
// The store does not care what backs it.
type Committer interface {
	CommitAppend(ctx context.Context) error
}

// NopCommitter ignores commits; used in tests and local runs.
type NopCommitter struct{}

func (NopCommitter) CommitAppend(context.Context) error { return nil }

// Store holds the in-memory history snapshot for one run.
type Store struct {
	path      string
	committer Committer

	records []Record
	seen    map[string]struct{}
}

func NewStore(path string, committer Committer) *Store {
	if committer == nil {
		committer = NopCommitter{}
	}
	return &Store{
		path:      path,
		committer: committer,
		seen:      make(map[string]struct{}),
	}
}

// Load reads the full durable log. Any read error is treated as
// "empty history": a corrupted or missing log must never block a run.
func (s *Store) Load() int {
	s.records = s.records[:0]
	s.seen = make(map[string]struct{})

	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("history: cannot read %s: %v (starting empty)", s.path, err)
		}
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		rec := Record{Link: parts[0]}
		if len(parts) == 2 {
			rec.Title = parts[1]
		}
		s.records = append(s.records, rec)
		s.seen[rec.Link] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("history: error scanning %s: %v (keeping %d records)", s.path, err, len(s.records))
	}
	return len(s.records)
}

// Seen reports whether a link was already recorded, including records
// appended earlier in the current run.
func (s *Store) Seen(link string) bool {
	_, ok := s.seen[link]
	return ok
}

// RecentTitles returns the titles of the last limit records in
// insertion order. This is the comparison window for the cross-lingual
// duplicate check.
func (s *Store) RecentTitles(limit int) []string {
	start := 0
	if limit > 0 && len(s.records) > limit {
		start = len(s.records) - limit
	}
	titles := make([]string, 0, len(s.records)-start)
	for _, rec := range s.records[start:] {
		titles = append(titles, rec.Title)
	}
	return titles
}

// Append records one story in memory, persists the line and asks the
// committer to make it durable. Durability failures are logged and
// swallowed: the in-memory snapshot stays correct for this run, at
// worst the next run re-sees the entry as unseen.
func (s *Store) Append(ctx context.Context, rec Record) {
	s.records = append(s.records, rec)
	s.seen[rec.Link] = struct{}{}

	if err := s.appendLine(rec); err != nil {
		log.Printf("history: cannot persist record for %s: %v", rec.Link, err)
		return
	}
	if err := s.committer.CommitAppend(ctx); err != nil {
		log.Printf("history: commit failed for %s: %v", rec.Link, err)
	}
}

func (s *Store) appendLine(rec Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s|%s\n", rec.Link, sanitizeTitle(rec.Title)); err != nil {
		return fmt.Errorf("write history line: %w", err)
	}
	return nil
}

// sanitizeTitle keeps the one-line log format intact.
func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\n", " ")
	return strings.TrimSpace(title)
}
