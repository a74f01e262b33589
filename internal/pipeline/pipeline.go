// Package pipeline sequences one pass over all configured sources:
// fetch, normalize, filter, classify, duplicate-check, generate,
// publish, record.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Surush0098/techionn/internal/feed"
	"github.com/Surush0098/techionn/internal/gemini"
	"github.com/Surush0098/techionn/internal/history"
	"github.com/Surush0098/techionn/internal/metrics"
	"github.com/Surush0098/techionn/internal/rss"
)

// Classifier decides how publish-worthy an entry is.
type Classifier interface {
	Classify(ctx context.Context, title, summary string) (gemini.Category, error)
}

// DuplicateChecker detects cross-language re-coverage of an already
// published story.
type DuplicateChecker interface {
	IsDuplicateTopic(ctx context.Context, newTitle string, recentTitles []string) (bool, error)
}

// Generator produces the final publish-ready text.
type Generator interface {
	Generate(ctx context.Context, title, content string, category gemini.Category, foreign bool) (string, error)
}

// Publisher delivers the message to the broadcast channel. imageURL
// may be empty.
type Publisher interface {
	Publish(ctx context.Context, text, imageURL string) error
}

// History is the dedup backbone. Appends must be visible to Seen and
// RecentTitles within the same run.
type History interface {
	Seen(link string) bool
	RecentTitles(limit int) []string
	Append(ctx context.Context, rec history.Record)
}

// Deps wires all collaborators into the pipeline.
type Deps struct {
	Fetcher    rss.Fetcher
	History    History
	Classifier Classifier
	DupChecker DuplicateChecker
	Generator  Generator
	Publisher  Publisher
}

// Options are the per-run tuning knobs.
type Options struct {
	TimeWindow       time.Duration
	RecentTitleLimit int

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

type Pipeline struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{deps: deps, opts: opts}
}

// Run performs one strictly sequential pass over all sources. A
// failing source never aborts the rest of the pass, and no error is
// fatal to the run.
func (p *Pipeline) Run(ctx context.Context, sources []rss.Source) {
	cutoff := p.opts.Now().Add(-p.opts.TimeWindow)

	for _, src := range sources {
		items, err := p.deps.Fetcher.Fetch(src.URL)
		if err != nil {
			log.Printf("pipeline: source %s failed: %v", src.URL, err)
			metrics.Global.IncrementSourceFetchErrors()
			continue
		}

		for _, item := range items {
			entry, err := feed.Normalize(item)
			if err != nil {
				// No timestamp means the window filter cannot apply; skip entirely.
				continue
			}
			if !entry.Published.After(cutoff) {
				continue
			}
			p.processEntry(ctx, entry, src.Foreign)
		}
	}
}

// processEntry walks one entry through the decision chain. Every early
// return is a deliberate terminal state; only the duplicate branch and
// full success write history.
func (p *Pipeline) processEntry(ctx context.Context, entry feed.Entry, foreign bool) {
	if p.deps.History.Seen(entry.Link) {
		return
	}
	metrics.Global.IncrementEntriesSeen()

	category, err := p.deps.Classifier.Classify(ctx, entry.Title, entry.Summary)
	if err != nil {
		// Fail closed: drop for this pass, retry while still in the window.
		log.Printf("pipeline: classify failed for %q: %v", entry.Title, err)
		metrics.Global.IncrementOracleErrors()
		return
	}
	if category == gemini.CategoryReject {
		log.Printf("Rejected: %s", entry.Title)
		metrics.Global.IncrementRejected()
		return
	}

	recent := p.deps.History.RecentTitles(p.opts.RecentTitleLimit)
	duplicate, err := p.deps.DupChecker.IsDuplicateTopic(ctx, entry.Title, recent)
	if err != nil {
		// Fail open: a possible double post beats silently losing coverage.
		log.Printf("pipeline: duplicate check failed for %q: %v", entry.Title, err)
		metrics.Global.IncrementOracleErrors()
		duplicate = false
	}
	if duplicate {
		log.Printf("Duplicate topic: %s", entry.Title)
		metrics.Global.IncrementDuplicateTopics()
		// Record it so the next pass does not re-evaluate the same story.
		p.deps.History.Append(ctx, history.Record{Link: entry.Link, Title: entry.Title})
		return
	}

	text, err := p.deps.Generator.Generate(ctx, entry.Title, entry.Content, category, foreign)
	if err != nil {
		log.Printf("pipeline: generation failed for %q: %v", entry.Title, err)
		metrics.Global.IncrementOracleErrors()
		return
	}

	message := formatMessage(entry.Title, category, text)
	if err := p.deps.Publisher.Publish(ctx, message, feed.ExtractImage(entry)); err != nil {
		// Fire and forget: retrying could double-post, the record below
		// marks the story as handled either way.
		log.Printf("pipeline: publish failed for %q: %v", entry.Title, err)
	}

	p.deps.History.Append(ctx, history.Record{Link: entry.Link, Title: entry.Title})
	metrics.Global.IncrementPublished()
	log.Printf("Sent: %s", entry.Title)
}

func formatMessage(title string, category gemini.Category, body string) string {
	icon := "🚀"
	if category == gemini.CategoryVIP {
		icon = "💎"
	}
	return fmt.Sprintf("%s **%s**\n\n%s", icon, title, body)
}
