// Package feed normalizes raw feed items into pipeline entries.
package feed

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ErrNoTimestamp marks items without a parseable publication time.
// Such items are skipped entirely: the time-window filter needs a timestamp.
var ErrNoTimestamp = errors.New("feed item has no publication timestamp")

// ImageCandidate is one possible illustration for an entry.
type ImageCandidate struct {
	MimeHint string
	URL      string
}

// Entry is the canonical shape every raw feed item is reduced to.
// It is never mutated after Normalize.
type Entry struct {
	Link      string
	Title     string
	Summary   string
	Content   string
	Published time.Time
	Images    []ImageCandidate
}

// Normalize maps a raw gofeed item into an Entry.
func Normalize(item *gofeed.Item) (Entry, error) {
	if item.PublishedParsed == nil {
		return Entry{}, ErrNoTimestamp
	}

	summary := strings.TrimSpace(item.Description)
	content := strings.TrimSpace(item.Content)
	if content == "" {
		content = summary
	}
	if summary == "" {
		summary = item.Title
	}

	return Entry{
		Link:      item.Link,
		Title:     strings.TrimSpace(item.Title),
		Summary:   summary,
		Content:   content,
		Published: *item.PublishedParsed,
		Images:    collectImageCandidates(item),
	}, nil
}

// collectImageCandidates gathers image URLs in priority order:
// media extension first, then image enclosures, then inline <img> tags
// from content and summary.
func collectImageCandidates(item *gofeed.Item) []ImageCandidate {
	var candidates []ImageCandidate

	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if url := ext.Attrs["url"]; url != "" {
				candidates = append(candidates, ImageCandidate{
					MimeHint: ext.Attrs["type"],
					URL:      url,
				})
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" || !strings.HasPrefix(enc.Type, "image/") {
			continue
		}
		candidates = append(candidates, ImageCandidate{MimeHint: enc.Type, URL: enc.URL})
	}

	for _, html := range []string{item.Content, item.Description} {
		for _, src := range inlineImageSources(html) {
			candidates = append(candidates, ImageCandidate{MimeHint: "text/html", URL: src})
		}
	}

	return candidates
}

// ExtractImage picks the best illustration URL for an entry:
//  1. a structured media attachment,
//  2. an enclosure with an image MIME type,
//  3. the first inline <img> from content, then summary,
//     skipping icon/emoji noise.
//
// Returns "" when nothing usable is found; images are optional downstream.
func ExtractImage(e Entry) string {
	for _, c := range e.Images {
		if c.MimeHint == "text/html" {
			if looksLikeNoise(c.URL) {
				continue
			}
			return c.URL
		}
		// media attachments and image enclosures win as-is
		return c.URL
	}
	return ""
}

func looksLikeNoise(src string) bool {
	lower := strings.ToLower(src)
	return strings.Contains(lower, "icon") || strings.Contains(lower, "emoji")
}

func inlineImageSources(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var srcs []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			srcs = append(srcs, strings.TrimSpace(src))
		}
	})
	return srcs
}
