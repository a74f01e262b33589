// Package gemini wraps the text-generation oracle behind the three
// pipeline decisions: classify, duplicate-topic check and final
// content generation.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Surush0098/techionn/internal/cache"
	"github.com/Surush0098/techionn/internal/ratelimit"
)

// Category is the publish-worthiness verdict for one entry.
type Category string

const (
	CategoryVIP    Category = "VIP"
	CategoryNormal Category = "NORMAL"
	CategoryReject Category = "REJECT"
)

// Style collapses the channel's tone/footer variants into one value.
type Style struct {
	Tone           string
	FooterIdentity string
	AllowHashtags  bool
}

// DefaultStyle is the startup-channel voice the bot publishes with.
func DefaultStyle() Style {
	return Style{
		Tone:           "Professional, VC-style, Exciting",
		FooterIdentity: "@techionn",
		AllowHashtags:  false,
	}
}

type Client struct {
	client   *genai.Client
	model    string
	style    Style
	throttle *ratelimit.OracleThrottle
	memo     *cache.Cache
}

func NewClient(ctx context.Context, apiKey, model string, style Style, throttle *ratelimit.OracleThrottle, memo *cache.Cache) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		client:   client,
		model:    model,
		style:    style,
		throttle: throttle,
		memo:     memo,
	}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Classify maps (title, summary) onto VIP/NORMAL/REJECT with a fixed
// VC-scout rubric. A transport error returns REJECT alongside the
// error so the caller can skip the entry without recording it.
func (c *Client) Classify(ctx context.Context, title, summary string) (Category, error) {
	prompt := fmt.Sprintf(`Role: Strict Venture Capital (VC) Scout.
Input News: "%s"
Summary: "%s"

Analyze the meaning regardless of language.
Categorize based on these rules:

--- VIP (Must Publish) ---
1. Fundraising / Investment rounds.
2. M&A / IPO / Exits.
3. Innovative early-stage startups and novel ideas.
4. Market statistics / growth reports.
5. Obscure/small-market startups raising money.

--- NORMAL (Publish) ---
1. Major tech shifts (e.g., AI breakthroughs).
2. Strategic business moves (not routine personnel changes).

--- REJECT (Do Not Publish) ---
1. Gadget reviews and comparisons.
2. Routine app updates/features.
3. Corporate HR / CEO changes at large well-known companies.
4. Political gossip.
5. Sales festivals / promotional content.

OUTPUT FORMAT ONLY: VIP | NORMAL | REJECT`, title, trimPromptText(summary, 2000))

	res, err := c.complete(ctx, "classify", prompt, title, summary)
	if err != nil {
		return CategoryReject, err
	}
	return ParseCategory(res), nil
}

// ParseCategory reads the oracle's free-text verdict by substring
// containment, strongest claim first. Anything ambiguous is REJECT:
// over-rejection is cheaper than publishing noise.
func ParseCategory(response string) Category {
	switch {
	case strings.Contains(response, string(CategoryVIP)):
		return CategoryVIP
	case strings.Contains(response, string(CategoryNormal)):
		return CategoryNormal
	default:
		return CategoryReject
	}
}

// IsDuplicateTopic asks whether the new title covers the same event as
// any of the recent titles, across languages. An empty window returns
// false without spending a request; an oracle error also returns false
// (fail-open) so coverage is never silently lost.
func (c *Client) IsDuplicateTopic(ctx context.Context, newTitle string, recentTitles []string) (bool, error) {
	if len(recentTitles) == 0 {
		return false, nil
	}

	prompt := fmt.Sprintf(`I have a list of recent news titles (mixed languages):
%s

New News Title: "%s"

Task: Check for Cross-Language Duplicates.
Is this new title covering the SAME EVENT as any title in the list?
(e.g., "OpenAI launched GPT-5" in two languages -> YES)

Reply ONLY with YES or NO.`, "- "+strings.Join(recentTitles, "\n- "), newTitle)

	res, err := c.complete(ctx, "duplicate", prompt, newTitle, strings.Join(recentTitles, "\n"))
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(res), "YES"), nil
}

// Generate produces the final publish-ready text. VIP stories get a
// longer treatment; foreign sources are translated, local ones
// rewritten. The smart-context footer for obscure companies is the
// oracle's job, the channel footer is always appended.
func (c *Client) Generate(ctx context.Context, title, content string, category Category, foreign bool) (string, error) {
	lengthInstr := "Concise summary (4-7 lines)"
	if category == CategoryVIP {
		lengthInstr = "Detailed summary (5-11 lines)"
	}
	actionInstr := "Rewrite in fluent Persian (improve the text)."
	if foreign {
		actionInstr = "Translate to fluent Persian."
	}
	hashtagInstr := "NO hashtags."
	if c.style.AllowHashtags {
		hashtagInstr = "Add up to three relevant hashtags at the end."
	}

	prompt := fmt.Sprintf(`Role: Tech Editor for a Startup Channel (%s).
News: %s
Content: %s

Task:
1. %s
2. %s.
3. Tone: %s.
4. Smart Context: if the startup/company is unknown to the audience, add a footer line starting with '💡' explaining what they do. If famous, DO NOT add it.
5. NO links in text. %s
6. End with: 🆔 %s`,
		c.style.FooterIdentity, title, trimPromptText(content, 6000),
		actionInstr, lengthInstr, c.style.Tone, hashtagInstr, c.style.FooterIdentity)

	res, err := c.complete(ctx, "generate", prompt, title, string(category), fmt.Sprint(foreign))
	if err != nil {
		return "", err
	}
	return SanitizeOracleText(res), nil
}

// complete runs one memoized, budgeted oracle request and applies the
// mandatory post-call pause.
func (c *Client) complete(ctx context.Context, kind, prompt string, keyParts ...string) (string, error) {
	key := cache.Key(kind, keyParts...)
	if c.memo != nil {
		if cached, ok := c.memo.Get(key); ok {
			if c.throttle != nil {
				c.throttle.RecordCacheHit()
			}
			return cached, nil
		}
	}

	if c.throttle != nil {
		if err := c.throttle.Reserve(); err != nil {
			return "", err
		}
		defer c.throttle.Pause(ctx)
	}

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("oracle %s request: %w", kind, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("oracle %s request: empty response", kind)
	}

	text := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if c.memo != nil {
		c.memo.Set(key, text)
	}
	return text, nil
}

// trimPromptText collapses whitespace and cuts over-long input on a
// rune boundary, preferring a sentence end.
func trimPromptText(text string, maxRunes int) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	trimmed := string(runes[:maxRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxRunes/4 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + " [TRUNCATED]"
}
