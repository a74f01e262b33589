package app

import (
	"context"
	"log"
	"time"

	"github.com/Surush0098/techionn/internal/cache"
	"github.com/Surush0098/techionn/internal/config"
	"github.com/Surush0098/techionn/internal/gemini"
	"github.com/Surush0098/techionn/internal/history"
	"github.com/Surush0098/techionn/internal/logger"
	"github.com/Surush0098/techionn/internal/metrics"
	"github.com/Surush0098/techionn/internal/pipeline"
	"github.com/Surush0098/techionn/internal/ratelimit"
	"github.com/Surush0098/techionn/internal/rss"
	"github.com/Surush0098/techionn/internal/telegram"
)

// channelPublisher adapts the Telegram sink to the pipeline.
type channelPublisher struct {
	token  string
	chatID string
}

func (p *channelPublisher) Publish(_ context.Context, text, imageURL string) error {
	if imageURL != "" {
		return telegram.SendPhoto(p.token, p.chatID, imageURL, text)
	}
	return telegram.SendMessage(p.token, p.chatID, text)
}

// Run executes one full pipeline pass and exits cleanly. Scheduling
// cadence is an external concern (CI cron).
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.Debug)

	sources, err := rss.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		log.Fatalf("cannot load feed sources: %v", err)
	}
	logger.Info("starting run", "sources", len(sources))

	ctx := context.Background()
	start := time.Now()

	store := history.NewStore(cfg.HistoryFilePath, history.NewGitCommitter(cfg.HistoryFilePath))
	loaded := store.Load()
	logger.Info("history loaded", "records", loaded)

	throttle := ratelimit.NewOracleThrottle(cfg.MaxOracleCalls, cfg.OracleCallDelay)
	memo := cache.New(cfg.OracleCacheTTL)

	oracle, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, gemini.DefaultStyle(), throttle, memo)
	if err != nil {
		log.Fatalf("cannot create oracle client: %v", err)
	}
	defer oracle.Close()

	p := pipeline.New(pipeline.Deps{
		Fetcher:    rss.NewFetcher(),
		History:    store,
		Classifier: oracle,
		DupChecker: oracle,
		Generator:  oracle,
		Publisher:  &channelPublisher{token: cfg.TelegramToken, chatID: cfg.ChannelID},
	}, pipeline.Options{
		TimeWindow:       cfg.TimeWindow,
		RecentTitleLimit: cfg.RecentTitleLimit,
	})

	p.Run(ctx, sources)

	metrics.Global.RecordRun(time.Since(start))
	throttle.PrintStats()
	logger.Info("run finished",
		"duration", time.Since(start).Round(time.Second).String(),
		"published", metrics.Global.GetStats()["entries_published"],
	)
}
