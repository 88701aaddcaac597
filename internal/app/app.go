package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/analysis"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/config"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/crawler"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/infrastructure/reputation"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/infrastructure/scheduler"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/infrastructure/storage"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/infrastructure/telegram"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/logging"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/report"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/usecase"
)

// Application wires configuration to the collection pipeline and its
// lifecycle.
type Application struct {
	cfg       config.Config
	store     *storage.SQLiteStore
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open evidence store: %w", err)
	}

	registry := crawler.NewRegistry()
	registry.Register(crawler.NewNewsAdapter(nil, baseLogger.With("component", "crawler.news")))
	registry.Register(crawler.NewForumAdapter(nil, baseLogger.With("component", "crawler.forum")))
	registry.Register(crawler.NewRedditAdapter(nil, baseLogger.With("component", "crawler.reddit")))
	registry.Register(crawler.NewTwitterAdapter(nil, cfg.Sources.NitterInstances, baseLogger.With("component", "crawler.twitter")))
	registry.Register(crawler.NewTelegramAdapter(nil, baseLogger.With("component", "crawler.telegram")))
	registry.Register(crawler.NewInstagramAdapter(nil, baseLogger.With("component", "crawler.instagram")))
	registry.Register(crawler.NewFacebookAdapter(baseLogger.With("component", "crawler.facebook")))
	registry.Register(crawler.NewLinkedInAdapter(baseLogger.With("component", "crawler.linkedin")))
	registry.Register(crawler.NewYouTubeAdapter(baseLogger.With("component", "crawler.youtube")))
	registry.Register(crawler.NewDarkWebAdapter(nil, cfg.Sources.TorProxy, baseLogger.With("component", "crawler.darkweb")))

	var repClient ports.ReputationClient
	if cfg.Reputation.Enabled {
		repClient = reputation.NewClient(cfg.Reputation.IPInfoBase, cfg.Reputation.IPAPIBase)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier("", cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:   registry,
		Store:      store,
		Sentiment:  analysis.NewSentimentScorer(),
		Threat:     analysis.NewThreatClassifier(),
		IOCs:       analysis.NewIOCExtractor(),
		Aggregator: report.NewAggregator(store, cfg.Reporting.TopSources),
		Reputation: repClient,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	request := cycleRequest(cfg)
	driver := scheduler.NewTickerScheduler(time.Duration(cfg.Scheduler.IntervalHours) * time.Hour)
	sched := usecase.NewScheduler(driver, pipeline, request, baseLogger.With("component", "scheduler"))

	return &Application{
		cfg:       cfg,
		store:     store,
		pipeline:  pipeline,
		scheduler: sched,
		logger:    baseLogger,
	}, nil
}

// RunOnce executes a single collection cycle and returns its result.
func (a *Application) RunOnce(ctx context.Context) (usecase.CycleResult, error) {
	return a.pipeline.Run(ctx, cycleRequest(a.cfg))
}

// RunScheduled starts the interval scheduler and blocks until ctx is
// cancelled.
func (a *Application) RunScheduled(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}

// Report computes the daily summary without collecting.
func (a *Application) Report(ctx context.Context, days int) (report.Summary, error) {
	agg := report.NewAggregator(a.store, a.cfg.Reporting.TopSources)
	return agg.Daily(ctx, time.Now(), days)
}

// Strategic computes the long-window analysis without collecting.
func (a *Application) Strategic(ctx context.Context, days int) (report.StrategicAnalysis, error) {
	agg := report.NewAggregator(a.store, a.cfg.Reporting.TopSources)
	return agg.Strategic(ctx, time.Now(), days)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func cycleRequest(cfg config.Config) usecase.CycleRequest {
	platforms := cfg.Sources.Platforms
	if len(platforms) == 0 {
		platforms = []string{domain.PlatformNews, domain.PlatformReddit}
	}
	return usecase.CycleRequest{
		Platforms:        platforms,
		Keywords:         cfg.Sources.Keywords,
		NewsURLs:         cfg.Sources.NewsURLs,
		ForumURLs:        cfg.Sources.ForumURLs,
		Subreddits:       cfg.Sources.Subreddits,
		TelegramChannels: cfg.Sources.TelegramChannels,
		OnionURLs:        cfg.Sources.OnionURLs,
		Limit:            cfg.Sources.ItemLimit,
		ReportDays:       cfg.Reporting.WindowDays,
	}
}
