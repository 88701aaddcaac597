package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/analysis"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/crawler"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/report"
)

// maxReputationLookups bounds the per-cycle enrichment calls.
const maxReputationLookups = 5

// CycleRequest selects the platforms and parameters for one collection
// cycle.
type CycleRequest struct {
	Platforms        []string
	Keywords         []string
	NewsURLs         []string
	ForumURLs        []string
	Subreddits       []string
	TelegramChannels []string
	OnionURLs        []string
	Limit            int
	ReportDays       int
}

// CycleResult is the outcome of one cycle: item totals plus the daily
// report computed after persistence.
type CycleResult struct {
	Collected int
	Processed int
	Report    report.Summary
}

// PipelineDeps wires the collection pipeline's collaborators.
type PipelineDeps struct {
	Registry   *crawler.Registry
	Store      ports.EvidenceStore
	Sentiment  *analysis.SentimentScorer
	Threat     *analysis.ThreatClassifier
	IOCs       *analysis.IOCExtractor
	Aggregator *report.Aggregator
	Reputation ports.ReputationClient
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Pipeline implements the collection orchestrator: fan out to adapters,
// normalize, analyze, persist, report.
type Pipeline struct {
	registry   *crawler.Registry
	store      ports.EvidenceStore
	sentiment  *analysis.SentimentScorer
	threat     *analysis.ThreatClassifier
	iocs       *analysis.IOCExtractor
	aggregator *report.Aggregator
	reputation ports.ReputationClient
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestrator.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		registry:   deps.Registry,
		store:      deps.Store,
		sentiment:  deps.Sentiment,
		threat:     deps.Threat,
		iocs:       deps.IOCs,
		aggregator: deps.Aggregator,
		reputation: deps.Reputation,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Run executes one cycle synchronously. Per-source degradation is
// contained and persisted as evidence; only storage failures surface as
// a cycle error.
func (p *Pipeline) Run(ctx context.Context, req CycleRequest) (CycleResult, error) {
	raw := p.collect(ctx, req)

	result := CycleResult{Collected: len(raw)}
	collectedAt := p.now()

	lookups := 0
	for _, item := range raw {
		ev := p.analyze(normalize(item, collectedAt))
		ev = p.annotateReputation(ctx, ev, &lookups)
		if err := p.store.Insert(ctx, ev); err != nil {
			return result, fmt.Errorf("persist evidence from %s: %w", ev.Source, err)
		}
		result.Processed++
	}

	if p.aggregator != nil {
		days := req.ReportDays
		if days <= 0 {
			days = 1
		}
		summary, err := p.aggregator.Daily(ctx, collectedAt, days)
		if err != nil {
			return result, fmt.Errorf("daily report: %w", err)
		}
		result.Report = summary
		p.publish(ctx, summary)
	}

	p.info("cycle complete", "collected", result.Collected, "processed", result.Processed)
	return result, nil
}

// collect fans out one task per enabled platform and merges results
// after every task finishes. Adapter faults are isolated: a panicking
// adapter degrades to a synthetic unavailable record and the remaining
// platforms proceed.
func (p *Pipeline) collect(ctx context.Context, req CycleRequest) []domain.RawItem {
	queries := p.queries(req)
	results := make(chan []domain.RawItem, len(queries))

	var wg sync.WaitGroup
	for platform, platformQueries := range queries {
		adapter, err := p.registry.Resolve(platform)
		if err != nil {
			p.warn("skipping platform", "platform", platform, "error", err)
			continue
		}

		wg.Add(1)
		go func(platform string, adapter *crawler.Adapter, platformQueries []crawler.Query) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					p.warn("adapter fault contained", "platform", platform, "fault", r)
					results <- []domain.RawItem{{
						Platform: platform,
						PostedAt: p.now().UTC(),
						Status:   domain.RetrievalUnavailable,
						Note:     fmt.Sprintf("adapter fault: %v", r),
					}}
				}
			}()

			var items []domain.RawItem
			for _, q := range platformQueries {
				items = append(items, adapter.Collect(ctx, q)...)
			}
			results <- items
		}(platform, adapter, platformQueries)
	}

	wg.Wait()
	close(results)

	var merged []domain.RawItem
	for items := range results {
		merged = append(merged, items...)
	}
	return merged
}

// queries expands a cycle request into per-platform query lists.
func (p *Pipeline) queries(req CycleRequest) map[string][]crawler.Query {
	out := map[string][]crawler.Query{}

	for _, platform := range req.Platforms {
		switch platform {
		case domain.PlatformNews:
			for _, u := range req.NewsURLs {
				out[platform] = append(out[platform], crawler.Query{SiteURL: u, Limit: req.Limit})
			}
		case domain.PlatformForum:
			for _, u := range req.ForumURLs {
				out[platform] = append(out[platform], crawler.Query{SiteURL: u, Limit: req.Limit})
			}
		case domain.PlatformReddit:
			for _, kw := range req.Keywords {
				out[platform] = append(out[platform], crawler.Query{
					Keyword:    kw,
					Subreddits: req.Subreddits,
					Limit:      req.Limit,
				})
			}
		case domain.PlatformTelegram:
			for _, ch := range req.TelegramChannels {
				out[platform] = append(out[platform], crawler.Query{Channel: ch, Limit: req.Limit})
			}
		case domain.PlatformDarkWeb:
			for _, u := range req.OnionURLs {
				out[platform] = append(out[platform], crawler.Query{SiteURL: u, Limit: req.Limit})
			}
		default:
			// Keyword-driven platforms (twitter, instagram, facebook,
			// linkedin, youtube).
			for _, kw := range req.Keywords {
				out[platform] = append(out[platform], crawler.Query{Keyword: kw, Limit: req.Limit})
			}
		}
	}

	return out
}

// analyze runs sentiment, threat, and IOC stages over the evidence body
// (or title when the body is empty). Stage failures degrade to safe
// defaults and never abort the cycle.
func (p *Pipeline) analyze(ev domain.Evidence) domain.Evidence {
	content := ev.Content()

	ev.SentimentLabel = domain.SentimentNeutral
	if p.sentiment != nil {
		res := p.sentiment.Score(content)
		ev.SentimentScore = res.Score
		ev.SentimentLabel = res.Label
		if res.Err != nil {
			p.warn("sentiment degraded", "source", ev.Source, "error", res.Err)
		}
	}

	ev.ThreatLevel = domain.ThreatInfo
	if p.threat != nil {
		ev.ThreatLevel = p.threat.Classify(content)
	}

	ev.IOCs = domain.IOCSet{}.Encode()
	if p.iocs != nil {
		ev.IOCs = p.iocs.Extract(content).Encode()
	}

	return ev
}

// annotateReputation enriches high-tier evidence with lookup context for
// its first extracted IP before the record is persisted. Lookups are
// bounded per cycle and best-effort: a failed lookup leaves the record
// untouched.
func (p *Pipeline) annotateReputation(ctx context.Context, ev domain.Evidence, lookups *int) domain.Evidence {
	if p.reputation == nil || *lookups >= maxReputationLookups {
		return ev
	}
	if ev.ThreatLevel != domain.ThreatHigh {
		return ev
	}
	set, err := domain.DecodeIOCSet(ev.IOCs)
	if err != nil || len(set.IPAddresses) == 0 {
		return ev
	}

	*lookups++
	rep, err := p.reputation.CheckIP(ctx, set.IPAddresses[0])
	if err != nil {
		p.warn("reputation lookup failed", "ip", set.IPAddresses[0], "error", err)
		return ev
	}

	note := fmt.Sprintf("ip %s: %s %s", rep.IP, rep.Country, rep.Org)
	if ev.StatusNote != "" {
		note = ev.StatusNote + "; " + note
	}
	ev.StatusNote = note

	p.info("high-tier indicator context",
		"ip", rep.IP, "country", rep.Country, "org", rep.Org, "source", ev.Source)
	return ev
}

func (p *Pipeline) publish(ctx context.Context, summary report.Summary) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.PublishDigest(ctx, report.Digest(summary)); err != nil {
		p.warn("digest publish failed", "error", err)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
