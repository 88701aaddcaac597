package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

const (
	defaultTopSources = 5

	// Strategic recommendation cutoffs.
	highThreatCutoff     = 10
	negativeSentimentBar = -0.2
)

// SourceCount is one entry of the top-sources ranking.
type SourceCount struct {
	Source string
	Count  int
}

// Summary is the daily roll-up over a look-back window. It is computed
// by a pure read+fold over the store and never mutates evidence.
type Summary struct {
	WindowDays    int
	Total         int
	ByThreatLevel map[domain.ThreatLevel]int
	BySentiment   map[domain.SentimentLabel]int
	MeanSentiment float64
	TopSources    []SourceCount
}

// StrategicAnalysis is the long-window view with fixed-threshold
// recommendations.
type StrategicAnalysis struct {
	PeriodDays      int
	TotalEvents     int
	HighThreats     int
	AvgDailyEvents  float64
	SentimentTrend  float64
	Recommendations []string
}

// Aggregator folds persisted evidence into reports.
type Aggregator struct {
	store ports.EvidenceStore
	topN  int
}

// NewAggregator wires the evidence store. topN bounds the source
// ranking; zero uses the default.
func NewAggregator(store ports.EvidenceStore, topN int) *Aggregator {
	if topN <= 0 {
		topN = defaultTopSources
	}
	return &Aggregator{store: store, topN: topN}
}

// Daily computes the summary for the trailing window ending at now.
func (a *Aggregator) Daily(ctx context.Context, now time.Time, days int) (Summary, error) {
	if days <= 0 {
		days = 1
	}

	records, err := a.window(ctx, now, days)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		WindowDays:    days,
		Total:         len(records),
		ByThreatLevel: map[domain.ThreatLevel]int{},
		BySentiment:   map[domain.SentimentLabel]int{},
	}

	bySource := map[string]int{}
	var sentimentSum float64
	for _, ev := range records {
		summary.ByThreatLevel[ev.ThreatLevel]++
		summary.BySentiment[ev.SentimentLabel]++
		bySource[ev.Source]++
		sentimentSum += ev.SentimentScore
	}

	if len(records) > 0 {
		summary.MeanSentiment = sentimentSum / float64(len(records))
	}
	summary.TopSources = rankSources(bySource, a.topN)

	return summary, nil
}

// Strategic computes the long-window analysis with recommendations.
func (a *Aggregator) Strategic(ctx context.Context, now time.Time, days int) (StrategicAnalysis, error) {
	if days <= 0 {
		days = 30
	}

	records, err := a.window(ctx, now, days)
	if err != nil {
		return StrategicAnalysis{}, err
	}

	analysis := StrategicAnalysis{
		PeriodDays:  days,
		TotalEvents: len(records),
	}

	perDay := map[string]int{}
	var sentimentSum float64
	for _, ev := range records {
		if ev.ThreatLevel == domain.ThreatHigh {
			analysis.HighThreats++
		}
		perDay[ev.CollectedAt.UTC().Format("2006-01-02")]++
		sentimentSum += ev.SentimentScore
	}

	if len(records) > 0 {
		analysis.SentimentTrend = sentimentSum / float64(len(records))
	}
	if len(perDay) > 0 {
		analysis.AvgDailyEvents = float64(len(records)) / float64(len(perDay))
	}

	if analysis.HighThreats > highThreatCutoff {
		analysis.Recommendations = append(analysis.Recommendations,
			"PRIORITY: significant rise in high-level threats, escalate review")
	}
	if analysis.TotalEvents > 0 && analysis.SentimentTrend < negativeSentimentBar {
		analysis.Recommendations = append(analysis.Recommendations,
			"ATTENTION: negative sentiment dominates, monitor sources closely")
	}

	return analysis, nil
}

func (a *Aggregator) window(ctx context.Context, now time.Time, days int) ([]domain.Evidence, error) {
	records, err := a.store.Query(ctx, ports.EvidenceFilter{
		Since: now.Add(-time.Duration(days) * 24 * time.Hour),
	})
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}
	return records, nil
}

func rankSources(bySource map[string]int, topN int) []SourceCount {
	ranked := make([]SourceCount, 0, len(bySource))
	for source, count := range bySource {
		ranked = append(ranked, SourceCount{Source: source, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Source < ranked[j].Source
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Digest renders a summary as a short text message for notification
// channels.
func Digest(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Threat intel summary (last %dd): %d records\n", s.WindowDays, s.Total)
	fmt.Fprintf(&b, "Tiers: HIGH=%d MEDIUM=%d LOW=%d INFO=%d\n",
		s.ByThreatLevel[domain.ThreatHigh],
		s.ByThreatLevel[domain.ThreatMedium],
		s.ByThreatLevel[domain.ThreatLow],
		s.ByThreatLevel[domain.ThreatInfo])
	fmt.Fprintf(&b, "Sentiment: mean %.2f (pos=%d neg=%d neu=%d)\n",
		s.MeanSentiment,
		s.BySentiment[domain.SentimentPositive],
		s.BySentiment[domain.SentimentNegative],
		s.BySentiment[domain.SentimentNeutral])
	for _, src := range s.TopSources {
		fmt.Fprintf(&b, "- %s: %d\n", src.Source, src.Count)
	}
	return b.String()
}
