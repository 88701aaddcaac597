package report

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

type fakeStore struct {
	records []domain.Evidence
	err     error
	queries int
}

func (f *fakeStore) Insert(_ context.Context, ev domain.Evidence) error {
	f.records = append(f.records, ev)
	return nil
}

func (f *fakeStore) Query(_ context.Context, filter ports.EvidenceFilter) ([]domain.Evidence, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Evidence
	for _, ev := range f.records {
		if !filter.Since.IsZero() && ev.CollectedAt.Before(filter.Since) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func seededStore(now time.Time) *fakeStore {
	return &fakeStore{records: []domain.Evidence{
		{Source: "reddit", ThreatLevel: domain.ThreatHigh, SentimentLabel: domain.SentimentNegative, SentimentScore: -0.6, CollectedAt: now.Add(-1 * time.Hour)},
		{Source: "reddit", ThreatLevel: domain.ThreatLow, SentimentLabel: domain.SentimentNeutral, SentimentScore: 0, CollectedAt: now.Add(-2 * time.Hour)},
		{Source: "twitter", ThreatLevel: domain.ThreatMedium, SentimentLabel: domain.SentimentNegative, SentimentScore: -0.3, CollectedAt: now.Add(-3 * time.Hour)},
		{Source: "news", ThreatLevel: domain.ThreatInfo, SentimentLabel: domain.SentimentPositive, SentimentScore: 0.3, CollectedAt: now.Add(-30 * 24 * time.Hour)},
	}}
}

func TestDailySummaryCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	agg := NewAggregator(seededStore(now), 3)

	summary, err := agg.Daily(context.Background(), now, 7)
	if err != nil {
		t.Fatalf("Daily error: %v", err)
	}

	if summary.Total != 3 {
		t.Fatalf("expected 3 records in window, got %d", summary.Total)
	}
	if summary.ByThreatLevel[domain.ThreatHigh] != 1 || summary.ByThreatLevel[domain.ThreatMedium] != 1 {
		t.Fatalf("unexpected tier counts: %+v", summary.ByThreatLevel)
	}
	if summary.BySentiment[domain.SentimentNegative] != 2 {
		t.Fatalf("unexpected sentiment counts: %+v", summary.BySentiment)
	}

	wantMean := (-0.6 + 0 + -0.3) / 3
	if diff := summary.MeanSentiment - wantMean; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("mean sentiment %v, want %v", summary.MeanSentiment, wantMean)
	}

	if len(summary.TopSources) == 0 || summary.TopSources[0].Source != "reddit" || summary.TopSources[0].Count != 2 {
		t.Fatalf("unexpected top sources: %+v", summary.TopSources)
	}
}

func TestDailyIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	agg := NewAggregator(seededStore(now), 3)

	first, err := agg.Daily(context.Background(), now, 7)
	if err != nil {
		t.Fatalf("first Daily error: %v", err)
	}
	second, err := agg.Daily(context.Background(), now, 7)
	if err != nil {
		t.Fatalf("second Daily error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestStrategicRecommendations(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{}
	for i := 0; i < 12; i++ {
		store.records = append(store.records, domain.Evidence{
			Source:         "forum",
			ThreatLevel:    domain.ThreatHigh,
			SentimentLabel: domain.SentimentNegative,
			SentimentScore: -0.5,
			CollectedAt:    now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}

	agg := NewAggregator(store, 0)
	analysis, err := agg.Strategic(context.Background(), now, 30)
	if err != nil {
		t.Fatalf("Strategic error: %v", err)
	}

	if analysis.HighThreats != 12 {
		t.Fatalf("expected 12 high threats, got %d", analysis.HighThreats)
	}
	if len(analysis.Recommendations) != 2 {
		t.Fatalf("expected priority and sentiment recommendations, got %v", analysis.Recommendations)
	}
	if analysis.AvgDailyEvents < 0.99 || analysis.AvgDailyEvents > 1.01 {
		t.Fatalf("unexpected avg daily events: %v", analysis.AvgDailyEvents)
	}
}

func TestStrategicQuietWindowHasNoRecommendations(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{records: []domain.Evidence{
		{Source: "news", ThreatLevel: domain.ThreatInfo, SentimentLabel: domain.SentimentNeutral, CollectedAt: now.Add(-time.Hour)},
	}}

	agg := NewAggregator(store, 0)
	analysis, err := agg.Strategic(context.Background(), now, 7)
	if err != nil {
		t.Fatalf("Strategic error: %v", err)
	}
	if len(analysis.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", analysis.Recommendations)
	}
}

func TestDailyPropagatesStoreError(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(&fakeStore{err: errors.New("disk full")}, 0)
	if _, err := agg.Daily(context.Background(), time.Now(), 1); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
