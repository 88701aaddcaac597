package storage

import (
	"context"
	"testing"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sample(source string, level domain.ThreatLevel, collectedAt time.Time) domain.Evidence {
	return domain.Evidence{
		Source:         source,
		URL:            "https://example.org/item",
		Title:          "sample title",
		Body:           "sample body mentioning breach",
		Author:         "unknown",
		PostedAt:       collectedAt,
		CollectedAt:    collectedAt,
		SentimentScore: -0.4,
		SentimentLabel: domain.SentimentNegative,
		IOCs:           domain.IOCSet{IPAddresses: []string{"10.0.0.5"}}.Encode(),
		ThreatLevel:    level,
		Status:         domain.RetrievalOK,
	}
}

func TestInsertAndQueryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, sample("reddit", domain.ThreatHigh, now)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := store.Query(ctx, ports.EvidenceFilter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.ID == 0 {
		t.Fatal("id not assigned")
	}
	if got.Source != "reddit" || got.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.SentimentLabel != domain.SentimentNegative {
		t.Fatalf("unexpected sentiment label: %s", got.SentimentLabel)
	}

	set, err := domain.DecodeIOCSet(got.IOCs)
	if err != nil {
		t.Fatalf("decode iocs: %v", err)
	}
	if len(set.IPAddresses) != 1 || set.IPAddresses[0] != "10.0.0.5" {
		t.Fatalf("ioc blob lost: %+v", set)
	}
}

func TestQueryFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	seed := []domain.Evidence{
		sample("reddit", domain.ThreatHigh, now),
		sample("twitter", domain.ThreatLow, now.Add(-time.Hour)),
		sample("news", domain.ThreatHigh, now.Add(-10*24*time.Hour)),
	}
	for _, ev := range seed {
		if err := store.Insert(ctx, ev); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	byLevel, err := store.Query(ctx, ports.EvidenceFilter{ThreatLevel: domain.ThreatHigh})
	if err != nil {
		t.Fatalf("query by level: %v", err)
	}
	if len(byLevel) != 2 {
		t.Fatalf("expected 2 HIGH records, got %d", len(byLevel))
	}

	recent, err := store.Query(ctx, ports.EvidenceFilter{Since: now.Add(-2 * time.Hour)})
	if err != nil {
		t.Fatalf("query by window: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent records, got %d", len(recent))
	}
	// Newest first ordering.
	if recent[0].Source != "reddit" {
		t.Fatalf("unexpected order: %s first", recent[0].Source)
	}

	bySource, err := store.Query(ctx, ports.EvidenceFilter{SourceContains: "twit"})
	if err != nil {
		t.Fatalf("query by source: %v", err)
	}
	if len(bySource) != 1 || bySource[0].Source != "twitter" {
		t.Fatalf("unexpected source filter result: %+v", bySource)
	}

	byText, err := store.Query(ctx, ports.EvidenceFilter{TextContains: "10.0.0.5"})
	if err != nil {
		t.Fatalf("query by text: %v", err)
	}
	if len(byText) != 3 {
		t.Fatalf("ioc blob substring match failed: got %d", len(byText))
	}

	limited, err := store.Query(ctx, ports.EvidenceFilter{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit not applied: got %d", len(limited))
	}
}

func TestConcurrentInserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			done <- store.Insert(ctx, sample("forum", domain.ThreatInfo, now))
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent insert: %v", err)
		}
	}

	records, err := store.Query(ctx, ports.EvidenceFilter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected 10 records, got %d", len(records))
	}
}
