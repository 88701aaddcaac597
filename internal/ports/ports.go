package ports

import (
	"context"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// EvidenceFilter narrows an evidence query. Zero values disable a clause.
type EvidenceFilter struct {
	Since          time.Time
	ThreatLevel    domain.ThreatLevel
	SentimentLabel domain.SentimentLabel
	SourceContains string
	TextContains   string
	Limit          int
}

// EvidenceStore persists evidence records append-only and serves filtered
// reads for reporting.
type EvidenceStore interface {
	Insert(ctx context.Context, ev domain.Evidence) error
	Query(ctx context.Context, filter EvidenceFilter) ([]domain.Evidence, error)
}

// ReputationClient resolves context for extracted network indicators.
type ReputationClient interface {
	CheckIP(ctx context.Context, ip string) (domain.IPReputation, error)
}

// Notifier publishes report digests to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when collection cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
