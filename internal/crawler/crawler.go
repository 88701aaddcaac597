package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// Query carries the platform-specific parameters for one collection
// target: a keyword, a channel, a subreddit list, or a site URL,
// depending on the platform.
type Query struct {
	Keyword    string
	Subreddits []string
	Channel    string
	SiteURL    string
	Limit      int
}

// Strategy is one retrieval approach inside an adapter's fallback chain
// (a mirror endpoint, an alternate API path, a looser parse). A failed
// attempt returns a *FetchError so the chain can classify it.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.RawItem, error)
}

const (
	minCourtesyDelay = 1 * time.Second
	maxCourtesyDelay = 3 * time.Second
)

// Adapter runs an ordered strategy chain for one platform. Collect is
// total: it never returns an error, degrading to a synthetic
// "unavailable" item when every strategy is exhausted.
type Adapter struct {
	platform   string
	strategies []Strategy
	logger     *slog.Logger
	delay      func() time.Duration
}

// NewAdapter wires the fallback chain for a platform. Strategy order is
// the fallback order.
func NewAdapter(platform string, logger *slog.Logger, strategies ...Strategy) *Adapter {
	return &Adapter{
		platform:   platform,
		strategies: strategies,
		logger:     logger,
		delay:      courtesyDelay,
	}
}

// Platform identifies the adapter inside the registry.
func (a *Adapter) Platform() string {
	return a.platform
}

// Collect tries each strategy in order and stops at the first one that
// yields at least one item. Failures are classified and logged, then the
// chain advances after a randomized courtesy pause. Cancellation stops
// the chain promptly.
func (a *Adapter) Collect(ctx context.Context, q Query) []domain.RawItem {
	lastNote := "no strategies configured"

	for i, strategy := range a.strategies {
		if err := ctx.Err(); err != nil {
			lastNote = fmt.Sprintf("cancelled before strategy %s: %v", strategy.Name(), err)
			break
		}

		items, err := strategy.Fetch(ctx, q)
		if err != nil {
			outcome := OutcomeOf(err)
			a.debug("strategy failed",
				"strategy", strategy.Name(),
				"outcome", string(outcome),
				"error", err)
			lastNote = fmt.Sprintf("%s (%s): %v", strategy.Name(), outcome, err)
			a.pause(ctx, i)
			continue
		}

		if len(items) > 0 {
			a.debug("strategy succeeded", "strategy", strategy.Name(), "items", len(items))
			return items
		}

		a.debug("strategy returned no items", "strategy", strategy.Name())
		lastNote = fmt.Sprintf("%s: no items", strategy.Name())
		a.pause(ctx, i)
	}

	return []domain.RawItem{a.unavailable(lastNote)}
}

func (a *Adapter) unavailable(note string) domain.RawItem {
	return domain.RawItem{
		Platform: a.platform,
		PostedAt: time.Now().UTC(),
		Status:   domain.RetrievalUnavailable,
		Note:     note,
	}
}

// pause inserts the between-strategy courtesy wait. It is a fixed-range
// pause, not a backoff, and it respects cancellation.
func (a *Adapter) pause(ctx context.Context, index int) {
	if index >= len(a.strategies)-1 || a.delay == nil {
		return
	}

	timer := time.NewTimer(a.delay())
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (a *Adapter) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func courtesyDelay() time.Duration {
	return minCourtesyDelay + time.Duration(rand.Int63n(int64(maxCourtesyDelay-minCourtesyDelay)))
}

// Registry maps platform identifiers to their adapters. Adapters are
// registered once at configuration time; cycles never perform dynamic
// lookup beyond this table.
type Registry struct {
	adapters map[string]*Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]*Adapter{}}
}

// Register adds or replaces an adapter.
func (r *Registry) Register(adapter *Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]*Adapter{}
	}
	r.adapters[adapter.Platform()] = adapter
}

// Resolve returns the adapter for a platform or an error when absent.
func (r *Registry) Resolve(platform string) (*Adapter, error) {
	if adapter, ok := r.adapters[platform]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("platform %s is not registered", platform)
}
