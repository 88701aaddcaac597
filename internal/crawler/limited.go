package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// NewFacebookAdapter covers the login-walled Facebook surface: the only
// strategy is the limited placeholder, which is a valid terminal result,
// not a failure.
func NewFacebookAdapter(logger *slog.Logger) *Adapter {
	return NewAdapter(domain.PlatformFacebook, logger, &limitedStrategy{
		platform: domain.PlatformFacebook,
		note:     "facebook requires authentication for detailed retrieval",
	})
}

// NewLinkedInAdapter covers LinkedIn the same way.
func NewLinkedInAdapter(logger *slog.Logger) *Adapter {
	return NewAdapter(domain.PlatformLinkedIn, logger, &limitedStrategy{
		platform: domain.PlatformLinkedIn,
		note:     "linkedin requires authentication for detailed retrieval",
	})
}

// NewYouTubeAdapter covers YouTube comments, which are unreadable at
// scale without the data API.
func NewYouTubeAdapter(logger *slog.Logger) *Adapter {
	return NewAdapter(domain.PlatformYouTube, logger, &limitedStrategy{
		platform: domain.PlatformYouTube,
		note:     "youtube data api required for comment retrieval",
	})
}

// limitedStrategy emits a single degraded placeholder so the audit trail
// records that the platform was queried but cannot be read without
// credentials.
type limitedStrategy struct {
	platform string
	note     string
}

func (s *limitedStrategy) Name() string { return s.platform + "/limited" }

func (s *limitedStrategy) Fetch(_ context.Context, q Query) ([]domain.RawItem, error) {
	return []domain.RawItem{{
		Platform: s.platform,
		Body:     fmt.Sprintf("public search for: %s", q.Keyword),
		PostedAt: time.Now().UTC(),
		Status:   domain.RetrievalDegraded,
		Note:     s.note,
	}}, nil
}
