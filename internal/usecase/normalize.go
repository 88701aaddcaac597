package usecase

import (
	"strings"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const unknownAuthor = "unknown"

// normalize maps one raw adapter item onto an evidence draft: bounded
// title/body, defaulted author, and a stamped collection time. Analysis
// fields are filled afterwards by the pipeline.
func normalize(raw domain.RawItem, collectedAt time.Time) domain.Evidence {
	author := strings.TrimSpace(raw.Author)
	if author == "" {
		author = unknownAuthor
	}

	postedAt := raw.PostedAt
	if postedAt.IsZero() {
		postedAt = collectedAt
	}

	status := raw.Status
	if status == "" {
		status = domain.RetrievalOK
	}

	return domain.Evidence{
		Source:      raw.Platform,
		URL:         raw.URL,
		Title:       domain.TruncateTitle(strings.TrimSpace(raw.Title)),
		Body:        domain.TruncateBody(strings.TrimSpace(raw.Body)),
		Author:      author,
		PostedAt:    postedAt.UTC(),
		CollectedAt: collectedAt.UTC(),
		Status:      status,
		StatusNote:  raw.Note,
	}
}
