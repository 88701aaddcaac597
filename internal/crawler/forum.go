package crawler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// NewForumAdapter builds the forum/board adapter. Forums vary wildly in
// markup, so the chain goes from post-classed blocks to a loose
// paragraph sweep.
func NewForumAdapter(client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(newsTimeout)
	}
	return NewAdapter(domain.PlatformForum, logger,
		&forumPostStrategy{client: client},
		&forumLooseStrategy{client: client},
	)
}

// forumPostStrategy extracts elements whose class hints at a post or
// thread message, with best-effort author attribution.
type forumPostStrategy struct {
	client *http.Client
}

func (s *forumPostStrategy) Name() string { return "forum/posts" }

func (s *forumPostStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, s.client, q.SiteURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxForumPosts)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("[class*=post], [class*=thread], [class*=message]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		body := strings.TrimSpace(sel.Find(
			"[class*=content], [class*=message], [class*=text]").First().Text())
		if body == "" {
			return true
		}

		author := strings.TrimSpace(sel.Find(
			"[class*=author], [class*=user], [class*=poster]").First().Text())

		items = append(items, domain.RawItem{
			Platform: domain.PlatformForum,
			URL:      q.SiteURL,
			Body:     body,
			Author:   author,
			PostedAt: time.Now().UTC(),
			Status:   domain.RetrievalOK,
		})
		return len(items) < limit
	})

	return items, nil
}

// forumLooseStrategy falls back to bare paragraph harvesting when the
// board markup carries no recognizable post classes.
type forumLooseStrategy struct {
	client *http.Client
}

func (s *forumLooseStrategy) Name() string { return "forum/loose" }

func (s *forumLooseStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, s.client, q.SiteURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxForumPosts)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("p, blockquote").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) < minBodyTextRunes {
			return true
		}
		items = append(items, domain.RawItem{
			Platform: domain.PlatformForum,
			URL:      q.SiteURL,
			Body:     text,
			PostedAt: time.Now().UTC(),
			Status:   domain.RetrievalDegraded,
			Note:     "loose extraction, no post markup",
		})
		return len(items) < limit
	})

	return items, nil
}
