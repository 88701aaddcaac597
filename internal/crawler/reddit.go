package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const (
	redditTimeout = 15 * time.Second
	redditBase    = "https://old.reddit.com"
	maxRedditHits = 20
)

// NewRedditAdapter builds the reddit adapter using the old.reddit.com
// JSON search surface: subreddit-scoped search first, site-wide search
// as the fallback.
func NewRedditAdapter(client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(redditTimeout)
	}
	return NewAdapter(domain.PlatformReddit, logger,
		&redditSearchStrategy{client: client, base: redditBase, scoped: true},
		&redditSearchStrategy{client: client, base: redditBase, scoped: false},
	)
}

type redditSearchStrategy struct {
	client *http.Client
	base   string
	scoped bool
}

func (s *redditSearchStrategy) Name() string {
	if s.scoped {
		return "reddit/subreddit-search"
	}
	return "reddit/site-search"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Subreddit  string  `json:"subreddit"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

func (s *redditSearchStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	// Nothing to scope to; yield nothing so the chain moves on to the
	// site-wide search instead of hitting the same endpoint twice.
	if s.scoped && len(q.Subreddits) == 0 {
		return nil, nil
	}

	limit := itemLimit(q, maxRedditHits)

	var items []domain.RawItem
	for _, endpoint := range s.endpoints(q, limit) {
		var listing redditListing
		if err := fetchJSON(ctx, s.client, endpoint, &listing); err != nil {
			return nil, err
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			items = append(items, domain.RawItem{
				Platform: domain.PlatformReddit,
				URL:      "https://reddit.com" + post.Permalink,
				Title:    post.Title,
				Body:     post.Selftext,
				Author:   post.Author,
				PostedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
				Status:   domain.RetrievalOK,
			})
			if len(items) >= limit {
				return items, nil
			}
		}
	}

	return items, nil
}

func (s *redditSearchStrategy) endpoints(q Query, limit int) []string {
	escaped := url.QueryEscape(q.Keyword)

	if !s.scoped {
		return []string{fmt.Sprintf("%s/search.json?q=%s&limit=%d", s.base, escaped, limit)}
	}

	endpoints := make([]string, 0, len(q.Subreddits))
	for _, sub := range q.Subreddits {
		endpoints = append(endpoints, fmt.Sprintf(
			"%s/r/%s/search.json?q=%s&restrict_sr=on&limit=%d", s.base, sub, escaped, limit))
	}
	return endpoints
}
