package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const (
	instagramTimeout = 10 * time.Second
	picukiBase       = "https://www.picuki.com"
	maxInstagramHits = 10
)

// NewInstagramAdapter builds the adapter for public Instagram hashtag
// pages, read through the Picuki front-end, which needs no credentials.
func NewInstagramAdapter(client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(instagramTimeout)
	}
	return NewAdapter(domain.PlatformInstagram, logger,
		&picukiTagStrategy{client: client, base: picukiBase},
	)
}

type picukiTagStrategy struct {
	client *http.Client
	base   string
}

func (s *picukiTagStrategy) Name() string { return "instagram/picuki-tag" }

func (s *picukiTagStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	tagURL := fmt.Sprintf("%s/tag/%s", s.base, hashtagFor(q.Keyword))

	doc, err := fetchDocument(ctx, s.client, tagURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxInstagramHits)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("div.box-photo").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Find("div.photo-description").First().Text())
		if text == "" {
			return true
		}

		items = append(items, domain.RawItem{
			Platform: domain.PlatformInstagram,
			URL:      tagURL,
			Body:     text,
			PostedAt: time.Now().UTC(),
			Status:   domain.RetrievalOK,
		})
		return len(items) < limit
	})

	return items, nil
}

// hashtagFor collapses a keyword phrase into the tag form hashtag pages
// use ("cyber attack" -> "cyberattack").
func hashtagFor(keyword string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(keyword), " ", ""))
}
