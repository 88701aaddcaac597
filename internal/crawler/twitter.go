package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const (
	twitterTimeout = 10 * time.Second
	maxTweets      = 20
)

// defaultNitterInstances are alternative Twitter front-ends tried in
// order; each mirror is its own fallback strategy.
var defaultNitterInstances = []string{
	"https://nitter.net",
	"https://nitter.privacydev.net",
	"https://nitter.poast.org",
}

// NewTwitterAdapter builds the twitter adapter with one strategy per
// mirror instance. A nil instance list uses the defaults.
func NewTwitterAdapter(client *http.Client, instances []string, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(twitterTimeout)
	}
	if len(instances) == 0 {
		instances = defaultNitterInstances
	}

	strategies := make([]Strategy, 0, len(instances))
	for _, instance := range instances {
		strategies = append(strategies, &nitterStrategy{client: client, instance: instance})
	}
	return NewAdapter(domain.PlatformTwitter, logger, strategies...)
}

// nitterStrategy scrapes one mirror's search timeline.
type nitterStrategy struct {
	client   *http.Client
	instance string
}

func (s *nitterStrategy) Name() string {
	return "twitter/" + sourceHost(s.instance)
}

func (s *nitterStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	searchURL := fmt.Sprintf("%s/search?f=tweets&q=%s", s.instance, url.QueryEscape(q.Keyword))

	doc, err := fetchDocument(ctx, s.client, searchURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxTweets)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("div.timeline-item").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content := strings.TrimSpace(sel.Find("div.tweet-content").First().Text())
		if content == "" {
			return true
		}

		username := sel.Find("a.username").First()
		author := strings.TrimSpace(username.Text())

		link := s.instance
		if href, ok := username.Attr("href"); ok {
			link = s.instance + href
		}

		items = append(items, domain.RawItem{
			Platform: domain.PlatformTwitter,
			URL:      link,
			Body:     content,
			Author:   author,
			PostedAt: time.Now().UTC(),
			Status:   domain.RetrievalOK,
		})
		return len(items) < limit
	})

	return items, nil
}
