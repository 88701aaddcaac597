package crawler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const (
	newsTimeout      = 10 * time.Second
	maxNewsArticles  = 20
	maxForumPosts    = 30
	minBodyTextRunes = 40
)

// NewNewsAdapter builds the news-site adapter: structured article
// extraction first, then a looser paragraph sweep for portals without an
// article layout.
func NewNewsAdapter(client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(newsTimeout)
	}
	return NewAdapter(domain.PlatformNews, logger,
		&newsArticleStrategy{client: client},
		&newsParagraphStrategy{client: client},
	)
}

// newsArticleStrategy extracts <article> blocks with a headline and a
// content-classed element, mirroring how cyber-news portals mark up
// their listings.
type newsArticleStrategy struct {
	client *http.Client
}

func (s *newsArticleStrategy) Name() string { return "news/articles" }

func (s *newsArticleStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, s.client, q.SiteURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxNewsArticles)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("article").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h1, h2, h3").First().Text())
		body := strings.TrimSpace(sel.Find(
			"[class*=content], [class*=text], [class*=body]").First().Text())
		if title == "" || body == "" {
			return true
		}

		link := q.SiteURL
		if href, ok := sel.Find("a").First().Attr("href"); ok {
			link = absoluteURL(q.SiteURL, href)
		}

		items = append(items, domain.RawItem{
			Platform: domain.PlatformNews,
			URL:      link,
			Title:    title,
			Body:     body,
			Author:   sourceHost(q.SiteURL),
			PostedAt: time.Now().UTC(),
			Status:   domain.RetrievalOK,
		})
		return len(items) < limit
	})

	return items, nil
}

// newsParagraphStrategy is the degraded fallback: harvest headline and
// leading paragraphs when the page has no article markup. Items are
// tagged degraded so the provenance survives into storage.
type newsParagraphStrategy struct {
	client *http.Client
}

func (s *newsParagraphStrategy) Name() string { return "news/paragraphs" }

func (s *newsParagraphStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	doc, err := fetchDocument(ctx, s.client, q.SiteURL)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var paragraphs []string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) >= minBodyTextRunes {
			paragraphs = append(paragraphs, text)
		}
		return len(paragraphs) < maxNewsArticles
	})

	if len(paragraphs) == 0 {
		return nil, nil
	}

	return []domain.RawItem{{
		Platform: domain.PlatformNews,
		URL:      q.SiteURL,
		Title:    title,
		Body:     strings.Join(paragraphs, " "),
		Author:   sourceHost(q.SiteURL),
		PostedAt: time.Now().UTC(),
		Status:   domain.RetrievalDegraded,
		Note:     "loose paragraph extraction, no article markup",
	}}, nil
}

func itemLimit(q Query, fallback int) int {
	if q.Limit > 0 {
		return q.Limit
	}
	return fallback
}

func sourceHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Host
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return parsed.ResolveReference(ref).String()
}
