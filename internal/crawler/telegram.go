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
	telegramTimeout = 10 * time.Second
	telegramBase    = "https://t.me/s"
	maxTelegramMsgs = 20
)

// NewTelegramAdapter builds the adapter for public Telegram channel
// previews (the t.me/s web widget needs no credentials).
func NewTelegramAdapter(client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = defaultClient(telegramTimeout)
	}
	return NewAdapter(domain.PlatformTelegram, logger,
		&telegramChannelStrategy{client: client, base: telegramBase},
	)
}

type telegramChannelStrategy struct {
	client *http.Client
	base   string
}

func (s *telegramChannelStrategy) Name() string { return "telegram/channel-preview" }

func (s *telegramChannelStrategy) Fetch(ctx context.Context, q Query) ([]domain.RawItem, error) {
	channelURL := fmt.Sprintf("%s/%s", s.base, q.Channel)

	doc, err := fetchDocument(ctx, s.client, channelURL)
	if err != nil {
		return nil, err
	}

	limit := itemLimit(q, maxTelegramMsgs)
	items := make([]domain.RawItem, 0, limit)

	doc.Find("div.tgme_widget_message").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Find("div.tgme_widget_message_text").First().Text())
		if text == "" {
			return true
		}

		postedAt := time.Now().UTC()
		if stamp, ok := sel.Find("time").First().Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, stamp); err == nil {
				postedAt = parsed.UTC()
			}
		}

		items = append(items, domain.RawItem{
			Platform: domain.PlatformTelegram,
			URL:      channelURL,
			Body:     text,
			Author:   q.Channel,
			PostedAt: postedAt,
			Status:   domain.RetrievalOK,
		})
		return len(items) < limit
	})

	return items, nil
}
