package news

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DailyBriefing/internal/platform/httpx"
)

// Headline is one news or disclosure item attached to the briefing.
type Headline struct {
	Source string // "GOOGLE", "SEC 8-K", "DART"
	Title  string
	Link   string
}

// Bullet renders the headline in the "[SRC] title - link" form the
// summarizer consumes.
func (h Headline) Bullet() string {
	return fmt.Sprintf("[%s] %s - %s", h.Source, h.Title, h.Link)
}

// Client fetches RSS/Atom headline feeds. Feed failures are logged and
// yield an empty list; headlines are garnish, never a reason to abort.
type Client struct {
	http   *httpx.Client
	parser *gofeed.Parser
	logger zerolog.Logger
}

// NewClient creates a feed client over the shared HTTP client.
func NewClient(http *httpx.Client) *Client {
	return &Client{
		http:   http,
		parser: gofeed.NewParser(),
		logger: log.With().Str("component", "news").Logger(),
	}
}

func (c *Client) fetchFeed(ctx context.Context, source, feedURL string, limit int) []Headline {
	body, err := c.http.Get(ctx, feedURL, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", feedURL).Msg("feed fetch failed")
		return nil
	}
	feed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		c.logger.Warn().Err(err).Str("url", feedURL).Msg("feed parse failed")
		return nil
	}

	var out []Headline
	for _, item := range feed.Items {
		if len(out) >= limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, Headline{Source: source, Title: title, Link: strings.TrimSpace(item.Link)})
	}
	return out
}

// GoogleNews returns the latest headlines for a search query.
func (c *Client) GoogleNews(ctx context.Context, query string, limit int) []Headline {
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=ko&gl=KR&ceid=KR:ko",
		url.QueryEscape(query))
	return c.fetchFeed(ctx, "GOOGLE", feedURL, limit)
}

// SECFilings returns the latest entries of an SEC 8-K Atom feed.
func (c *Client) SECFilings(ctx context.Context, atomURL string, limit int) []Headline {
	if atomURL == "" {
		return nil
	}
	return c.fetchFeed(ctx, "SEC 8-K", atomURL, limit)
}
