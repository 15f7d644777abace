// Package feed fetches Google News RSS search results for a keyword.
package feed

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"newsdash/internal/cache"
	"newsdash/internal/logger"
	"newsdash/internal/stats"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// Language selects the news language for search requests.
type Language string

const (
	Korean  Language = "한국어"
	English Language = "영어"
)

// ParseLanguage maps config values onto a Language. Anything that is not
// recognizably English means Korean, matching the two-option selector of
// the dashboard.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(English), "en", "english":
		return English
	default:
		return Korean
	}
}

// Code returns the hl/ceid language code for feed requests.
func (l Language) Code() string {
	if l == English {
		return "en"
	}
	return "ko"
}

// Entry is one news item as retrieved from the feed, before enrichment.
type Entry struct {
	Title      string
	Link       string
	Published  string
	RawSummary string

	// PublishedAt is the best-effort parse of Published; the zero time
	// marks an unparseable date.
	PublishedAt time.Time
}

// Fetcher retrieves feed entries per keyword. Results are cached per
// (keyword, language, limit) for the configured TTL, so repeating a
// request within a session skips the network.
type Fetcher struct {
	// BaseURL is the feed search endpoint; tests point it at a fixture
	// server.
	BaseURL string

	client *http.Client
	parser *gofeed.Parser
	cache  *cache.Cache[[]Entry]
	ttl    time.Duration
}

func NewFetcher(timeout, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
		parser:  gofeed.NewParser(),
		cache:   cache.New[[]Entry](),
		ttl:     cacheTTL,
	}
}

// Fetch returns at most limit entries for the keyword, in feed order.
// Network and parse failures surface as errors; the caller downgrades
// them to per-keyword warnings.
func (f *Fetcher) Fetch(keyword string, lang Language, limit int) ([]Entry, error) {
	key := cache.Key(keyword, string(lang), limit)
	if entries, ok := f.cache.Get(key); ok {
		stats.Global.IncrementCacheHits()
		logger.Debug("feed cache hit", "keyword", keyword)
		return entries, nil
	}
	stats.Global.IncrementCacheMisses()

	resp, err := f.client.Get(f.searchURL(keyword, lang))
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed for %q: status %d", keyword, resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %q: %w", keyword, err)
	}

	entries := make([]Entry, 0, limit)
	for _, item := range parsed.Items {
		if len(entries) >= limit {
			break
		}
		if item == nil || (item.Title == "" && item.Link == "") {
			logger.Warn("skipping malformed feed entry", "keyword", keyword)
			continue
		}
		entries = append(entries, buildEntry(item))
		stats.Global.IncrementEntriesFetched()
	}

	f.cache.Set(key, entries, f.ttl)
	logger.Debug("feed fetched", "keyword", keyword, "entries", len(entries))
	return entries, nil
}

func (f *Fetcher) searchURL(keyword string, lang Language) string {
	code := lang.Code()
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("hl", code)
	q.Set("gl", "KR")
	q.Set("ceid", "KR:"+code)
	return f.BaseURL + "?" + q.Encode()
}

func buildEntry(item *gofeed.Item) Entry {
	e := Entry{
		Title:      item.Title,
		Link:       unwrapLink(item.Link),
		Published:  item.Published,
		RawSummary: item.Description,
	}

	if e.Published == "" {
		// Undated entries get the fetch time. Re-fetching after cache
		// expiry moves that date; documented behavior, kept from the
		// original dashboard.
		now := time.Now()
		e.Published = now.Format("2006-01-02")
		e.PublishedAt = now
		return e
	}

	e.PublishedAt = parsePublished(item)
	return e
}

// unwrapLink extracts the real article URL when the feed wrapped it in a
// Google News redirect. Anything that fails to parse keeps the original
// link.
func unwrapLink(link string) string {
	if !strings.Contains(link, "news.google.com") || !strings.Contains(link, "url=") {
		return link
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	if embedded := parsed.Query().Get("url"); embedded != "" {
		return embedded
	}
	return link
}

func parsePublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if t, err := dateparse.ParseAny(item.Published); err == nil {
		return t
	}
	return time.Time{}
}
