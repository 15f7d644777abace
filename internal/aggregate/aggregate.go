// Package aggregate runs the fetch→clean→enrich pipeline per keyword and
// assembles the deduplicated article set for one collection run.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"newsdash/internal/enrich"
	"newsdash/internal/feed"
	"newsdash/internal/logger"
	"newsdash/internal/stats"
	"newsdash/internal/textclean"
)

// Article is one enriched news item. Every derived field is a pure
// function of Body, so articles are immutable after creation.
type Article struct {
	Keyword   string
	Title     string
	Link      string
	Published string
	Body      string
	Summary   string
	Keywords  string
	Sentiment string
	Tone      string
	Tags      string
	Opinion   string

	// PublishedAt is zero when the published date could not be parsed.
	PublishedAt time.Time
}

// Warning records a keyword whose fetch failed. Failures never abort the
// run; the keyword simply contributes nothing.
type Warning struct {
	Keyword string
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("keyword %q: %v", w.Keyword, w.Err)
}

// Set is the result of one collection run: link-deduplicated articles in
// keyword iteration order, plus any per-keyword warnings. It is rebuilt
// wholesale on each run.
type Set struct {
	Articles []Article
	Warnings []Warning
}

// Request describes one collection run. Zero From/Until means the bound
// is not applied.
type Request struct {
	Keywords []string
	Language feed.Language
	Limit    int
	From     time.Time
	Until    time.Time
}

// Fetcher is the feed dependency of the collector.
type Fetcher interface {
	Fetch(keyword string, lang feed.Language, limit int) ([]feed.Entry, error)
}

// Collector maps keywords to enriched articles. It holds no state of its
// own beyond its fetcher.
type Collector struct {
	fetcher Fetcher
}

func NewCollector(f Fetcher) *Collector {
	return &Collector{fetcher: f}
}

// Collect fetches every keyword in the given order, enriches each entry,
// deduplicates by link keeping the first occurrence, and applies the
// optional date range. Fetch failures become warnings; nothing aborts
// the run.
func (c *Collector) Collect(req Request) Set {
	var set Set
	seen := make(map[string]struct{})
	total := len(req.Keywords)

	for i, keyword := range req.Keywords {
		entries, err := c.fetcher.Fetch(keyword, req.Language, req.Limit)
		if err != nil {
			logger.Warn("keyword fetch failed", "keyword", keyword, "error", err)
			stats.Global.IncrementKeywordsFailed()
			set.Warnings = append(set.Warnings, Warning{Keyword: keyword, Err: err})
			logger.Info("keyword completed", "progress", fmt.Sprintf("%d/%d", i+1, total), "keyword", keyword, "articles", 0)
			continue
		}

		added := 0
		for _, entry := range entries {
			if _, dup := seen[entry.Link]; dup {
				stats.Global.IncrementDuplicatesFiltered()
				logger.Debug("duplicate link skipped", "keyword", keyword, "link", entry.Link)
				continue
			}
			seen[entry.Link] = struct{}{}

			set.Articles = append(set.Articles, buildArticle(keyword, entry))
			stats.Global.IncrementArticlesEnriched()
			added++
		}

		logger.Info("keyword completed", "progress", fmt.Sprintf("%d/%d", i+1, total), "keyword", keyword, "articles", added)
	}

	set.Articles = filterByDate(set.Articles, req.From, req.Until)
	return set
}

func buildArticle(keyword string, entry feed.Entry) Article {
	body := textclean.Clean(entry.RawSummary)
	if body == "" {
		body = entry.Title
	}

	e := enrich.Analyze(body)

	return Article{
		Keyword:     keyword,
		Title:       entry.Title,
		Link:        entry.Link,
		Published:   entry.Published,
		PublishedAt: entry.PublishedAt,
		Body:        body,
		Summary:     e.Summary,
		Keywords:    e.Keywords,
		Sentiment:   e.Sentiment,
		Tone:        e.Tone,
		Tags:        e.Tags,
		Opinion:     e.Opinion,
	}
}

// filterByDate keeps articles whose parsed date satisfies the inclusive
// bounds. Articles with an unparseable date are excluded whenever either
// bound is set.
func filterByDate(articles []Article, from, until time.Time) []Article {
	if from.IsZero() && until.IsZero() {
		return articles
	}

	return lo.Filter(articles, func(a Article, _ int) bool {
		if a.PublishedAt.IsZero() {
			return false
		}
		if !from.IsZero() && a.PublishedAt.Before(from) {
			return false
		}
		if !until.IsZero() && a.PublishedAt.After(until) {
			return false
		}
		return true
	})
}

// CountByKeyword returns how many articles each keyword contributed.
func (s Set) CountByKeyword() map[string]int {
	return lo.CountValuesBy(s.Articles, func(a Article) string { return a.Keyword })
}

// CountBySentiment returns the sentiment label distribution.
func (s Set) CountBySentiment() map[string]int {
	return lo.CountValuesBy(s.Articles, func(a Article) string { return a.Sentiment })
}

// CountByTone returns the tone label distribution.
func (s Set) CountByTone() map[string]int {
	return lo.CountValuesBy(s.Articles, func(a Article) string { return a.Tone })
}

// KeywordCloud joins every article's extracted keywords into the source
// text for a word cloud, skipping the no-keywords sentinel.
func (s Set) KeywordCloud() string {
	terms := make([]string, 0, len(s.Articles))
	for _, a := range s.Articles {
		if a.Keywords == "" || a.Keywords == enrich.NoKeywords {
			continue
		}
		terms = append(terms, a.Keywords)
	}
	return strings.Join(terms, ", ")
}
