// Package app wires the pipeline together: config → collect → render →
// export.
package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"newsdash/internal/aggregate"
	"newsdash/internal/config"
	"newsdash/internal/enrich"
	"newsdash/internal/export"
	"newsdash/internal/feed"
	"newsdash/internal/logger"
	"newsdash/internal/session"
	"newsdash/internal/stats"
)

var sentimentEmoji = map[string]string{
	enrich.SentimentPositive: "🟢",
	enrich.SentimentNegative: "🔴",
	enrich.SentimentNeutral:  "🟡",
}

var toneEmoji = map[string]string{
	enrich.ToneInformational: "ℹ️",
	enrich.ToneEmotional:     "💬",
	enrich.ToneAnalytical:    "🧐",
}

// Run executes one collection run and renders the result set.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Debug)

	fetcher := feed.NewFetcher(cfg.RequestTimeout, cfg.CacheTTL)
	collector := aggregate.NewCollector(fetcher)
	state := session.NewState()

	req := aggregate.Request{
		Keywords: cfg.Keywords,
		Language: feed.ParseLanguage(cfg.Language),
		Limit:    cfg.MaxItems,
		From:     cfg.From,
		Until:    cfg.Until,
	}

	logger.Info("collection started", "keywords", len(req.Keywords), "language", string(req.Language), "limit", req.Limit)
	start := time.Now()
	set := collector.Collect(req)
	stats.Global.RecordRun(time.Since(start))

	state.SetArticles(set)
	for _, link := range cfg.BookmarkLinks {
		state.Bookmark(link)
	}

	render(os.Stdout, set)

	if cfg.CSVExportPath != "" {
		if err := export.CSVFile(cfg.CSVExportPath, set.Articles); err != nil {
			logger.Error("csv export failed", "path", cfg.CSVExportPath, "error", err)
		} else {
			logger.Info("csv export written", "path", cfg.CSVExportPath, "articles", len(set.Articles))
		}
	}

	if cfg.TextExportPath != "" {
		bookmarked := state.Bookmarked()
		if len(bookmarked) == 0 {
			logger.Info("no bookmarked articles, skipping text export")
		} else if err := export.TextFile(cfg.TextExportPath, bookmarked); err != nil {
			logger.Error("text export failed", "path", cfg.TextExportPath, "error", err)
		} else {
			logger.Info("text export written", "path", cfg.TextExportPath, "articles", len(bookmarked))
		}
	}

	logger.Info("collection finished", "articles", len(set.Articles), "warnings", len(set.Warnings))
	return nil
}

// render prints the dashboard as plain text: article list, then the
// aggregate counts behind the original charts.
func render(w io.Writer, set aggregate.Set) {
	var b strings.Builder

	b.WriteString("📰 뉴스 요약 대시보드\n")
	b.WriteString(strings.Repeat("━", 40) + "\n\n")

	if len(set.Articles) == 0 {
		b.WriteString("수집된 뉴스가 없습니다.\n")
	}

	for _, a := range set.Articles {
		b.WriteString(formatArticle(a))
	}

	if len(set.Articles) > 0 {
		b.WriteString("📊 통계\n")
		writeCounts(&b, "🔢 키워드별 뉴스 수", set.CountByKeyword())
		writeCounts(&b, "😶 감성 분포", set.CountBySentiment())
		writeCounts(&b, "🧐 콘텐츠 톤 분포", set.CountByTone())
		if cloud := set.KeywordCloud(); cloud != "" {
			b.WriteString("☁️ 워드클라우드 키워드: " + cloud + "\n")
		}
		b.WriteString("\n")
	}

	for _, warning := range set.Warnings {
		b.WriteString("⚠️ " + warning.String() + "\n")
	}

	fmt.Fprint(w, b.String())
}

func formatArticle(a aggregate.Article) string {
	var b strings.Builder

	sentiEmo := sentimentEmoji[a.Sentiment]
	toneEmo := toneEmoji[a.Tone]

	b.WriteString(fmt.Sprintf("%s%s %s\n", sentiEmo, toneEmo, a.Title))
	b.WriteString(fmt.Sprintf("🔗 %s\n", a.Link))
	b.WriteString(fmt.Sprintf("📅 %s | 감성: %s | 톤: %s | %s\n", a.Published, a.Sentiment, a.Tone, a.Tags))
	b.WriteString(fmt.Sprintf("🧾 요약: %s\n", a.Summary))
	b.WriteString(fmt.Sprintf("💡 한줄평: %s\n", a.Opinion))
	b.WriteString(fmt.Sprintf("🏷️ %s\n", a.Keywords))
	b.WriteString(strings.Repeat("─", 40) + "\n\n")

	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts map[string]int) {
	b.WriteString(title + "\n")

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s: %d\n", k, counts[k]))
	}
}
