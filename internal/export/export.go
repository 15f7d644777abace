// Package export renders article records into the two artifact formats
// the dashboard offers: a CSV of selected records and a plain-text block
// per bookmarked article.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"newsdash/internal/aggregate"
)

// utf8BOM keeps the CSV readable in spreadsheet tools that guess the
// encoding of Korean text.
const utf8BOM = "\ufeff"

const textHeader = "=== 북마크된 뉴스 요약 ===\n\n"

var csvHeader = []string{"키워드", "제목", "요약", "감성", "콘텐츠톤", "키워드추출", "태그", "한줄평", "링크"}

var ruleLine = strings.Repeat("=", 60)

// WriteCSV writes the delimited record export.
func WriteCSV(w io.Writer, articles []aggregate.Article) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	rows := append([][]string{csvHeader}, lo.Map(articles, func(a aggregate.Article, _ int) []string {
		return []string{a.Keyword, a.Title, a.Summary, a.Sentiment, a.Tone, a.Keywords, a.Tags, a.Opinion, a.Link}
	})...)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteText writes one fixed multi-line block per article, separated by
// a rule line.
func WriteText(w io.Writer, articles []aggregate.Article) error {
	var b strings.Builder
	b.WriteString(textHeader)

	for _, a := range articles {
		b.WriteString(fmt.Sprintf(`
📰 제목: %s
🔗 링크: %s
📅 날짜: %s
🧾 요약: %s
💭 한줄평: %s
😶 감성: %s | 🧐 톤: %s
🏷️ 키워드: %s
🏷️ 태그: %s

%s

`, a.Title, a.Link, a.Published, a.Summary, a.Opinion, a.Sentiment, a.Tone, a.Keywords, a.Tags, ruleLine))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text export: %w", err)
	}
	return nil
}

// CSVFile writes the CSV export to path.
func CSVFile(path string, articles []aggregate.Article) error {
	return toFile(path, articles, WriteCSV)
}

// TextFile writes the plain-text export to path.
func TextFile(path string, articles []aggregate.Article) error {
	return toFile(path, articles, WriteText)
}

func toFile(path string, articles []aggregate.Article, write func(io.Writer, []aggregate.Article) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := write(f, articles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
