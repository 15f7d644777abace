package feed

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>검색 결과</title>
<item>
  <title>AI 기사 하나</title>
  <link>https://news.google.com/rss/articles/abc?url=https%3A%2F%2Fexample.com%2Fai-1&amp;oc=5</link>
  <pubDate>Mon, 05 Aug 2024 09:00:00 GMT</pubDate>
  <description>&lt;p&gt;인공지능 기술이 발전하고 있다.&lt;/p&gt;</description>
</item>
<item>
  <title>AI 기사 둘</title>
  <link>https://example.com/ai-2</link>
  <description>본문</description>
</item>
<item>
  <title>AI 기사 셋</title>
  <link>https://example.com/ai-3</link>
  <pubDate>Tue, 06 Aug 2024 09:00:00 GMT</pubDate>
</item>
</channel></rss>`

func newTestFetcher(t *testing.T, handler http.Handler) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := NewFetcher(10*time.Second, time.Hour)
	f.BaseURL = srv.URL
	return f
}

func fixtureHandler(hits *atomic.Int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		io.WriteString(w, feedFixture)
	})
}

func TestFetchRespectsLimit(t *testing.T) {
	f := newTestFetcher(t, fixtureHandler(nil))

	entries, err := f.Fetch("AI", Korean, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = f.Fetch("AI", Korean, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestFetchUnwrapsRedirectLinks(t *testing.T) {
	f := newTestFetcher(t, fixtureHandler(nil))

	entries, err := f.Fetch("AI", Korean, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "https://example.com/ai-1", entries[0].Link)
	assert.Equal(t, "https://example.com/ai-2", entries[1].Link)
}

func TestFetchParsesDates(t *testing.T) {
	f := newTestFetcher(t, fixtureHandler(nil))

	entries, err := f.Fetch("AI", Korean, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want := time.Date(2024, 8, 5, 9, 0, 0, 0, time.UTC)
	assert.True(t, entries[0].PublishedAt.Equal(want), "got %v", entries[0].PublishedAt)

	// The undated entry defaults to fetch time.
	assert.NotEmpty(t, entries[1].Published)
	assert.WithinDuration(t, time.Now(), entries[1].PublishedAt, time.Minute)
}

func TestFetchCachesPerRequest(t *testing.T) {
	var hits atomic.Int64
	f := newTestFetcher(t, fixtureHandler(&hits))

	_, err := f.Fetch("AI", Korean, 3)
	require.NoError(t, err)
	_, err = f.Fetch("AI", Korean, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	// A different limit is a different request.
	_, err = f.Fetch("AI", Korean, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestFetchServerError(t *testing.T) {
	f := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	entries, err := f.Fetch("AI", Korean, 3)
	assert.Error(t, err)
	assert.Empty(t, entries)
}

func TestFetchSendsLanguageParams(t *testing.T) {
	var gotQuery string
	f := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, feedFixture)
	}))

	_, err := f.Fetch("로봇", English, 1)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "hl=en")
	assert.Contains(t, gotQuery, "ceid=KR%3Aen")
	assert.Contains(t, gotQuery, "q=%EB%A1%9C%EB%B4%87")
}

func TestUnwrapLink(t *testing.T) {
	assert.Equal(t, "https://example.com/x",
		unwrapLink("https://news.google.com/articles/a?url=https%3A%2F%2Fexample.com%2Fx"))
	// No embedded url parameter: keep verbatim.
	assert.Equal(t, "https://news.google.com/articles/a?oc=5",
		unwrapLink("https://news.google.com/articles/a?oc=5"))
	// Not a Google News link: keep verbatim even with a url parameter.
	assert.Equal(t, "https://example.com/a?url=https%3A%2F%2Fother.com",
		unwrapLink("https://example.com/a?url=https%3A%2F%2Fother.com"))
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, Korean, ParseLanguage("한국어"))
	assert.Equal(t, Korean, ParseLanguage(""))
	assert.Equal(t, English, ParseLanguage("영어"))
	assert.Equal(t, English, ParseLanguage("en"))
	assert.Equal(t, "ko", Korean.Code())
	assert.Equal(t, "en", English.Code())
}
