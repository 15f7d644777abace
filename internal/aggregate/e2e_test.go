package aggregate

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdash/internal/enrich"
	"newsdash/internal/feed"
)

const aiFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>AI</title>
<item>
  <title>AI 기술 혁신 발표</title>
  <link>https://example.com/shared</link>
  <pubDate>Mon, 05 Aug 2024 09:00:00 GMT</pubDate>
  <description>&lt;p&gt;인공지능 기술 혁신이 산업 전반의 발전을 이끌고 있다. 전문가들은 관련 데이터 분석 결과를 발표했다. 시장의 수요도 빠르게 증가하고 있다.&lt;/p&gt;</description>
</item>
<item>
  <title>AI 규제 논란</title>
  <link>https://example.com/ai-2</link>
  <pubDate>Tue, 06 Aug 2024 10:00:00 GMT</pubDate>
  <description>&lt;p&gt;새로운 규제를 둘러싼 논란과 우려가 커지고 있다. 업계는 문제 해결을 위한 협의를 이어가고 있다.&lt;/p&gt;</description>
</item>
<item>
  <title>AI 단신</title>
  <link>https://example.com/ai-3</link>
  <pubDate>Wed, 07 Aug 2024 11:00:00 GMT</pubDate>
  <description>짧은 소식</description>
</item>
</channel></rss>`

const robotFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>로봇</title>
<item>
  <title>로봇이 전한 같은 소식</title>
  <link>https://example.com/shared</link>
  <pubDate>Mon, 05 Aug 2024 09:00:00 GMT</pubDate>
  <description>&lt;p&gt;같은 기사가 다른 키워드로도 검색되었다. 중복 제거 대상이 되는 본문이다.&lt;/p&gt;</description>
</item>
<item>
  <title>로봇 시장 성장</title>
  <link>https://example.com/robot-2</link>
  <pubDate>Thu, 08 Aug 2024 09:00:00 GMT</pubDate>
  <description>&lt;p&gt;로봇 시장의 수요 증가로 성공 사례가 늘고 있다. 산업 데이터 통계가 이를 뒷받침한다.&lt;/p&gt;</description>
</item>
</channel></rss>`

func TestCollectEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "AI" {
			fmt.Fprint(w, aiFixture)
			return
		}
		fmt.Fprint(w, robotFixture)
	}))
	t.Cleanup(srv.Close)

	fetcher := feed.NewFetcher(10*time.Second, time.Hour)
	fetcher.BaseURL = srv.URL
	collector := NewCollector(fetcher)

	set := collector.Collect(Request{
		Keywords: []string{"AI", "로봇"},
		Language: feed.Korean,
		Limit:    3,
	})

	// 3 AI entries + 2 robot entries, one shared link deduplicated.
	require.Len(t, set.Articles, 4)
	assert.Empty(t, set.Warnings)

	seen := make(map[string]string)
	for _, a := range set.Articles {
		_, dup := seen[a.Link]
		assert.False(t, dup, "link %s appears twice", a.Link)
		seen[a.Link] = a.Keyword

		assert.NotEmpty(t, a.Summary)
		assert.Contains(t, []string{enrich.SentimentPositive, enrich.SentimentNegative, enrich.SentimentNeutral}, a.Sentiment)
	}
	assert.Equal(t, "AI", seen["https://example.com/shared"])

	// Per-keyword caps hold across the whole run.
	counts := set.CountByKeyword()
	for kw, n := range counts {
		assert.LessOrEqual(t, n, 3, "keyword %s over cap", kw)
	}

	// A date window selects only the matching articles; re-collecting
	// hits the fetch cache and stays deterministic.
	filtered := collector.Collect(Request{
		Keywords: []string{"AI", "로봇"},
		Language: feed.Korean,
		Limit:    3,
		From:     time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC),
		Until:    time.Date(2024, 8, 7, 23, 59, 59, 0, time.UTC),
	})
	require.Len(t, filtered.Articles, 2)
	for _, a := range filtered.Articles {
		assert.False(t, a.PublishedAt.Before(time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC)))
		assert.False(t, a.PublishedAt.After(time.Date(2024, 8, 7, 23, 59, 59, 0, time.UTC)))
	}
}
