// Package enrich derives summary, keywords, sentiment, tone, tags and a
// one-line opinion from cleaned article text. Every function is
// deterministic and driven by fixed keyword lists; there is no model
// call anywhere. Sentiment and tone deliberately use plain substring
// containment rather than token matching, so a marker inside a longer
// word still counts.
package enrich

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Sentiment labels.
const (
	SentimentPositive = "긍정"
	SentimentNegative = "부정"
	SentimentNeutral  = "중립"
)

// Tone labels.
const (
	ToneAnalytical    = "분석적"
	ToneEmotional     = "감정적"
	ToneInformational = "정보성"
)

// Sentinel outputs for insufficient input.
const (
	NoSummary  = "요약 불가 (본문 부족)"
	NoKeywords = "키워드 없음"
	DefaultTag = "#일반"
)

const (
	summarySentences = 2
	summaryMinRunes  = 30
	sentenceMinRunes = 15
	summaryMaxRunes  = 300
	topKeywords      = 5
)

var stopWords = map[string]struct{}{
	"있다": {}, "하다": {}, "수": {}, "등": {}, "및": {}, "에서": {}, "으로": {},
	"이번": {}, "관한": {}, "하여": {}, "대한": {}, "관련": {}, "한": {}, "더": {},
	"있으며": {}, "따라": {}, "등의": {},
}

var positiveWords = []string{"좋다", "훌륭", "성공", "발전", "혁신", "개선", "증가", "상승", "긍정"}

var negativeWords = []string{"나쁘다", "문제", "실패", "우려", "논란", "감소", "하락", "부정", "위험"}

var analyticalMarkers = []string{"분석", "연구", "조사", "데이터", "통계"}

var emotionalMarkers = []string{"놀라", "충격", "감동", "기쁘", "슬프"}

var sentimentPhrases = map[string]string{
	SentimentPositive: "🟢 긍정적인 관점",
	SentimentNegative: "🔴 비판적인 관점",
	SentimentNeutral:  "🟡 중립적인 관점",
}

var tonePhrases = map[string]string{
	ToneInformational: "ℹ️ 정보 전달",
	ToneEmotional:     "💬 감정 표현",
	ToneAnalytical:    "🧐 분석적 접근",
}

// hangulWord matches runs of two or more Hangul syllables.
var hangulWord = regexp.MustCompile(`[가-힣]{2,}`)

// Enrichment is the full set of derived fields for one article body.
type Enrichment struct {
	Summary   string
	Keywords  string
	Sentiment string
	Tone      string
	Tags      string
	Opinion   string
}

// Analyze runs every enrichment function over the same text.
func Analyze(text string) Enrichment {
	sentiment := Sentiment(text)
	tone := Tone(text)
	return Enrichment{
		Summary:   Summarize(text),
		Keywords:  ExtractKeywords(text),
		Sentiment: sentiment,
		Tone:      tone,
		Tags:      Tags(text),
		Opinion:   Opinion(sentiment, tone),
	}
}

// Summarize picks up to two sentences: the first, and the middle one
// when more than two candidates exist. Text shorter than 30 runes gets
// the sentinel; too few candidate sentences fall back to a 300-rune cut
// of the original.
func Summarize(text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < summaryMinRunes {
		return NoSummary
	}

	normalized := strings.ReplaceAll(text, "!", ".")
	var sentences []string
	for _, frag := range strings.Split(normalized, ". ") {
		frag = strings.TrimSpace(frag)
		if utf8.RuneCountInString(frag) > sentenceMinRunes {
			sentences = append(sentences, frag)
		}
	}

	if len(sentences) <= summarySentences {
		runes := []rune(text)
		if len(runes) > summaryMaxRunes {
			return string(runes[:summaryMaxRunes]) + "..."
		}
		return text
	}

	selected := []string{sentences[0]}
	if len(sentences) > 2 {
		selected = append(selected, sentences[len(sentences)/2])
	}
	return strings.Join(selected, ". ")
}

// ExtractKeywords returns the top five Hangul terms by frequency,
// comma-joined. Ties keep first-encountered order.
func ExtractKeywords(text string) string {
	counts := make(map[string]int)
	var order []string

	for _, w := range hangulWord.FindAllString(text, -1) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	if len(order) == 0 {
		return NoKeywords
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topKeywords {
		order = order[:topKeywords]
	}
	return strings.Join(order, ", ")
}

// Sentiment compares how many positive versus negative markers appear in
// the text. An exact tie is neutral.
func Sentiment(text string) string {
	pos := countContained(text, positiveWords)
	neg := countContained(text, negativeWords)

	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Tone checks analytical markers first, then emotional ones, and
// defaults to informational.
func Tone(text string) string {
	if containsAny(text, analyticalMarkers) {
		return ToneAnalytical
	}
	if containsAny(text, emotionalMarkers) {
		return ToneEmotional
	}
	return ToneInformational
}

// Tags appends a technology, market and/or issue hashtag depending on
// trigger substrings, or the default tag when nothing matches.
func Tags(text string) string {
	var tags []string
	if strings.Contains(text, "기술") || strings.Contains(text, "AI") {
		tags = append(tags, "#기술동향")
	}
	if strings.Contains(text, "시장") || strings.Contains(text, "수요") {
		tags = append(tags, "#시장분석")
	}
	if strings.Contains(text, "논란") || strings.Contains(text, "문제") {
		tags = append(tags, "#이슈")
	}
	if len(tags) == 0 {
		return DefaultTag
	}
	return strings.Join(tags, " ")
}

// Opinion builds the fixed one-line template from the sentiment and tone
// labels. Unknown labels fall back to the neutral/informational phrases.
func Opinion(sentiment, tone string) string {
	sentiPhrase, ok := sentimentPhrases[sentiment]
	if !ok {
		sentiPhrase = sentimentPhrases[SentimentNeutral]
	}
	tonePhrase, ok := tonePhrases[tone]
	if !ok {
		tonePhrase = tonePhrases[ToneInformational]
	}
	return sentiPhrase + " + " + tonePhrase + "의 뉴스입니다."
}

func countContained(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
