package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Sentiment is the polarity estimate for one text. Err carries any
// processing failure as diagnostic data; a failed analysis still yields
// a usable neutral result.
type Sentiment struct {
	Score float64
	Label domain.SentimentLabel
	Err   error
}

// SentimentScorer estimates text polarity from a token lexicon. The
// score is the mean weight over recognized tokens; unrecognized tokens
// contribute nothing.
type SentimentScorer struct {
	lexicon map[string]float64
}

// NewSentimentScorer builds a scorer with the default mixed
// English/Indonesian lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{lexicon: defaultLexicon()}
}

// Score analyzes one text. Identical text always yields an identical
// result. Any processing failure degrades to a neutral result with the
// error carried as diagnostic data instead of propagating.
func (s *SentimentScorer) Score(text string) (result Sentiment) {
	defer func() {
		if r := recover(); r != nil {
			result = Sentiment{
				Score: 0,
				Label: domain.SentimentNeutral,
				Err:   fmt.Errorf("sentiment analysis failed: %v", r),
			}
		}
	}()

	if s == nil || len(s.lexicon) == 0 {
		return Sentiment{Score: 0, Label: domain.SentimentNeutral}
	}

	var (
		total      float64
		recognized int
	)
	for _, token := range tokenize(text) {
		weight, ok := s.lexicon[token]
		if !ok {
			continue
		}
		total += weight
		recognized++
	}

	score := 0.0
	if recognized > 0 {
		score = total / float64(recognized)
	}

	return Sentiment{Score: score, Label: LabelForScore(score)}
}

// LabelForScore applies the fixed thresholds: >0.1 positive,
// <-0.1 negative, neutral otherwise.
func LabelForScore(score float64) domain.SentimentLabel {
	switch {
	case score > positiveThreshold:
		return domain.SentimentPositive
	case score < negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func defaultLexicon() map[string]float64 {
	return map[string]float64{
		// English
		"good":       0.7,
		"great":      0.8,
		"excellent":  0.9,
		"secure":     0.5,
		"safe":       0.5,
		"protected":  0.4,
		"improved":   0.4,
		"resolved":   0.5,
		"patched":    0.3,
		"stable":     0.3,
		"success":    0.6,
		"successful": 0.6,
		"trusted":    0.4,
		"bad":        -0.7,
		"terrible":   -0.9,
		"dangerous":  -0.8,
		"critical":   -0.6,
		"severe":     -0.7,
		"malicious":  -0.8,
		"compromise": -0.7,
		"vulnerable": -0.6,
		"exposed":    -0.5,
		"failed":     -0.5,
		"failure":    -0.5,
		"attack":     -0.6,
		"attacked":   -0.7,
		"breach":     -0.7,
		"stolen":     -0.7,
		"threat":     -0.5,
		"infected":   -0.7,
		"worried":    -0.4,
		"panic":      -0.6,
		"crisis":     -0.6,

		// Indonesian
		"aman":        0.5,
		"baik":        0.6,
		"bagus":       0.7,
		"berhasil":    0.6,
		"terlindungi": 0.4,
		"pulih":       0.4,
		"buruk":       -0.7,
		"bahaya":      -0.8,
		"berbahaya":   -0.8,
		"bocor":       -0.6,
		"diretas":     -0.8,
		"serangan":    -0.6,
		"ancaman":     -0.5,
		"gagal":       -0.5,
		"rusak":       -0.5,
		"khawatir":    -0.4,
		"darurat":     -0.6,
	}
}
