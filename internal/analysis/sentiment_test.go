package analysis

import (
	"testing"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

func TestLabelForScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  domain.SentimentLabel
	}{
		{0.15, domain.SentimentPositive},
		{-0.3, domain.SentimentNegative},
		{0.0, domain.SentimentNeutral},
		{0.1, domain.SentimentNeutral},
		{-0.1, domain.SentimentNeutral},
		{0.11, domain.SentimentPositive},
		{-0.11, domain.SentimentNegative},
	}

	for _, tc := range cases {
		if got := LabelForScore(tc.score); got != tc.want {
			t.Fatalf("LabelForScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestScoreRecognizedTokens(t *testing.T) {
	t.Parallel()

	s := NewSentimentScorer()

	res := s.Score("excellent and secure deployment")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	// excellent (0.9) and secure (0.5) average to 0.7.
	if res.Score < 0.69 || res.Score > 0.71 {
		t.Fatalf("unexpected score: %v", res.Score)
	}
	if res.Label != domain.SentimentPositive {
		t.Fatalf("unexpected label: %s", res.Label)
	}

	res = s.Score("dangerous breach, data stolen")
	if res.Label != domain.SentimentNegative {
		t.Fatalf("expected negative label, got %s (score %v)", res.Label, res.Score)
	}

	res = s.Score("quarterly infrastructure inventory")
	if res.Score != 0 || res.Label != domain.SentimentNeutral {
		t.Fatalf("expected neutral zero for unrecognized tokens, got %v/%s", res.Score, res.Label)
	}
}

func TestScoreEmptyAndMixedLanguage(t *testing.T) {
	t.Parallel()

	s := NewSentimentScorer()

	if res := s.Score(""); res.Score != 0 || res.Label != domain.SentimentNeutral {
		t.Fatalf("empty text should be neutral, got %v/%s", res.Score, res.Label)
	}

	res := s.Score("sistem diretas, data bocor ke publik")
	if res.Label != domain.SentimentNegative {
		t.Fatalf("expected negative label for indonesian text, got %s (score %v)", res.Label, res.Score)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	s := NewSentimentScorer()
	text := "patched and stable after the attack"

	first := s.Score(text)
	for i := 0; i < 5; i++ {
		if got := s.Score(text); got.Score != first.Score || got.Label != first.Label {
			t.Fatalf("run %d: got %v/%s, want %v/%s", i, got.Score, got.Label, first.Score, first.Label)
		}
	}
}
