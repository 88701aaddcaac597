package analysis

import (
	"testing"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

func TestClassifyPriorityCascade(t *testing.T) {
	t.Parallel()

	c := NewThreatClassifier()

	cases := []struct {
		name string
		text string
		want domain.ThreatLevel
	}{
		{"two high keywords", "ransomware attack reported overnight", domain.ThreatHigh},
		{"one high keyword amplified by defense context", "exploit aimed at military infrastructure", domain.ThreatHigh},
		{"one high keyword without defense context", "new exploit published on a blog", domain.ThreatLow},
		{"two medium keywords", "suspicious unauthorized access attempt", domain.ThreatMedium},
		{"two medium keywords with defense mention", "suspicious unauthorized access attempt near TNI facility", domain.ThreatMedium},
		{"one medium keyword amplified by defense context", "phishing campaign targets pertahanan staff", domain.ThreatMedium},
		{"single low keyword", "advisory only, no incident", domain.ThreatLow},
		{"single medium keyword", "leak rumors circulating", domain.ThreatLow},
		{"no keywords", "routine status update", domain.ThreatInfo},
		{"empty text", "", domain.ThreatInfo},
		{"case insensitive", "RANSOMWARE spotted, BREACH confirmed", domain.ThreatHigh},
		{"indonesian high keyword with defense context", "serangan terhadap radar nasional", domain.ThreatHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	c := NewThreatClassifier()
	text := "malware dropped after phishing warning"

	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		if got := c.Classify(text); got != first {
			t.Fatalf("run %d: Classify returned %s, want stable %s", i, got, first)
		}
	}
}

func TestClassifyAlwaysReturnsKnownTier(t *testing.T) {
	t.Parallel()

	c := NewThreatClassifier()
	known := map[domain.ThreatLevel]bool{
		domain.ThreatHigh:   true,
		domain.ThreatMedium: true,
		domain.ThreatLow:    true,
		domain.ThreatInfo:   true,
	}

	texts := []string{
		"", "attack", "warning advisory alert", "completely benign text",
		"ddos malware breach hack exploit", "mencurigakan",
	}
	for _, text := range texts {
		if got := c.Classify(text); !known[got] {
			t.Fatalf("Classify(%q) returned unknown tier %q", text, got)
		}
	}
}
