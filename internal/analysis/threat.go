package analysis

import (
	"strings"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// ThreatClassifier assigns a severity tier from keyword occurrence. The
// decision is a fixed priority cascade: defense-context mentions raise
// the matching threshold of the high and medium rules by one.
type ThreatClassifier struct {
	high    []string
	medium  []string
	low     []string
	defense []string
}

// NewThreatClassifier builds a classifier with the default keyword
// tables (English plus Indonesian equivalents).
func NewThreatClassifier() *ThreatClassifier {
	return &ThreatClassifier{
		high: []string{
			"serangan", "attack", "exploit", "vulnerability", "breach", "hack",
			"malware", "ransomware", "ddos", "infiltration", "weaponized",
		},
		medium: []string{
			"suspicious", "mencurigakan", "anomaly", "unusual", "unauthorized",
			"phishing", "scam", "fraud", "leak",
		},
		low: []string{
			"warning", "peringatan", "alert", "notice", "advisory",
		},
		defense: []string{
			"tni", "tni au", "militer", "pertahanan", "defense", "military",
			"airforce", "angkatan udara", "alutsista", "radar",
		},
	}
}

// Classify returns the severity tier for one text. Matching is
// case-insensitive substring presence; each keyword contributes at most
// one count. The rules must be evaluated in this exact order: later
// rules apply only when every earlier rule failed.
func (c *ThreatClassifier) Classify(text string) domain.ThreatLevel {
	lower := strings.ToLower(text)

	highCount := countPresent(lower, c.high)
	mediumCount := countPresent(lower, c.medium)
	lowCount := countPresent(lower, c.low)
	defenseHit := countPresent(lower, c.defense) > 0

	switch {
	case highCount >= 2 || (highCount >= 1 && defenseHit):
		return domain.ThreatHigh
	case mediumCount >= 2 || (mediumCount >= 1 && defenseHit):
		return domain.ThreatMedium
	case lowCount >= 1 || highCount == 1 || mediumCount == 1:
		return domain.ThreatLow
	default:
		return domain.ThreatInfo
	}
}

func countPresent(lower string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}
