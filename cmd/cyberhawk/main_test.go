package main

import (
	"strings"
	"testing"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/report"
)

func TestFormatStrategicRendersTrendAsNumber(t *testing.T) {
	t.Parallel()

	out := formatStrategic(report.StrategicAnalysis{
		PeriodDays:      30,
		TotalEvents:     42,
		HighThreats:     3,
		AvgDailyEvents:  1.4,
		SentimentTrend:  -0.42,
		Recommendations: []string{"increase monitoring frequency"},
	})

	if !strings.Contains(out, "trend=-0.42") {
		t.Errorf("output = %q, want numeric trend", out)
	}
	if strings.Contains(out, "%!s") {
		t.Errorf("output contains bad-verb marker: %q", out)
	}
	if !strings.Contains(out, "- increase monitoring frequency") {
		t.Errorf("output missing recommendation: %q", out)
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	out := formatSummary(report.Summary{WindowDays: 7, Total: 5, MeanSentiment: -0.123})
	if !strings.Contains(out, "window=7d") || !strings.Contains(out, "mean=-0.123") {
		t.Errorf("output = %q", out)
	}
}
