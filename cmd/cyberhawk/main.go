package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/app"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/config"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/logging"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/report"
)

func main() {
	var (
		once       = flag.Bool("once", false, "run a single collection cycle and exit")
		reportDays = flag.Int("report", 0, "print the summary for the last N days and exit")
		strategic  = flag.Int("strategic", 0, "print the strategic analysis for the last N days and exit")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *reportDays > 0:
		summary, err := application.Report(ctx, *reportDays)
		if err != nil {
			logger.Error("report failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(formatSummary(summary))

	case *strategic > 0:
		analysis, err := application.Strategic(ctx, *strategic)
		if err != nil {
			logger.Error("strategic analysis failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(formatStrategic(analysis))

	case *once:
		result, err := application.RunOnce(ctx)
		if err != nil {
			logger.Error("cycle failed", "error", err)
			os.Exit(1)
		}
		logger.Info("cycle finished", "collected", result.Collected, "processed", result.Processed)

	default:
		if err := application.RunScheduled(ctx); err != nil {
			logger.Error("application stopped", "error", err)
			os.Exit(1)
		}
	}
}

func formatSummary(s report.Summary) string {
	return fmt.Sprintf("window=%dd total=%d threat=%v sentiment=%v mean=%.3f",
		s.WindowDays, s.Total, s.ByThreatLevel, s.BySentiment, s.MeanSentiment)
}

func formatStrategic(a report.StrategicAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "period=%dd events=%d high=%d avgDaily=%.2f trend=%.2f",
		a.PeriodDays, a.TotalEvents, a.HighThreats, a.AvgDailyEvents, a.SentimentTrend)
	for _, rec := range a.Recommendations {
		b.WriteString("\n- " + rec)
	}
	return b.String()
}
