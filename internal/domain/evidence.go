package domain

import (
	"encoding/json"
	"time"
)

const (
	// MaxBodyLen bounds the stored body text.
	MaxBodyLen = 2000
	// MaxTitleLen bounds the stored title.
	MaxTitleLen = 500
)

// ThreatLevel is the severity tier assigned by the threat classifier.
type ThreatLevel string

const (
	ThreatHigh   ThreatLevel = "HIGH"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatLow    ThreatLevel = "LOW"
	ThreatInfo   ThreatLevel = "INFO"
)

// SentimentLabel classifies a polarity score into a fixed bucket.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// RetrievalStatus marks how an item was obtained from its source.
type RetrievalStatus string

const (
	RetrievalOK          RetrievalStatus = "ok"
	RetrievalDegraded    RetrievalStatus = "degraded"
	RetrievalUnavailable RetrievalStatus = "unavailable"
)

// IOCSet groups indicators of compromise extracted from one text.
// Order is irrelevant; duplicates are kept as scanned.
type IOCSet struct {
	IPAddresses []string `json:"ip_addresses"`
	Domains     []string `json:"domains"`
	Emails      []string `json:"emails"`
	Hashes      []string `json:"hashes"`
}

// Empty reports whether no indicator of any kind was found.
func (s IOCSet) Empty() bool {
	return len(s.IPAddresses) == 0 && len(s.Domains) == 0 && len(s.Emails) == 0 && len(s.Hashes) == 0
}

// Encode serializes the set for storage in the evidence record.
func (s IOCSet) Encode() string {
	raw, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// DecodeIOCSet parses a serialized IOC payload back into a set.
func DecodeIOCSet(raw string) (IOCSet, error) {
	var s IOCSet
	if raw == "" {
		return s, nil
	}
	err := json.Unmarshal([]byte(raw), &s)
	return s, err
}

// Evidence is the canonical record every source normalizes into. Records
// are append-only: once persisted they are never mutated or deleted by
// the collection core.
type Evidence struct {
	ID             int64
	Source         string
	URL            string
	Title          string
	Body           string
	Author         string
	PostedAt       time.Time
	CollectedAt    time.Time
	SentimentScore float64
	SentimentLabel SentimentLabel
	IOCs           string
	ThreatLevel    ThreatLevel
	Status         RetrievalStatus
	StatusNote     string
}

// Content returns the text analysis stages should run over: the body,
// or the title when the body is empty.
func (e Evidence) Content() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Title
}

// TruncateBody bounds body text before storage.
func TruncateBody(s string) string {
	return truncate(s, MaxBodyLen)
}

// TruncateTitle bounds titles before storage.
func TruncateTitle(s string) string {
	return truncate(s, MaxTitleLen)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
