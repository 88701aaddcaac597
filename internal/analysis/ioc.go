package analysis

import (
	"regexp"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

// The IPv4 pattern accepts octets above 255 and the domain pattern
// matches any dotted token with an alphabetic tail. Downstream consumers
// key off the stored blob, so the loose matching is kept as-is.
var (
	ipExpr     = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	domainExpr = regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}\b`)
	emailExpr  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	hashExpr   = regexp.MustCompile(`\b[a-fA-F0-9]{32,64}\b`)
)

// IOCExtractor pulls indicators of compromise out of free text by pure
// pattern matching. Duplicate matches are preserved as scanned.
type IOCExtractor struct{}

// NewIOCExtractor returns an extractor with the standard patterns.
func NewIOCExtractor() *IOCExtractor {
	return &IOCExtractor{}
}

// Extract scans one text for IPs, domain-like tokens, email addresses,
// and 32-64 character hex digests.
func (x *IOCExtractor) Extract(text string) domain.IOCSet {
	return domain.IOCSet{
		IPAddresses: ipExpr.FindAllString(text, -1),
		Domains:     domainExpr.FindAllString(text, -1),
		Emails:      emailExpr.FindAllString(text, -1),
		Hashes:      hashExpr.FindAllString(text, -1),
	}
}
