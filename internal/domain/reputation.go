package domain

// IPReputation is contextual information about an extracted IP address,
// assembled from free lookup services.
type IPReputation struct {
	IP       string
	Country  string
	City     string
	Org      string
	ASN      string
	Provider string
}
