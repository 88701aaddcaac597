package domain

import "time"

// Platform identifiers for the supported source classes.
const (
	PlatformNews     = "news"
	PlatformForum    = "forum"
	PlatformReddit   = "reddit"
	PlatformTwitter  = "twitter"
	PlatformTelegram  = "telegram"
	PlatformFacebook  = "facebook"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
	PlatformDarkWeb   = "darkweb"
)

// FetchOutcome classifies a single retrieval attempt inside an adapter's
// fallback chain. Outcomes drive progression to the next strategy and are
// never persisted.
type FetchOutcome string

const (
	FetchSuccess         FetchOutcome = "success"
	FetchAccessDenied    FetchOutcome = "access_denied"
	FetchNotFound        FetchOutcome = "not_found"
	FetchServerError     FetchOutcome = "server_error"
	FetchConnectionError FetchOutcome = "connection_error"
	FetchTimeout         FetchOutcome = "timeout"
	FetchParseError      FetchOutcome = "parse_error"
)

// RawItem is one unprocessed item produced by a source adapter before
// normalization into Evidence.
type RawItem struct {
	Platform string
	URL      string
	Title    string
	Body     string
	Author   string
	PostedAt time.Time

	Status RetrievalStatus
	Note   string
}
