package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetchError is a classified retrieval failure. The fallback chain reads
// the outcome as data instead of inspecting raw transport errors.
type FetchError struct {
	Outcome domain.FetchOutcome
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Outcome, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func fetchFailure(outcome domain.FetchOutcome, err error) *FetchError {
	return &FetchError{Outcome: outcome, Err: err}
}

// OutcomeOf extracts the classification from a strategy error,
// classifying unwrapped transport errors on the fly.
func OutcomeOf(err error) domain.FetchOutcome {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Outcome
	}
	return classifyTransport(err)
}

func classifyTransport(err error) domain.FetchOutcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FetchTimeout
	}
	return domain.FetchConnectionError
}

func classifyStatus(code int) domain.FetchOutcome {
	switch {
	case code == http.StatusForbidden:
		return domain.FetchAccessDenied
	case code == http.StatusNotFound:
		return domain.FetchNotFound
	default:
		return domain.FetchServerError
	}
}

// fetchDocument performs a GET and parses the body as HTML. Every
// failure comes back as a *FetchError.
func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	resp, err := doGet(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fetchFailure(domain.FetchParseError, fmt.Errorf("parse document: %w", err))
	}
	return doc, nil
}

// fetchJSON performs a GET and decodes the body into v.
func fetchJSON(ctx context.Context, client *http.Client, url string, v any) error {
	resp, err := doGet(ctx, client, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fetchFailure(domain.FetchParseError, fmt.Errorf("decode payload: %w", err))
	}
	return nil
}

func doGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchFailure(domain.FetchConnectionError, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fetchFailure(classifyTransport(err), err)
	}

	if resp.StatusCode != http.StatusOK {
		status := resp.Status
		_ = resp.Body.Close()
		return nil, fetchFailure(classifyStatus(resp.StatusCode), fmt.Errorf("unexpected status %s", status))
	}

	return resp, nil
}

func defaultClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
