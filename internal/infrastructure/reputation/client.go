package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

const (
	defaultIPInfoBase = "https://ipinfo.io"
	defaultIPAPIBase  = "https://ipapi.co"
)

// Client resolves IP context through free lookup services: ipinfo.io
// first, ipapi.co when the primary gives nothing.
type Client struct {
	ipinfoBase string
	ipapiBase  string
	httpClient *http.Client
}

var _ ports.ReputationClient = (*Client)(nil)

// NewClient builds a reusable lookup client. Empty base URLs use the
// public endpoints.
func NewClient(ipinfoBase, ipapiBase string) *Client {
	if ipinfoBase == "" {
		ipinfoBase = defaultIPInfoBase
	}
	if ipapiBase == "" {
		ipapiBase = defaultIPAPIBase
	}
	return &Client{
		ipinfoBase: ipinfoBase,
		ipapiBase:  ipapiBase,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckIP queries the lookup services in order and returns the first
// usable answer.
func (c *Client) CheckIP(ctx context.Context, ip string) (domain.IPReputation, error) {
	rep, primaryErr := c.checkIPInfo(ctx, ip)
	if primaryErr == nil {
		return rep, nil
	}

	rep, secondaryErr := c.checkIPAPI(ctx, ip)
	if secondaryErr == nil {
		return rep, nil
	}

	return domain.IPReputation{}, fmt.Errorf("reputation lookup for %s: %w (fallback: %v)", ip, primaryErr, secondaryErr)
}

func (c *Client) checkIPInfo(ctx context.Context, ip string) (domain.IPReputation, error) {
	var payload struct {
		Country string `json:"country"`
		City    string `json:"city"`
		Org     string `json:"org"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/json", c.ipinfoBase, ip), &payload); err != nil {
		return domain.IPReputation{}, err
	}
	return domain.IPReputation{
		IP:       ip,
		Country:  payload.Country,
		City:     payload.City,
		Org:      payload.Org,
		Provider: "ipinfo",
	}, nil
}

func (c *Client) checkIPAPI(ctx context.Context, ip string) (domain.IPReputation, error) {
	var payload struct {
		CountryName string `json:"country_name"`
		City        string `json:"city"`
		ASN         string `json:"asn"`
		Org         string `json:"org"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/json/", c.ipapiBase, ip), &payload); err != nil {
		return domain.IPReputation{}, err
	}
	return domain.IPReputation{
		IP:       ip,
		Country:  payload.CountryName,
		City:     payload.City,
		Org:      payload.Org,
		ASN:      payload.ASN,
		Provider: "ipapi",
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
