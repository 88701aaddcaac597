package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckIPUsesPrimary(t *testing.T) {
	t.Parallel()

	ipinfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.9/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country":"ID","city":"Jakarta","org":"AS7713 Telkom"}`))
	}))
	defer ipinfo.Close()

	client := NewClient(ipinfo.URL, "http://127.0.0.1:0")

	rep, err := client.CheckIP(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CheckIP: %v", err)
	}
	if rep.Provider != "ipinfo" {
		t.Errorf("provider = %q, want ipinfo", rep.Provider)
	}
	if rep.Country != "ID" || rep.City != "Jakarta" {
		t.Errorf("unexpected reputation %+v", rep)
	}
}

func TestCheckIPFallsBack(t *testing.T) {
	t.Parallel()

	ipinfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ipinfo.Close()

	ipapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/198.51.100.4/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_name":"Indonesia","city":"Surabaya","asn":"AS4761","org":"Indosat"}`))
	}))
	defer ipapi.Close()

	client := NewClient(ipinfo.URL, ipapi.URL)

	rep, err := client.CheckIP(context.Background(), "198.51.100.4")
	if err != nil {
		t.Fatalf("CheckIP: %v", err)
	}
	if rep.Provider != "ipapi" {
		t.Errorf("provider = %q, want ipapi", rep.Provider)
	}
	if rep.ASN != "AS4761" {
		t.Errorf("asn = %q, want AS4761", rep.ASN)
	}
}

func TestCheckIPBothFail(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	client := NewClient(failing.URL, failing.URL)

	if _, err := client.CheckIP(context.Background(), "192.0.2.1"); err == nil {
		t.Fatal("expected error when both services fail")
	}
}
