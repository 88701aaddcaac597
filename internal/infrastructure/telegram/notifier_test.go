package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChat = r.FormValue("chat_id")
		gotText = r.FormValue("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "token-123", "-100200")
	if err := n.PublishDigest(context.Background(), "daily summary"); err != nil {
		t.Fatalf("PublishDigest: %v", err)
	}

	if !strings.Contains(gotPath, "bottoken-123") {
		t.Errorf("path = %q, want bot token segment", gotPath)
	}
	if gotChat != "-100200" {
		t.Errorf("chat_id = %q", gotChat)
	}
	if gotText != "daily summary" {
		t.Errorf("text = %q", gotText)
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "", "")
	if err := n.PublishDigest(context.Background(), "x"); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestPublishDigestServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "t", "c")
	if err := n.PublishDigest(context.Background(), "x"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
