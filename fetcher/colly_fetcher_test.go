package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollyFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>hello</p></body></html>`))
	}))
	defer srv.Close()

	cf := NewCollyFetcher("test-agent", time.Second)
	body, err := cf.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `<html><body><p>hello</p></body></html>` {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestCollyFetcher_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	cf := NewCollyFetcher("hike-reviews-test/1.0", time.Second)
	if _, err := cf.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "hike-reviews-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestCollyFetcher_RevisitSameURL(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	cf := NewCollyFetcher("", time.Second)
	for i := 0; i < 2; i++ {
		if _, err := cf.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("fetch %d: unexpected error: %v", i+1, err)
		}
	}
	if hits != 2 {
		t.Errorf("expected 2 requests, got %d", hits)
	}
}

func TestCollyFetcher_HTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewCollyFetcher("", time.Second).Fetch(context.Background(), srv.URL)
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.status)
			}
			if errors.Is(err, ErrTimeout) {
				t.Error("status error should not be a timeout")
			}
		})
	}
}

func TestCollyFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewCollyFetcher("", 50*time.Millisecond).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestCollyFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewCollyFetcher("", time.Second).Fetch(context.Background(), url)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", fetchErr.StatusCode)
	}
}

func TestCollyFetcher_LargePage(t *testing.T) {
	page := "<html><body>" + strings.Repeat(`<font size="1">Great views</font>`, 400000) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	body, err := NewCollyFetcher("", 5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != len(page) {
		t.Errorf("got %d bytes, want %d", len(body), len(page))
	}
}
