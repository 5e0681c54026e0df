package job

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func pagePayload(count int, prefix string) *pageResponse {
	items := make([]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"title":      prefix,
			"company":    "Acme",
			"url":        "https://example.com/" + prefix,
			"salary_min": float64(30000),
		})
	}
	return &pageResponse{Items: items, Found: count, PerPage: count}
}

func TestHTTPSourceStopsOnPartialPage(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if got := r.URL.Query().Get("text"); got != "vente" {
			t.Errorf("unexpected text query: %q", got)
		}

		// Full first page, then a mostly empty one.
		count := 4
		if n > 1 {
			count = 1
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pagePayload(count, "vendeur"))
	}))
	defer server.Close()

	source := NewHTTPSource("boardx", server.URL, zap.NewNop())
	source.PageSize = 4

	listings, err := source.Fetch(context.Background(), "vente", "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 5 {
		t.Fatalf("expected 5 listings across 2 pages, got %d", len(listings))
	}
	if requests.Load() != 2 {
		t.Fatalf("expected pagination to stop after 2 requests, got %d", requests.Load())
	}
	if listings[0].SalaryMin != 30000 {
		t.Fatalf("expected the numeric field to decode, got %d", listings[0].SalaryMin)
	}
}

func TestHTTPSourceCapsPages(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(pagePayload(4, "vendeur"))
	}))
	defer server.Close()

	source := NewHTTPSource("boardx", server.URL, zap.NewNop())
	source.PageSize = 4

	listings, err := source.Fetch(context.Background(), "vente", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests.Load() != maxPages {
		t.Fatalf("expected %d requests, got %d", maxPages, requests.Load())
	}
	if len(listings) != 4*maxPages {
		t.Fatalf("expected %d listings, got %d", 4*maxPages, len(listings))
	}
}

func TestHTTPSourceBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	source := NewHTTPSource("boardx", server.URL, zap.NewNop())

	if _, err := source.Fetch(context.Background(), "vente", ""); err == nil {
		t.Fatalf("expected an error on a non-200 response")
	}
}

func TestHTTPSourceGzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		json.NewEncoder(gz).Encode(pagePayload(1, "vendeur"))
	}))
	defer server.Close()

	source := NewHTTPSource("boardx", server.URL, zap.NewNop())
	source.PageSize = 4

	listings, err := source.Fetch(context.Background(), "vente", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
}
