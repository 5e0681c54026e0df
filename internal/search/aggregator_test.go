package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/job"
)

type stubSource struct {
	name  string
	err   error
	delay map[string]time.Duration

	mu       sync.Mutex
	keywords []string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, keyword, _ string) ([]*job.RawListing, error) {
	s.mu.Lock()
	s.keywords = append(s.keywords, keyword)
	s.mu.Unlock()

	if d, ok := s.delay[keyword]; ok {
		time.Sleep(d)
	}

	if s.err != nil {
		return nil, s.err
	}

	return []*job.RawListing{{
		Title:   s.name + "-" + keyword,
		Company: "Acme",
		URL:     "https://example.com/" + s.name + "/" + keyword,
	}}, nil
}

func testCriteria(keywords ...string) *Criteria {
	return &Criteria{
		Domain:    "commercial",
		Keywords:  keywords,
		Level:     LevelConfirmed,
		Threshold: 0.6,
	}
}

func TestSearchSurvivesFailingSources(t *testing.T) {
	aggregator := NewAggregator([]job.SourceAdapter{
		&stubSource{name: "one", err: errors.New("boom")},
		&stubSource{name: "two", err: errors.New("timeout")},
	}, zap.NewNop())

	listings := aggregator.Search(context.Background(), testCriteria("vente"), "Paris")

	if listings.Len() != 0 {
		t.Fatalf("expected 0 listings from failing sources, got %d", listings.Len())
	}
}

func TestSearchMergesDeterministically(t *testing.T) {
	// Delays shuffle completion order; the merge must not care.
	first := &stubSource{name: "alpha", delay: map[string]time.Duration{"vente": 30 * time.Millisecond}}
	second := &stubSource{name: "beta", delay: map[string]time.Duration{"crm": 15 * time.Millisecond}}

	aggregator := NewAggregator([]job.SourceAdapter{first, second}, zap.NewNop())

	listings := aggregator.Search(context.Background(), testCriteria("vente", "crm"), "")

	expect := []string{"alpha-vente", "alpha-crm", "beta-vente", "beta-crm"}
	if listings.Len() != len(expect) {
		t.Fatalf("expected %d listings, got %d", len(expect), listings.Len())
	}
	for i, title := range expect {
		if listings.Items[i].Title != title {
			t.Fatalf("expected %q at position %d, got %q", title, i, listings.Items[i].Title)
		}
	}

	for _, listing := range listings.Items {
		if listing.Score != 0 {
			t.Fatalf("expected unscored listings, got %v", listing.Score)
		}
	}
}

func TestSearchUsesOnlyTopThreeKeywords(t *testing.T) {
	source := &stubSource{name: "alpha"}
	aggregator := NewAggregator([]job.SourceAdapter{source}, zap.NewNop())

	aggregator.Search(context.Background(), testCriteria("un", "deux", "trois", "quatre", "cinq"), "")

	source.mu.Lock()
	defer source.mu.Unlock()
	if len(source.keywords) != 3 {
		t.Fatalf("expected 3 fetches, got %d (%v)", len(source.keywords), source.keywords)
	}
	for _, kw := range source.keywords {
		if kw == "quatre" || kw == "cinq" {
			t.Fatalf("keyword %q should not have been searched", kw)
		}
	}
}

func TestSearchDedupeIsExplicitPolicy(t *testing.T) {
	// Both sources return the same URL for each keyword.
	duplicated := func(name string) *stubSource { return &stubSource{name: name} }

	withDupes := NewAggregator([]job.SourceAdapter{duplicated("alpha")}, zap.NewNop())
	listings := withDupes.Search(context.Background(), testCriteria("vente", "vente"), "")
	if listings.Len() != 2 {
		t.Fatalf("expected duplicates to be kept by default, got %d", listings.Len())
	}

	deduped := NewAggregator([]job.SourceAdapter{duplicated("alpha")}, zap.NewNop())
	deduped.Dedupe = true
	listings = deduped.Search(context.Background(), testCriteria("vente", "vente"), "")
	if listings.Len() != 1 {
		t.Fatalf("expected duplicates to be removed, got %d", listings.Len())
	}
}

func TestTopKeywords(t *testing.T) {
	criteria := testCriteria("un", "deux")

	if got := criteria.TopKeywords(3); len(got) != 2 {
		t.Fatalf("expected all keywords when fewer than n, got %v", got)
	}
	if got := criteria.TopKeywords(1); len(got) != 1 || got[0] != "un" {
		t.Fatalf("expected the first keyword, got %v", got)
	}
}
