package job

import (
	"os"
	"strings"
	"testing"
)

func TestTextLowercasesTitleAndDescription(t *testing.T) {
	listing := &Listing{Title: "Commercial B2B", Description: "Prospection et CRM"}

	text := listing.Text()
	if text != "commercial b2b prospection et crm" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	listing := &Listing{Title: "Commercial B2B", Score: 0.7}

	snap := listing.Snapshot()
	listing.Score = 0.1

	if snap.Score != 0.7 {
		t.Fatalf("expected the snapshot to keep its score, got %v", snap.Score)
	}
}

func TestDedupePrefersURLIdentity(t *testing.T) {
	listings := &Listings{Items: []*Listing{
		{Title: "Vendeur", Company: "Acme", URL: "https://example.com/1"},
		{Title: "Vendeur (repost)", Company: "Acme", URL: "https://example.com/1"},
		{Title: "Vendeur", Company: "Acme", URL: "https://example.com/2"},
	}}

	removed := listings.Dedupe()

	if len(removed) != 1 {
		t.Fatalf("expected 1 removed listing, got %d", len(removed))
	}
	if listings.Len() != 2 {
		t.Fatalf("expected 2 listings left, got %d", listings.Len())
	}
	if listings.Items[0].Title != "Vendeur" {
		t.Fatalf("expected the first occurrence to survive, got %q", listings.Items[0].Title)
	}
}

func TestDedupeFallsBackToTripleIdentity(t *testing.T) {
	listings := &Listings{Items: []*Listing{
		{Title: "Vendeur", Company: "Acme", Location: "Paris"},
		{Title: "vendeur", Company: "ACME", Location: "paris"},
		{Title: "Vendeur", Company: "Acme", Location: "Lyon"},
	}}

	listings.Dedupe()

	if listings.Len() != 2 {
		t.Fatalf("expected case-insensitive dedupe to keep 2 listings, got %d", listings.Len())
	}
}

func TestReportByCompanyGroupsListings(t *testing.T) {
	listings := &Listings{Items: []*Listing{
		{Title: "Vendeur", Company: "Acme", Score: 0.75},
		{Title: "Account manager", Company: "Acme", Score: 0.6},
		{Title: "Chargé de clientèle", Company: "Globex", Score: 0.8},
	}}

	report := listings.ReportByCompany()

	if len(report["Acme"]) != 2 {
		t.Fatalf("expected 2 entries for Acme, got %d", len(report["Acme"]))
	}
	if len(report["Globex"]) != 1 {
		t.Fatalf("expected 1 entry for Globex, got %d", len(report["Globex"]))
	}
	if report["Acme"][0]["score"] != "0.75" {
		t.Fatalf("unexpected score field: %q", report["Acme"][0]["score"])
	}
}

func TestRawListingToListing(t *testing.T) {
	raw := &RawListing{
		Title:       "Développeur Go",
		Company:     "TechCorp",
		Location:    "Paris",
		Description: "Poste en full remote sur un produit SaaS.",
		URL:         "https://example.com/42",
		PostedDate:  "2026-08-20T09:00:00Z",
		SalaryMin:   45000,
		SalaryMax:   55000,
		JobType:     "CDI",
	}

	listing := raw.ToListing("boardx")

	if listing.Source != "boardx" {
		t.Fatalf("expected source tag, got %q", listing.Source)
	}
	if !listing.Remote {
		t.Fatalf("expected the remote hint to be detected")
	}
	if listing.Salary != "45000-55000 EUR" {
		t.Fatalf("unexpected salary text: %q", listing.Salary)
	}
	if listing.PostedDate.IsZero() {
		t.Fatalf("expected the posted date to be parsed")
	}
	if listing.Score != 0 {
		t.Fatalf("expected a fresh listing to be unscored")
	}
}

func TestRawListingSalaryVariants(t *testing.T) {
	tests := []struct {
		name   string
		min    int
		max    int
		expect string
	}{
		{name: "both bounds", min: 30000, max: 40000, expect: "30000-40000 EUR"},
		{name: "min only", min: 30000, expect: "à partir de 30000 EUR"},
		{name: "max only", max: 40000, expect: "jusqu'à 40000 EUR"},
		{name: "none", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &RawListing{SalaryMin: tt.min, SalaryMax: tt.max}
			if got := raw.ToListing("x").Salary; got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDumpToTmpFile(t *testing.T) {
	listings := &Listings{Items: []*Listing{{Title: "Vendeur", Company: "Acme"}}}

	filename, err := listings.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(filename)

	if !strings.Contains(filename, "listings_") {
		t.Fatalf("unexpected temp file name: %q", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "Vendeur") {
		t.Fatalf("expected the dump to contain the listing title")
	}
}
