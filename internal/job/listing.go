// Package job defines the listing model and the source adapters that
// retrieve listings from external job boards.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Listing is one job posting retrieved from a source. Score is 0 until a
// scoring pass assigns the compatibility value.
type Listing struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedDate  time.Time `json:"posted_date"`
	Salary      string    `json:"salary,omitempty"`
	Type        string    `json:"type,omitempty"`
	Source      string    `json:"source"`
	Remote      bool      `json:"is_remote"`
	Score       float64   `json:"score"`
}

// Text returns the lowercased title and description, the haystack used for
// keyword matching.
func (l *Listing) Text() string {
	return strings.ToLower(l.Title + " " + l.Description)
}

// Snapshot returns a copy of the listing, detached from the search cycle
// that produced it.
func (l *Listing) Snapshot() *Listing {
	copied := *l
	return &copied
}

// Listings is an ordered collection of listings. Order matters: ranking
// tie-breaks preserve it.
type Listings struct {
	Items []*Listing
}

func (l *Listings) Len() int {
	return len(l.Items)
}

func (l *Listings) Append(items ...*Listing) {
	l.Items = append(l.Items, items...)
}

// Dedupe removes duplicate listings, keeping the first occurrence. A
// listing's identity is its URL when present, otherwise the
// title/company/location triple. The removed keys are returned.
func (l *Listings) Dedupe() []string {
	seen := make(map[string]bool, len(l.Items))
	kept := make([]*Listing, 0, len(l.Items))

	var removed []string
	for _, item := range l.Items {
		key := item.identity()
		if seen[key] {
			removed = append(removed, key)
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}

	l.Items = kept
	return removed
}

func (l *Listing) identity() string {
	if l.URL != "" {
		return l.URL
	}
	return strings.ToLower(l.Title + "|" + l.Company + "|" + l.Location)
}

// ReportByCompany groups the listings by company name.
func (l *Listings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, listing := range l.Items {
		report[listing.Company] = append(report[listing.Company], map[string]string{
			"title":    listing.Title,
			"url":      listing.URL,
			"location": listing.Location,
			"salary":   listing.Salary,
			"score":    fmt.Sprintf("%.2f", listing.Score),
			"source":   listing.Source,
		})
	}
	return report
}

// DumpToTmpFile writes the listings as indented JSON to a temporary file and
// returns its name.
func (l *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "listings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return "", err
	}
	return file.Name(), nil
}
