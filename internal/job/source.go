package job

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SourceAdapter fetches raw listings for one keyword/location pair from one
// external job board. Implementations own their pagination and timeout
// policy; a failed fetch is reported as an error and contributes zero
// listings to the search.
type SourceAdapter interface {
	Name() string
	Fetch(ctx context.Context, keyword, location string) ([]*RawListing, error)
}

// RawListing is the wire-level shape returned by a source, before it is
// normalized into a Listing.
type RawListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PostedDate  string `json:"posted_date"`
	SalaryMin   int    `json:"salary_min,omitempty"`
	SalaryMax   int    `json:"salary_max,omitempty"`
	JobType     string `json:"job_type"`
}

var remoteHints = []string{"remote", "télétravail", "full remote", "à distance"}

// ToListing normalizes the raw listing, tagging it with the source name.
// The score starts at 0 and stays there until a scoring pass.
func (r *RawListing) ToListing(source string) *Listing {
	listing := &Listing{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		Description: r.Description,
		URL:         r.URL,
		Salary:      r.salaryText(),
		Type:        r.JobType,
		Source:      source,
	}

	if posted, err := time.Parse(time.RFC3339, r.PostedDate); err == nil {
		listing.PostedDate = posted
	}

	haystack := strings.ToLower(r.Location + " " + r.Description + " " + r.JobType)
	for _, hint := range remoteHints {
		if strings.Contains(haystack, hint) {
			listing.Remote = true
			break
		}
	}

	return listing
}

func (r *RawListing) salaryText() string {
	switch {
	case r.SalaryMin > 0 && r.SalaryMax > 0:
		return fmt.Sprintf("%d-%d EUR", r.SalaryMin, r.SalaryMax)
	case r.SalaryMin > 0:
		return fmt.Sprintf("à partir de %d EUR", r.SalaryMin)
	case r.SalaryMax > 0:
		return fmt.Sprintf("jusqu'à %d EUR", r.SalaryMax)
	default:
		return ""
	}
}
