// Package ai defines the optional AI capability used by the application
// generator.
package ai

import (
	"context"

	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/profile"
)

// Composer drafts a tailored cover letter for a candidate and a listing.
// Implementations may fail freely: the generator falls back to its template
// on any error.
type Composer interface {
	Compose(ctx context.Context, candidate *profile.UserProfile, listing *job.Listing) (string, error)
}
