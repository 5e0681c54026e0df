// Package scoring computes the 0-1 compatibility score of a listing against
// search criteria, then filters and ranks a batch of listings.
package scoring

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/search"
	"github.com/dianaf18/jobpilot/internal/taxonomy"
)

const (
	baseScore    = 0.5
	keywordBonus = 0.1
	levelBonus   = 0.2
	neutralBonus = 0.1
	scamPenalty  = 0.3
)

// Step describes one filtering pass over a listings batch.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Scorer struct {
	logger *zap.Logger
}

func NewScorer(logger *zap.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score computes the compatibility of one listing. The result is always
// clamped to [0, 1].
func (s *Scorer) Score(listing *job.Listing, criteria *search.Criteria) float64 {
	text := listing.Text()
	score := baseScore

	seen := make(map[string]bool, len(criteria.Keywords))
	for _, keyword := range criteria.Keywords {
		keyword = strings.ToLower(keyword)
		if seen[keyword] {
			continue
		}
		seen[keyword] = true
		if strings.Contains(text, keyword) {
			score += keywordBonus
		}
	}

	junior := containsAny(text, taxonomy.JuniorMarkers)
	senior := containsAny(text, taxonomy.SeniorMarkers)
	switch criteria.Level {
	case search.LevelJunior:
		if junior {
			score += levelBonus
		}
	case search.LevelSenior:
		if senior {
			score += levelBonus
		}
	case search.LevelConfirmed:
		if !junior && !senior {
			score += neutralBonus
		}
	}

	for _, signal := range taxonomy.ScamSignals {
		if strings.Contains(text, signal) {
			score -= scamPenalty
		}
	}

	return clamp(score)
}

// FilterAndRank scores every listing, keeps the ones at or above the
// criteria threshold and sorts them by score descending. The sort is stable:
// listings with equal scores keep their discovery order.
func (s *Scorer) FilterAndRank(listings *job.Listings, criteria *search.Criteria) *job.Listings {
	initial := listings.Len()

	kept := make([]*job.Listing, 0, initial)
	for _, listing := range listings.Items {
		listing.Score = s.Score(listing, criteria)
		if listing.Score >= criteria.Threshold {
			kept = append(kept, listing)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	step := Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
	s.logger.Info("compatibility filter",
		zap.Float64("threshold", criteria.Threshold),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)

	return &job.Listings{Items: kept}
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
