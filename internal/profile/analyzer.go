package profile

import (
	"errors"
	"strings"

	"github.com/dianaf18/jobpilot/internal/search"
	"github.com/dianaf18/jobpilot/internal/taxonomy"
)

// ErrInvalidCriteria is returned when a profile has neither experience text
// nor skills; there is nothing meaningful to match against and the caller
// should prompt for profile completion.
var ErrInvalidCriteria = errors.New("profile has no experience and no skills")

// Preferences carry the analysis overrides coming from the profile settings.
type Preferences struct {
	// Threshold overrides the default compatibility threshold when in (0, 1].
	Threshold float64
}

// Analyzer converts free-text experience and skills into search criteria.
// Analyze is pure: no I/O, no side effects, identical input gives identical
// output.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze classifies the profile into a domain and an experience level.
// The domain is the one whose keywords occur most often in the concatenated
// lowercase text; ties break toward the first-listed domain of the taxonomy
// table.
func (a *Analyzer) Analyze(experience string, skills []string, prefs Preferences) (*search.Criteria, error) {
	text := strings.ToLower(strings.TrimSpace(experience + " " + strings.Join(skills, " ")))
	if text == "" {
		return nil, ErrInvalidCriteria
	}

	domain := taxonomy.GeneralDomain
	keywords := taxonomy.GeneralKeywords
	best := 0
	for _, candidate := range taxonomy.Domains {
		count := 0
		for _, keyword := range candidate.Keywords {
			if strings.Contains(text, keyword) {
				count++
			}
		}
		if count > best {
			best = count
			domain = candidate.Name
			keywords = candidate.Keywords
		}
	}

	threshold := prefs.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = search.DefaultThreshold
	}

	return &search.Criteria{
		Domain:    domain,
		Keywords:  append([]string(nil), keywords...),
		Level:     classifyLevel(text),
		Threshold: threshold,
	}, nil
}

// AnalyzeProfile runs Analyze on the profile fields and stores the result on
// the profile, per the ownership rules of the aggregate.
func (a *Analyzer) AnalyzeProfile(p *UserProfile) (*search.Criteria, error) {
	criteria, err := a.Analyze(p.Experience, p.Skills, Preferences{Threshold: p.Settings.Threshold})
	if err != nil {
		return nil, err
	}

	p.Criteria = criteria
	return criteria, nil
}

// classifyLevel applies the junior-first precedence: any junior marker wins,
// then any senior marker, then confirmed by default.
func classifyLevel(text string) search.Level {
	for _, marker := range taxonomy.JuniorMarkers {
		if strings.Contains(text, marker) {
			return search.LevelJunior
		}
	}
	for _, marker := range taxonomy.SeniorMarkers {
		if strings.Contains(text, marker) {
			return search.LevelSenior
		}
	}
	return search.LevelConfirmed
}
