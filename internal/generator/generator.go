// Package generator synthesizes the application artifacts: a resume text
// and a cover letter tailored to one listing.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/ai"
	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/profile"
	"github.com/dianaf18/jobpilot/internal/search"
	"github.com/dianaf18/jobpilot/internal/taxonomy"
)

const (
	// Placeholder substitutes any missing profile field so that
	// generation never fails.
	Placeholder = "non renseigné"

	maxListingKeywords = 5
	maxLetterSkills    = 3
)

// Generator builds applications. The composer is optional: when set, it
// drafts the cover letter and any composer error falls back to the domain
// template.
type Generator struct {
	composer ai.Composer
	logger   *zap.Logger
}

func New(composer ai.Composer, logger *zap.Logger) *Generator {
	return &Generator{composer: composer, logger: logger}
}

// Generate produces the application for one listing. It degrades to
// placeholder text on missing profile fields instead of failing.
func (g *Generator) Generate(ctx context.Context, listing *job.Listing, p *profile.UserProfile, criteria *search.Criteria) *profile.Application {
	return &profile.Application{
		ID:          uuid.NewString(),
		ResumeText:  g.buildResume(p, listing),
		CoverLetter: g.buildLetter(ctx, listing, p, criteria),
		JobTitle:    listing.Title,
		Company:     listing.Company,
		Score:       listing.Score,
		CreatedAt:   time.Now().UTC(),
	}
}

func (g *Generator) buildResume(p *profile.UserProfile, listing *job.Listing) string {
	skills := Placeholder
	if len(p.Skills) > 0 {
		skills = strings.Join(p.Skills, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", orPlaceholder(p.Name))
	fmt.Fprintf(&b, "Email : %s\n", orPlaceholder(p.Email))
	fmt.Fprintf(&b, "Téléphone : %s\n\n", orPlaceholder(p.Phone))
	fmt.Fprintf(&b, "Expérience :\n%s\n\n", orPlaceholder(p.Experience))
	fmt.Fprintf(&b, "Compétences : %s\n", skills)

	if keywords := extractListingKeywords(listing); len(keywords) > 0 {
		fmt.Fprintf(&b, "\nMots-clés du poste : %s\n", strings.Join(keywords, ", "))
	}

	return b.String()
}

// extractListingKeywords scans the fixed technical list first, then the soft
// skills, and returns the first matches found in the listing text.
func extractListingKeywords(listing *job.Listing) []string {
	text := listing.Text()

	var found []string
	for _, keyword := range taxonomy.TechnicalKeywords {
		if len(found) == maxListingKeywords {
			return found
		}
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	for _, keyword := range taxonomy.SoftSkills {
		if len(found) == maxListingKeywords {
			return found
		}
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func (g *Generator) buildLetter(ctx context.Context, listing *job.Listing, p *profile.UserProfile, criteria *search.Criteria) string {
	if g.composer != nil {
		letter, err := g.composer.Compose(ctx, p, listing)
		if err == nil && strings.TrimSpace(letter) != "" {
			return strings.TrimSpace(letter)
		}
		if err != nil {
			g.logger.Warn("letter composer failed, falling back to template",
				zap.String("company", listing.Company),
				zap.Error(err),
			)
		}
	}

	domain := taxonomy.GeneralDomain
	if criteria != nil {
		domain = criteria.Domain
	}

	skills := Placeholder
	if top := p.TopSkills(maxLetterSkills); len(top) > 0 {
		skills = strings.Join(top, ", ")
	}

	letter := taxonomy.LetterFor(domain)
	letter = strings.ReplaceAll(letter, "{{TITLE}}", orPlaceholder(listing.Title))
	letter = strings.ReplaceAll(letter, "{{COMPANY}}", orPlaceholder(listing.Company))
	letter = strings.ReplaceAll(letter, "{{LOCATION}}", orPlaceholder(listing.Location))
	letter = strings.ReplaceAll(letter, "{{SKILLS}}", skills)

	return letter
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
