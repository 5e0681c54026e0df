// Package report summarizes a batch of sent applications into a daily
// report with rule-based recommendations.
package report

import (
	"time"

	"github.com/dianaf18/jobpilot/internal/profile"
)

const (
	maxTopCompanies = 5

	minSentForBroadSearch = 5
	goodAverageScore      = 0.7
	remoteFractionLimit   = 0.5
)

// DailyReport is recomputed on demand and never persisted.
type DailyReport struct {
	Date             string   `json:"date"`
	JobsAnalyzed     int      `json:"jobs_analyzed"`
	ApplicationsSent int      `json:"applications_sent"`
	AverageScore     float64  `json:"average_score"`
	TopCompanies     []string `json:"top_companies"`
	Recommendations  []string `json:"recommendations"`
}

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Daily summarizes the records of one dispatch batch. Recommendation rules
// run in a fixed order and each appends at most one message.
func (g *Generator) Daily(records []*profile.ApplicationRecord) *DailyReport {
	sent := len(records)

	var total float64
	var remote int
	companies := make([]string, 0, maxTopCompanies)
	seen := make(map[string]bool)

	for _, rec := range records {
		total += rec.Job.Score
		if rec.Job.Remote {
			remote++
		}
		if !seen[rec.Job.Company] && len(companies) < maxTopCompanies {
			seen[rec.Job.Company] = true
			companies = append(companies, rec.Job.Company)
		}
	}

	average := 0.0
	if sent > 0 {
		average = total / float64(sent)
	}

	var recommendations []string
	if sent == 0 {
		recommendations = append(recommendations, "Activez l'envoi automatique pour ne manquer aucune opportunité")
	}
	if sent < minSentForBroadSearch {
		recommendations = append(recommendations, "Élargissez vos critères de recherche pour toucher plus d'offres")
	}
	if average < goodAverageScore {
		recommendations = append(recommendations, "Améliorez la compatibilité de votre profil avec les offres visées")
	}
	if sent > 0 && float64(remote)/float64(sent) > remoteFractionLimit {
		recommendations = append(recommendations, "Beaucoup d'offres en télétravail : pensez aussi aux postes sur site")
	}

	return &DailyReport{
		Date:             g.now().Format("2006-01-02"),
		JobsAnalyzed:     sent,
		ApplicationsSent: sent,
		AverageScore:     average,
		TopCompanies:     companies,
		Recommendations:  recommendations,
	}
}
