// Package profile owns the user profile aggregate: identity, settings,
// rolling stats, the append-only application history and the last computed
// search criteria.
package profile

import (
	"encoding/json"
	"time"

	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/search"
)

// StatusSent marks a record created by a successful dispatch.
const StatusSent = "sent"

const (
	defaultDailyLimit = 10
)

// Settings holds the per-user automation knobs.
type Settings struct {
	AutoSearch      bool     `json:"auto_search"`
	AutoApply       bool     `json:"auto_apply"`
	DailyLimit      int      `json:"daily_limit"`
	Threshold       float64  `json:"compatibility_threshold"`
	JobTypes        []string `json:"preferred_job_types,omitempty"`
	MinSalary       int      `json:"minimum_salary,omitempty"`
	RemotePreferred bool     `json:"remote_preferred"`
}

// Stats are rolling counters updated as the pipeline runs.
type Stats struct {
	JobsAnalyzed     int       `json:"jobs_analyzed"`
	ApplicationsSent int       `json:"applications_sent"`
	Responses        int       `json:"responses"`
	Interviews       int       `json:"interviews"`
	LastActivity     time.Time `json:"last_activity"`
}

// Application is a generated application artifact. Immutable after creation.
type Application struct {
	ID          string    `json:"id"`
	ResumeText  string    `json:"resume_text"`
	CoverLetter string    `json:"cover_letter"`
	JobTitle    string    `json:"job_title"`
	Company     string    `json:"company"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplicationRecord ties a dispatched application to a snapshot of the
// listing it targeted. Records are only created on successful dispatch and
// never mutated afterwards.
type ApplicationRecord struct {
	Job         *job.Listing `json:"job"`
	Application *Application `json:"application"`
	SentDate    time.Time    `json:"sent_date"`
	Status      string       `json:"status"`
}

// UserProfile is the aggregate root. The analyzer writes Criteria, the
// dispatcher writes History and Stats; nothing else mutates it.
type UserProfile struct {
	Email      string               `json:"email"`
	Name       string               `json:"name"`
	Phone      string               `json:"phone,omitempty"`
	Location   string               `json:"location,omitempty"`
	Experience string               `json:"experience"`
	Skills     []string             `json:"skills"`
	Settings   Settings             `json:"settings"`
	Stats      Stats                `json:"stats"`
	History    []*ApplicationRecord `json:"history"`
	Criteria   *search.Criteria     `json:"criteria,omitempty"`
}

// New returns a profile with default settings.
func New(email, name string) *UserProfile {
	return &UserProfile{
		Email: email,
		Name:  name,
		Settings: Settings{
			DailyLimit: defaultDailyLimit,
			Threshold:  search.DefaultThreshold,
		},
	}
}

// AppendRecord appends the record to the history and recomputes the sent
// counter from the history length.
func (p *UserProfile) AppendRecord(rec *ApplicationRecord) {
	p.History = append(p.History, rec)
	p.Stats.ApplicationsSent = len(p.History)
	p.Stats.LastActivity = rec.SentDate
}

// RecordAnalysis accounts for n freshly scored listings.
func (p *UserProfile) RecordAnalysis(n int, at time.Time) {
	p.Stats.JobsAnalyzed += n
	p.Stats.LastActivity = at
}

// ClearHistory is the only operation allowed to shrink the history.
func (p *UserProfile) ClearHistory() {
	p.History = nil
	p.Stats.ApplicationsSent = 0
}

// TopSkills returns the first n skills of the profile.
func (p *UserProfile) TopSkills(n int) []string {
	if n >= len(p.Skills) {
		return p.Skills
	}
	return p.Skills[:n]
}

// Export serializes the profile, field for field, for external use.
func (p *UserProfile) Export() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Import reconstructs a profile previously produced by Export.
func Import(data []byte) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
