package profile

import (
	"reflect"
	"testing"
	"time"

	"github.com/dianaf18/jobpilot/internal/job"
)

func testRecord(company string, score float64) *ApplicationRecord {
	return &ApplicationRecord{
		Job: &job.Listing{
			Title:   "Commercial B2B",
			Company: company,
			Score:   score,
		},
		Application: &Application{
			ID:      "app-" + company,
			Company: company,
			Score:   score,
		},
		SentDate: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:   StatusSent,
	}
}

func TestAppendRecordKeepsStatsInSync(t *testing.T) {
	p := New("ana@example.com", "Ana")

	p.AppendRecord(testRecord("Acme", 0.8))
	p.AppendRecord(testRecord("Globex", 0.7))

	if len(p.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(p.History))
	}
	if p.Stats.ApplicationsSent != 2 {
		t.Fatalf("expected sent counter 2, got %d", p.Stats.ApplicationsSent)
	}
	if p.Stats.LastActivity.IsZero() {
		t.Fatalf("expected last activity to be set")
	}
}

func TestClearHistoryResets(t *testing.T) {
	p := New("ana@example.com", "Ana")
	p.AppendRecord(testRecord("Acme", 0.8))

	p.ClearHistory()

	if len(p.History) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(p.History))
	}
	if p.Stats.ApplicationsSent != 0 {
		t.Fatalf("expected sent counter 0, got %d", p.Stats.ApplicationsSent)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := New("ana@example.com", "Ana Martin")
	p.Phone = "+33 6 12 34 56 78"
	p.Experience = "5 ans de vente en B2B"
	p.Skills = []string{"vente", "négociation", "crm"}
	p.AppendRecord(testRecord("Acme", 0.82))

	data, err := p.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := Import(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if restored.Name != p.Name || restored.Email != p.Email {
		t.Fatalf("identity fields did not survive the round trip: %+v", restored)
	}
	if restored.Experience != p.Experience {
		t.Fatalf("expected experience %q, got %q", p.Experience, restored.Experience)
	}
	if !reflect.DeepEqual(restored.Skills, p.Skills) {
		t.Fatalf("expected skills %v, got %v", p.Skills, restored.Skills)
	}
	if len(restored.History) != 1 || restored.History[0].Job.Company != "Acme" {
		t.Fatalf("history did not survive the round trip")
	}
	if restored.Settings.DailyLimit != p.Settings.DailyLimit {
		t.Fatalf("expected daily limit %d, got %d", p.Settings.DailyLimit, restored.Settings.DailyLimit)
	}
}

func TestTopSkills(t *testing.T) {
	p := New("ana@example.com", "Ana")
	p.Skills = []string{"vente", "négociation", "crm", "prospection"}

	top := p.TopSkills(3)
	if !reflect.DeepEqual(top, []string{"vente", "négociation", "crm"}) {
		t.Fatalf("unexpected top skills: %v", top)
	}

	if got := p.TopSkills(10); len(got) != 4 {
		t.Fatalf("expected all skills when asking for more than available, got %v", got)
	}
}
