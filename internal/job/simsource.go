package job

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const defaultSimulatedCount = 12

// SimulatedSource fabricates plausible listings instead of calling a real
// board. It stands in for a production adapter behind the same contract and
// is deterministic for a given seed.
type SimulatedSource struct {
	name string

	mu   sync.Mutex
	rand *rand.Rand

	// Count is the number of listings fabricated per fetch.
	Count int
}

var simulatedCompanies = []string{
	"TechCorp", "Innovatech", "Groupe Lumière", "DataPulse", "Alten Conseil",
	"NovaRetail", "Finaxys", "Hexaloop", "BlueHarbor", "Sogetral",
}

var simulatedCities = []string{
	"Paris", "Lyon", "Bordeaux", "Nantes", "Lille", "Toulouse",
}

var simulatedTitles = []string{
	"%s - CDI", "Chargé %s", "Consultant %s", "%s senior", "%s junior",
	"Spécialiste %s",
}

var simulatedSnippets = []string{
	"Au sein d'une équipe dynamique, vous prendrez en charge des missions variées autour de %s. Autonomie et rigueur attendues.",
	"Nous recherchons un profil motivé pour renforcer notre pôle %s. Travail en équipe et communication sont essentiels.",
	"Poste en télétravail partiel. Vous interviendrez sur des projets %s pour de grands comptes.",
	"Mission longue durée autour de %s. Environnement exigeant, accompagnement assuré.",
}

func NewSimulatedSource(name string, seed int64) *SimulatedSource {
	return &SimulatedSource{
		name:  name,
		rand:  rand.New(rand.NewSource(seed)),
		Count: defaultSimulatedCount,
	}
}

func (s *SimulatedSource) Name() string {
	return s.name
}

// Fetch fabricates Count listings for the keyword. The location override, if
// any, replaces the fabricated city.
func (s *SimulatedSource) Fetch(_ context.Context, keyword, location string) ([]*RawListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings := make([]*RawListing, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		city := simulatedCities[s.rand.Intn(len(simulatedCities))]
		if location != "" {
			city = location
		}

		title := fmt.Sprintf(simulatedTitles[s.rand.Intn(len(simulatedTitles))], keyword)
		salaryMin := 28000 + s.rand.Intn(20)*1000
		posted := time.Now().AddDate(0, 0, -s.rand.Intn(14))

		listings = append(listings, &RawListing{
			Title:       title,
			Company:     simulatedCompanies[s.rand.Intn(len(simulatedCompanies))],
			Location:    city,
			Description: fmt.Sprintf(simulatedSnippets[s.rand.Intn(len(simulatedSnippets))], keyword),
			URL:         fmt.Sprintf("https://%s.example.com/offres/%s-%d", s.name, strings.ReplaceAll(keyword, " ", "-"), s.rand.Intn(100000)),
			PostedDate:  posted.Format(time.RFC3339),
			SalaryMin:   salaryMin,
			SalaryMax:   salaryMin + 8000,
			JobType:     "CDI",
		})
	}

	return listings, nil
}
