// Package search derives listings from the registered job sources according
// to the criteria computed from a profile.
package search

// Level classifies the experience level of a profile.
type Level string

const (
	LevelJunior    Level = "junior"
	LevelSenior    Level = "senior"
	LevelConfirmed Level = "confirmed"
)

// DefaultThreshold is the compatibility threshold applied when the profile
// settings do not override it.
const DefaultThreshold = 0.6

// Criteria is the immutable result of a profile analysis. A new analysis
// produces a new instance.
type Criteria struct {
	Domain    string   `json:"domain"`
	Keywords  []string `json:"keywords"`
	Level     Level    `json:"experience_level"`
	Threshold float64  `json:"threshold"`
}

// TopKeywords returns the first n keywords, or all of them when fewer exist.
func (c *Criteria) TopKeywords(n int) []string {
	if n >= len(c.Keywords) {
		return c.Keywords
	}
	return c.Keywords[:n]
}
