package dispatch

import (
	"context"
	"math/rand"
	"sync"

	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/profile"
)

const defaultSuccessRate = 0.85

// SimulatedChannel flips a weighted coin instead of sending anything.
// Production deployments plug a real transport behind the same contract.
type SimulatedChannel struct {
	mu   sync.Mutex
	rand *rand.Rand

	// SuccessRate is the probability of a successful submission.
	SuccessRate float64
}

func NewSimulatedChannel(seed int64) *SimulatedChannel {
	return &SimulatedChannel{
		rand:        rand.New(rand.NewSource(seed)),
		SuccessRate: defaultSuccessRate,
	}
}

func (c *SimulatedChannel) Submit(_ context.Context, _ *job.Listing, _ *profile.Application) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rand.Float64() < c.SuccessRate, nil
}
