// Package dispatch sends generated applications through a submission
// channel, enforcing the per-profile daily quota.
package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/generator"
	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/profile"
	"github.com/dianaf18/jobpilot/internal/search"
	"github.com/dianaf18/jobpilot/internal/utils"
)

// SubmissionChannel performs the actual send of one application. The
// dispatcher treats it as opaque: a false result or an error is a failed
// submission, which consumes the candidate listing but not the quota.
type SubmissionChannel interface {
	Submit(ctx context.Context, listing *job.Listing, app *profile.Application) (bool, error)
}

const dayFormat = "2006-01-02"

// quotaState tracks one profile's sends for the current calendar day. The
// mutex also serializes concurrent dispatches for the profile.
type quotaState struct {
	mu           sync.Mutex
	sentToday    int
	lastSendDate string
}

type Dispatcher struct {
	channel   SubmissionChannel
	generator *generator.Generator
	logger    *zap.Logger

	// Pause is an optional delay between consecutive submissions.
	Pause time.Duration

	now func() time.Time

	mu     sync.Mutex
	states map[string]*quotaState
}

func New(channel SubmissionChannel, gen *generator.Generator, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		channel:   channel,
		generator: gen,
		logger:    logger,
		now:       time.Now,
		states:    make(map[string]*quotaState),
	}
}

func (d *Dispatcher) state(id string) *quotaState {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.states[id]
	if !ok {
		st = &quotaState{}
		d.states[id] = st
	}
	return st
}

// Dispatch walks the ranked listings in order and submits an application for
// each one while the daily quota allows it. Successful submissions append a
// record to the profile history; failed ones consume the candidate listing
// without touching the quota. Running out of quota or listings is a normal
// termination. The context may cancel the scan between listings.
func (d *Dispatcher) Dispatch(ctx context.Context, ranked *job.Listings, p *profile.UserProfile, criteria *search.Criteria, dailyLimit int) []*profile.ApplicationRecord {
	st := d.state(p.Email)
	st.mu.Lock()
	defer st.mu.Unlock()

	today := d.now().Format(dayFormat)
	if st.lastSendDate != today {
		st.sentToday = 0
		st.lastSendDate = today
	}

	var records []*profile.ApplicationRecord
	for _, listing := range ranked.Items {
		if st.sentToday >= dailyLimit {
			d.logger.Info("daily limit reached",
				zap.String("profile", p.Email),
				zap.Int("daily_limit", dailyLimit),
			)
			break
		}

		select {
		case <-ctx.Done():
			d.logger.Info("dispatch canceled", zap.String("profile", p.Email))
			return records
		default:
		}

		app := d.generator.Generate(ctx, listing, p, criteria)

		ok, err := d.channel.Submit(ctx, listing, app)
		if err != nil {
			d.logger.Warn("submission failed",
				zap.String("company", listing.Company),
				zap.String("title", listing.Title),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			d.logger.Info("submission rejected",
				zap.String("company", listing.Company),
				zap.String("title", listing.Title),
			)
			continue
		}

		record := &profile.ApplicationRecord{
			Job:         listing.Snapshot(),
			Application: app,
			SentDate:    d.now().UTC(),
			Status:      profile.StatusSent,
		}
		p.AppendRecord(record)
		records = append(records, record)
		st.sentToday++

		d.logger.Info("application sent",
			zap.String("company", listing.Company),
			zap.String("title", listing.Title),
			zap.Float64("score", listing.Score),
			zap.Int("sent_today", st.sentToday),
		)

		if d.Pause > 0 {
			if err := utils.WaitFor(ctx, d.Pause); err != nil {
				return records
			}
		}
	}

	return records
}
