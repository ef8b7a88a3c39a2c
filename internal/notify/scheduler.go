package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/repositories/schedules"
	"github.com/arvo-app/arvo/internal/repositories/session"
)

// Scheduler periodically scans the current user's schedules and alerts on
// upcoming and missed entries. It is the sole writer of the notified flag:
// the flag transitions false -> true exactly once, recorded before the next
// schedule is examined, so each schedule alerts at most once, ever. There is
// no re-arm path; editing a schedule after its alert never alerts again.
type Scheduler struct {
	db       *sql.DB
	alerter  Alerter
	log      logging.Logger
	interval time.Duration
	lead     time.Duration

	// test seams
	nowFn func() time.Time
	loc   *time.Location
}

// NewScheduler constructs a Scheduler scanning every interval, alerting on
// schedules starting within lead.
func NewScheduler(db *sql.DB, alerter Alerter, log logging.Logger, interval, lead time.Duration) *Scheduler {
	return &Scheduler{
		db:       db,
		alerter:  alerter,
		log:      log,
		interval: interval,
		lead:     lead,
		nowFn:    time.Now,
		loc:      time.Local,
	}
}

// Run scans once immediately, then on every tick until ctx is cancelled.
// Cancel the context on logout to stop further scans.
func (s *Scheduler) Run(ctx context.Context) {
	s.CheckNow(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.CheckNow(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// CheckNow performs a single scan. Without an active session it does
// nothing.
func (s *Scheduler) CheckNow(ctx context.Context) {
	user, err := session.NewSQLiteRepository(s.db).Get(ctx)
	if err != nil {
		s.log.Error(ctx, "notification scan: session lookup failed", "error", err)
		return
	}
	if user == nil {
		return
	}

	repo := schedules.NewSQLiteRepository(s.db)
	list, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		s.log.Error(ctx, "notification scan: schedule listing failed", "error", err)
		return
	}

	now := s.nowFn()
	for _, sched := range list {
		if sched.Notified {
			continue
		}

		at, err := sched.StartsAt(s.loc)
		if err != nil {
			s.log.Warn(ctx, "notification scan: unparsable schedule datetime",
				"id", sched.ID, "date", sched.Date, "time", sched.Time)
			continue
		}

		diff := at.Sub(now)
		switch {
		case diff > 0 && diff <= s.lead:
			s.alerter.Alert(ctx, "Arvo — Schedule Reminder",
				fmt.Sprintf("Schedule %q starts at %s (in %d min)", sched.Title, sched.Time, int(diff.Minutes())),
				SeverityInfo)
			s.markNotified(ctx, repo, sched.ID)
		case diff < 0:
			s.alerter.Alert(ctx, "Arvo — Missed Schedule",
				fmt.Sprintf("Schedule %q was missed (%s)", sched.Title, sched.Time),
				SeverityWarning)
			s.markNotified(ctx, repo, sched.ID)
		}
	}
}

func (s *Scheduler) markNotified(ctx context.Context, repo schedules.Repository, id string) {
	notified := true
	if _, err := repo.Update(ctx, id, models.SchedulePatch{Notified: &notified}); err != nil {
		s.log.Error(ctx, "notification scan: failed to mark schedule notified", "id", id, "error", err)
	}
}
