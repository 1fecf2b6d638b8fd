package queries

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/pkg/config"
	"petcare-hub/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidRange = errs.New("invalid date range")

const isoDay = "2006-01-02"

// RangeResult carries merged events plus the days whose fetch failed.
// One bad day never aborts the rest of the range.
type RangeResult struct {
	Events     []*EventView `json:"events"`
	FailedDays []string     `json:"failedDays,omitempty"`
}

type ScheduleQueries interface {
	// DayEvents merges all three services for one day. Events keep each
	// service's ascending-start order; cross-service order is not defined.
	DayEvents(ctx context.Context, date string) ([]*EventView, error)
	// RangeEvents fetches [from, to] day by day in bounded batches. Days
	// strictly before today are skipped unless includePast is set; past
	// data stays reachable for audit callers.
	RangeEvents(ctx context.Context, from, to string, includePast bool) (*RangeResult, error)
}

type scheduleQueriesImpl struct {
	appointments AppointmentQueries
	clock        clock.Clock
	batchDays    int
}

func NewScheduleQueries(appointments AppointmentQueries, clk clock.Clock, cfg config.ScheduleConfig) ScheduleQueries {
	batch := cfg.BatchDays
	if batch <= 0 {
		batch = 7
	}
	return &scheduleQueriesImpl{
		appointments: appointments,
		clock:        clk,
		batchDays:    batch,
	}
}

func (s *scheduleQueriesImpl) DayEvents(ctx context.Context, date string) ([]*EventView, error) {
	services := appointment.AllServices()
	perService := make([][]*EventView, len(services))

	g, gctx := errgroup.WithContext(ctx)
	for i, svc := range services {
		g.Go(func() error {
			events, err := s.appointments.DayEvents(gctx, svc, date)
			if err != nil {
				return err
			}
			perService[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []*EventView
	for _, events := range perService {
		merged = append(merged, events...)
	}
	return merged, nil
}

func (s *scheduleQueriesImpl) RangeEvents(ctx context.Context, from, to string, includePast bool) (*RangeResult, error) {
	days, err := s.enumerateDays(from, to, includePast)
	if err != nil {
		return nil, err
	}

	type dayResult struct {
		events []*EventView
		failed bool
	}
	results := make([]dayResult, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchDays)
	for i, day := range days {
		g.Go(func() error {
			events, err := s.DayEvents(gctx, day)
			if err != nil {
				// Isolated per day: record and move on.
				results[i] = dayResult{failed: true}
				return nil
			}
			results[i] = dayResult{events: events}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &RangeResult{}
	for i, r := range results {
		if r.failed {
			out.FailedDays = append(out.FailedDays, days[i])
			continue
		}
		out.Events = append(out.Events, r.events...)
	}
	return out, nil
}

func (s *scheduleQueriesImpl) enumerateDays(from, to string, includePast bool) ([]string, error) {
	start, err := time.Parse(isoDay, from)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	end, err := time.Parse(isoDay, to)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	today := clock.TodayISO(s.clock)

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(isoDay)
		if !includePast && day < today {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

// RangeLoader serializes calendar range loads behind a generation token.
// When a newer load supersedes an in-flight one, the stale result is
// returned to its own caller but never committed to the shared snapshot.
type RangeLoader struct {
	schedule ScheduleQueries

	gen      atomic.Uint64
	mu       sync.Mutex
	snapshot *RangeResult
}

func NewRangeLoader(schedule ScheduleQueries) *RangeLoader {
	return &RangeLoader{schedule: schedule}
}

func (l *RangeLoader) Load(ctx context.Context, from, to string, includePast bool) (*RangeResult, error) {
	gen := l.gen.Add(1)

	result, err := l.schedule.RangeEvents(ctx, from, to, includePast)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen.Load() == gen {
		l.snapshot = result
	}
	return result, nil
}

// Snapshot returns the latest committed result, or nil before the first load.
func (l *RangeLoader) Snapshot() *RangeResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}
