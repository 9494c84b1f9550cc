package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service coordinates one dashboard refresh: plan the buckets, fetch
// the raw rows, aggregate, transform, select and assemble. It owns no
// chart state itself; callers hold a Session per dashboard.
type Service struct {
	repo  Repository
	cache *Cache
	loc   *time.Location
	now   func() time.Time
}

// NewService wires a Repository with the cache helper. loc is the
// tenant timezone all bucket arithmetic runs in.
func NewService(repo Repository, cache *Cache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:  repo,
		cache: cache,
		loc:   loc,
		now:   time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Refresh computes chart data for the filter and commits it to the
// session. A custom selector without both dates is not an error: the
// filter is simply incomplete, so Refresh returns (nil, nil) and the
// session keeps its previous snapshot. Fetch failures abort without
// mutating the session.
func (s *Service) Refresh(ctx context.Context, sess *Session, tenantID uuid.UUID, filter Filter) (*ChartData, error) {
	plan, err := NewPlan(filter.Selector, filter.From, filter.To, s.loc)
	if err != nil {
		if errors.Is(err, ErrMissingDates) {
			return nil, nil
		}
		return nil, err
	}

	var token uint64
	if sess != nil {
		token = sess.begin()
	}

	now := s.now()
	loader := func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, tenantID, plan, now)
	}

	var data *ChartData
	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		data = value.(*ChartData)
	} else {
		windowStart, _ := plan.Window(now)
		key, err := s.cache.BuildKey(ctx, keyCharts(tenantID.String(), filter, windowStart))
		if err != nil {
			return nil, err
		}
		data = &ChartData{}
		if err := s.cache.FetchJSON(ctx, key, data, loader); err != nil {
			return nil, err
		}
	}

	if sess != nil {
		sess.commit(token, filter, data)
	}
	return data, nil
}

// compute runs the full pipeline against freshly fetched rows. The two
// fetches read the same immutable snapshot window and do not depend on
// each other, so they are issued concurrently.
func (s *Service) compute(ctx context.Context, tenantID uuid.UUID, plan *Plan, now time.Time) (*ChartData, error) {
	start, end := plan.Window(now)
	window := Window{Start: start, End: end}

	var (
		bills []BillRow
		items []LineItemRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.FetchBills(gctx, tenantID, window)
		if err != nil {
			return err
		}
		bills = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.FetchLineItems(gctx, tenantID, window)
		if err != nil {
			return err
		}
		items = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := Aggregate(bills, items, plan)
	return BuildChartData(plan, agg, plan.NowIndex(now), now), nil
}
