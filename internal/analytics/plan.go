package analytics

import (
	"errors"
	"fmt"
	"time"
)

// RangeSelector identifies the dashboard time window granularity.
type RangeSelector string

const (
	RangeToday  RangeSelector = "today"
	RangeWeek   RangeSelector = "week"
	RangeMonth  RangeSelector = "month"
	RangeYear   RangeSelector = "year"
	RangeCustom RangeSelector = "custom"
)

const (
	// customDailyMaxDays is the widest custom span bucketed day-by-day.
	customDailyMaxDays = 20
	// customWindowDays is the bucket width once a custom span exceeds the daily limit.
	customWindowDays = 5
)

// ErrMissingDates indicates a custom range without both bounds; callers
// treat this as "filter not yet complete" and skip the refresh.
var ErrMissingDates = errors.New("analytics: custom range requires from and to dates")

// ErrUnknownSelector indicates an unsupported range selector value.
var ErrUnknownSelector = errors.New("analytics: unknown range selector")

var shortDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
var shortMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Plan is an immutable bucket layout for one range selector. The label
// list and bucket count are fixed before any row is consulted; IndexOf
// is the single mapping from timestamp to bucket shared by the
// aggregator, the future trim and the product trend selection.
type Plan struct {
	Selector    RangeSelector
	Labels      []string
	BucketCount int

	loc        *time.Location
	customFrom time.Time
	customTo   time.Time
	daily      bool
}

// NewPlan builds the bucket plan for a selector. from/to are only
// consulted for RangeCustom and must both be set there; their time
// components are ignored (days are compared at local midnight).
func NewPlan(selector RangeSelector, from, to time.Time, loc *time.Location) (*Plan, error) {
	if loc == nil {
		loc = time.Local
	}
	p := &Plan{Selector: selector, loc: loc}

	switch selector {
	case RangeToday:
		p.Labels = make([]string, 0, 24)
		for hour := 0; hour < 24; hour++ {
			p.Labels = append(p.Labels, hourLabel(hour))
		}
	case RangeWeek:
		p.Labels = append([]string(nil), shortDays...)
	case RangeMonth:
		p.Labels = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}
	case RangeYear:
		p.Labels = append([]string(nil), shortMonths...)
	case RangeCustom:
		if from.IsZero() || to.IsZero() {
			return nil, ErrMissingDates
		}
		p.customFrom = midnight(from, loc)
		p.customTo = midnight(to, loc)
		span := daysBetween(p.customFrom, p.customTo) + 1
		if span < 1 {
			span = 1
		}
		p.daily = span <= customDailyMaxDays
		if p.daily {
			for i := 0; i < span; i++ {
				day := p.customFrom.AddDate(0, 0, i)
				p.Labels = append(p.Labels, fmt.Sprintf("%d/%d/%d", day.Day(), int(day.Month()), day.Year()))
			}
		} else {
			windows := (span + customWindowDays - 1) / customWindowDays
			for i := 0; i < windows; i++ {
				startDay := i * customWindowDays
				endDay := (i+1)*customWindowDays - 1
				if endDay > span-1 {
					endDay = span - 1
				}
				s := p.customFrom.AddDate(0, 0, startDay)
				e := p.customFrom.AddDate(0, 0, endDay)
				p.Labels = append(p.Labels, fmt.Sprintf("%d/%d - %d/%d", s.Day(), int(s.Month()), e.Day(), int(e.Month())))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, selector)
	}

	p.BucketCount = len(p.Labels)
	return p, nil
}

// IndexOf maps a timestamp to its bucket index. The second return is
// false when the timestamp falls outside [0, BucketCount); such rows
// are silently excluded from bucketed sums.
func (p *Plan) IndexOf(t time.Time) (int, bool) {
	idx := p.rawIndex(t)
	if idx < 0 || idx >= p.BucketCount {
		return 0, false
	}
	return idx, true
}

// NowIndex maps the current instant with the same arithmetic as
// IndexOf but without clamping: a result below zero means the whole
// range lies in the future, a result at or past BucketCount means no
// trimming applies.
func (p *Plan) NowIndex(now time.Time) int {
	return p.rawIndex(now)
}

func (p *Plan) rawIndex(t time.Time) int {
	t = t.In(p.loc)
	switch p.Selector {
	case RangeToday:
		return t.Hour()
	case RangeWeek:
		// Monday-start remap: Sunday sorts last.
		return (int(t.Weekday()) + 6) % 7
	case RangeMonth:
		idx := (t.Day() - 1) / 7
		if idx > 4 {
			idx = 4
		}
		return idx
	case RangeYear:
		return int(t.Month()) - 1
	case RangeCustom:
		dayDiff := daysBetween(p.customFrom, midnight(t, p.loc))
		if p.daily {
			return dayDiff
		}
		return floorDiv(dayDiff, customWindowDays)
	}
	return -1
}

// Window resolves the [start, end] query bounds for the plan. End is
// zero for the fixed selectors, which are open-ended toward now.
func (p *Plan) Window(now time.Time) (time.Time, time.Time) {
	now = now.In(p.loc)
	switch p.Selector {
	case RangeToday:
		return midnight(now, p.loc), time.Time{}
	case RangeWeek:
		start := midnight(now, p.loc).AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		return start, time.Time{}
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, p.loc), time.Time{}
	case RangeYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, p.loc), time.Time{}
	case RangeCustom:
		// Inclusive end of day on the to-date.
		end := p.customTo.Add(24*time.Hour - time.Second)
		return p.customFrom, end
	}
	return time.Time{}, time.Time{}
}

func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour > 12:
		return fmt.Sprintf("%d PM", hour-12)
	default:
		return fmt.Sprintf("%d AM", hour)
	}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween rounds so DST shifts of an hour or two do not move a row
// into the neighbouring day bucket.
func daysBetween(from, to time.Time) int {
	hours := to.Sub(from).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
