package analytics

import (
	"errors"
	"testing"
	"time"
)

func mustPlan(t *testing.T, selector RangeSelector, from, to time.Time) *Plan {
	t.Helper()
	plan, err := NewPlan(selector, from, to, time.UTC)
	if err != nil {
		t.Fatalf("NewPlan(%s): %v", selector, err)
	}
	return plan
}

func TestPlanLabelCountsMatchBucketCounts(t *testing.T) {
	cases := []struct {
		selector RangeSelector
		from, to time.Time
		want     int
	}{
		{RangeToday, time.Time{}, time.Time{}, 24},
		{RangeWeek, time.Time{}, time.Time{}, 7},
		{RangeMonth, time.Time{}, time.Time{}, 5},
		{RangeYear, time.Time{}, time.Time{}, 12},
		{RangeCustom, date(2025, 3, 1), date(2025, 3, 10), 10},
		{RangeCustom, date(2025, 3, 1), date(2025, 3, 25), 5},
	}
	for _, tc := range cases {
		plan := mustPlan(t, tc.selector, tc.from, tc.to)
		if len(plan.Labels) != tc.want || plan.BucketCount != tc.want {
			t.Fatalf("%s: labels=%d buckets=%d want %d", tc.selector, len(plan.Labels), plan.BucketCount, tc.want)
		}
	}
}

func TestPlanTodayLabels(t *testing.T) {
	plan := mustPlan(t, RangeToday, time.Time{}, time.Time{})
	if plan.Labels[0] != "12 AM" {
		t.Fatalf("hour 0 label = %q", plan.Labels[0])
	}
	if plan.Labels[12] != "12 PM" {
		t.Fatalf("hour 12 label = %q", plan.Labels[12])
	}
	if plan.Labels[23] != "11 PM" {
		t.Fatalf("hour 23 label = %q", plan.Labels[23])
	}
	if plan.Labels[9] != "9 AM" || plan.Labels[14] != "2 PM" {
		t.Fatalf("mid labels: %q, %q", plan.Labels[9], plan.Labels[14])
	}
}

func TestPlanWeekSundaySortsLast(t *testing.T) {
	plan := mustPlan(t, RangeWeek, time.Time{}, time.Time{})
	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) // a Sunday
	idx, ok := plan.IndexOf(sunday)
	if !ok || idx != 6 {
		t.Fatalf("sunday index = %d ok=%v, want 6", idx, ok)
	}
	monday := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	idx, ok = plan.IndexOf(monday)
	if !ok || idx != 0 {
		t.Fatalf("monday index = %d ok=%v, want 0", idx, ok)
	}
}

func TestPlanMonthClampsFifthWeek(t *testing.T) {
	plan := mustPlan(t, RangeMonth, time.Time{}, time.Time{})
	cases := map[int]int{1: 0, 7: 0, 8: 1, 28: 3, 29: 4, 31: 4}
	for day, want := range cases {
		ts := time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC)
		idx, ok := plan.IndexOf(ts)
		if !ok || idx != want {
			t.Fatalf("day %d: index=%d ok=%v, want %d", day, idx, ok, want)
		}
	}
}

func TestPlanYearIndexByMonth(t *testing.T) {
	plan := mustPlan(t, RangeYear, time.Time{}, time.Time{})
	idx, ok := plan.IndexOf(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	if !ok || idx != 11 {
		t.Fatalf("december index = %d ok=%v", idx, ok)
	}
	if plan.Labels[0] != "Jan" || plan.Labels[11] != "Dec" {
		t.Fatalf("year labels: %q..%q", plan.Labels[0], plan.Labels[11])
	}
}

func TestPlanCustomDailyBuckets(t *testing.T) {
	plan := mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 10))
	if !plan.daily {
		t.Fatal("10-day span should bucket daily")
	}
	if plan.Labels[0] != "1/3/2025" || plan.Labels[9] != "10/3/2025" {
		t.Fatalf("daily labels: %q..%q", plan.Labels[0], plan.Labels[9])
	}
	idx, ok := plan.IndexOf(time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC))
	if !ok || idx != 3 {
		t.Fatalf("march 4 index = %d ok=%v", idx, ok)
	}
}

func TestPlanCustomWideRangeUsesFiveDayWindows(t *testing.T) {
	plan := mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 25))
	if plan.daily {
		t.Fatal("25-day span should use windows")
	}
	if plan.BucketCount != 5 {
		t.Fatalf("bucket count = %d, want 5", plan.BucketCount)
	}
	if plan.Labels[0] != "1/3 - 5/3" {
		t.Fatalf("first window label = %q", plan.Labels[0])
	}
	if plan.Labels[4] != "21/3 - 25/3" {
		t.Fatalf("last window label = %q", plan.Labels[4])
	}
	// Day offset 7 falls into the second window.
	idx, ok := plan.IndexOf(time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC))
	if !ok || idx != 1 {
		t.Fatalf("offset-7 index = %d ok=%v, want 1", idx, ok)
	}
}

func TestPlanCustomPartialLastWindowLabel(t *testing.T) {
	// 22 days: windows of 5,5,5,5,2.
	plan := mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 22))
	if plan.BucketCount != 5 {
		t.Fatalf("bucket count = %d, want 5", plan.BucketCount)
	}
	if plan.Labels[4] != "21/3 - 22/3" {
		t.Fatalf("partial window label = %q", plan.Labels[4])
	}
}

func TestPlanCustomRequiresBothDates(t *testing.T) {
	if _, err := NewPlan(RangeCustom, date(2025, 3, 1), time.Time{}, time.UTC); !errors.Is(err, ErrMissingDates) {
		t.Fatalf("missing to: err = %v", err)
	}
	if _, err := NewPlan(RangeCustom, time.Time{}, date(2025, 3, 1), time.UTC); !errors.Is(err, ErrMissingDates) {
		t.Fatalf("missing from: err = %v", err)
	}
}

func TestPlanUnknownSelector(t *testing.T) {
	if _, err := NewPlan(RangeSelector("quarter"), time.Time{}, time.Time{}, time.UTC); !errors.Is(err, ErrUnknownSelector) {
		t.Fatalf("err = %v", err)
	}
}

func TestPlanIndexOfRejectsOutOfRange(t *testing.T) {
	plan := mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 10))
	if _, ok := plan.IndexOf(time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("timestamp before range should not map")
	}
	if _, ok := plan.IndexOf(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("timestamp after range should not map")
	}
}

func TestPlanWindowBounds(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // a Wednesday

	plan := mustPlan(t, RangeToday, time.Time{}, time.Time{})
	start, end := plan.Window(now)
	if !start.Equal(date(2025, 3, 12)) || !end.IsZero() {
		t.Fatalf("today window: %v..%v", start, end)
	}

	plan = mustPlan(t, RangeWeek, time.Time{}, time.Time{})
	start, _ = plan.Window(now)
	if !start.Equal(date(2025, 3, 10)) {
		t.Fatalf("week window should start monday, got %v", start)
	}

	plan = mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 10))
	start, end = plan.Window(now)
	if !start.Equal(date(2025, 3, 1)) {
		t.Fatalf("custom start = %v", start)
	}
	wantEnd := date(2025, 3, 11).Add(-time.Second)
	if !end.Equal(wantEnd) {
		t.Fatalf("custom end = %v, want %v", end, wantEnd)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
