package analytics

import (
	"sync"
	"time"
)

// Filter is the resolved dashboard filter a refresh runs under.
type Filter struct {
	Selector RangeSelector
	From     time.Time
	To       time.Time
}

// Session holds the last computed chart data for one caller (one
// tenant's dashboard). It replaces the original's global mutable
// dashboard state: the UI layer owns a Session and passes it into
// Refresh, and tab switches that keep the filter read Last instead of
// re-querying.
//
// The generation counter closes a correctness gap in the original: a
// slow refresh that finishes after a newer one has started discards
// its result instead of overwriting the newer snapshot.
type Session struct {
	mu     sync.Mutex
	gen    uint64
	filter Filter
	last   *ChartData
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// begin marks the start of a refresh and returns its generation token.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// commit stores the snapshot unless a newer refresh has begun since
// token was issued. It reports whether the snapshot was kept.
func (s *Session) commit(token uint64, filter Filter, data *ChartData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	s.filter = filter
	s.last = data
	return true
}

// Last returns the most recently committed chart data, or nil when no
// refresh has completed yet.
func (s *Session) Last() *ChartData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// LastFilter returns the filter the cached snapshot was computed under.
func (s *Session) LastFilter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}
