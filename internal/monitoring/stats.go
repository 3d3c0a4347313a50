// Package monitoring provides lock-free counters for sanitization activity.
package monitoring

import "sync/atomic"

// ScanStats aggregates counters across concurrent sanitization calls.
// The zero value is ready to use.
type ScanStats struct {
	inputsScanned   atomic.Int64
	matchesRedacted atomic.Int64
	keysForced      atomic.Int64
	truncations     atomic.Int64
	failures        atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	InputsScanned   int64 `json:"inputs_scanned"`
	MatchesRedacted int64 `json:"matches_redacted"`
	KeysForced      int64 `json:"keys_forced"`
	Truncations     int64 `json:"truncations"`
	Failures        int64 `json:"failures"`
}

func (s *ScanStats) AddInput()          { s.inputsScanned.Add(1) }
func (s *ScanStats) AddMatches(n int)   { s.matchesRedacted.Add(int64(n)) }
func (s *ScanStats) AddKeyForced()      { s.keysForced.Add(1) }
func (s *ScanStats) AddTruncation()     { s.truncations.Add(1) }
func (s *ScanStats) AddFailure()        { s.failures.Add(1) }

// Snapshot returns the current counter values.
func (s *ScanStats) Snapshot() Snapshot {
	return Snapshot{
		InputsScanned:   s.inputsScanned.Load(),
		MatchesRedacted: s.matchesRedacted.Load(),
		KeysForced:      s.keysForced.Load(),
		Truncations:     s.truncations.Load(),
		Failures:        s.failures.Load(),
	}
}

// Reset zeroes all counters.
func (s *ScanStats) Reset() {
	s.inputsScanned.Store(0)
	s.matchesRedacted.Store(0)
	s.keysForced.Store(0)
	s.truncations.Store(0)
	s.failures.Store(0)
}
