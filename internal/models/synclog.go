package models

import "time"

// Major status codes recorded in sync results.
const (
	ResultInvalid = iota
	ResultSuccess
	ResultFailed
	ResultAborted
)

// TargetResults carries per-storage item counts from one sync session.
type TargetResults struct {
	Name     string
	Added    int
	Deleted  int
	Modified int
}

// SyncResults is the record of one sync session: when it ran, how it ended
// and what each target storage reported.
type SyncResults struct {
	Time      time.Time
	MajorCode int
	MinorCode int
	Scheduled bool
	Targets   []TargetResults
}

// SyncLog is the execution history of one sync profile, kept in
// chronological order. It is append-only from the application's perspective.
type SyncLog struct {
	profileName string
	results     []SyncResults
}

// NewSyncLog creates an empty log for the named profile.
func NewSyncLog(profileName string) *SyncLog {
	return &SyncLog{profileName: profileName}
}

// ProfileName returns the name of the profile this log belongs to.
func (l *SyncLog) ProfileName() string { return l.profileName }

// Results returns a copy of the result entries, oldest first.
func (l *SyncLog) Results() []SyncResults {
	out := make([]SyncResults, len(l.results))
	copy(out, l.results)
	return out
}

// LastResults returns the most recent entry, or nil for an empty log.
func (l *SyncLog) LastResults() *SyncResults {
	if len(l.results) == 0 {
		return nil
	}
	r := l.results[len(l.results)-1]
	return &r
}

// AddResults appends an entry, keeping the log in chronological order even
// when results arrive out of order.
func (l *SyncLog) AddResults(r SyncResults) {
	i := len(l.results)
	for i > 0 && l.results[i-1].Time.After(r.Time) {
		i--
	}
	l.results = append(l.results, SyncResults{})
	copy(l.results[i+1:], l.results[i:])
	l.results[i] = r
}
