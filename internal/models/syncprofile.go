package models

import "time"

// SyncType tells whether a sync profile runs manually or on a schedule.
type SyncType int

const (
	SyncTypeManual SyncType = iota
	SyncTypeScheduled
)

// SyncProfile is a profile of type "sync". In addition to the generic
// profile tree it owns at most one SyncLog and exposes the schedule
// descriptor. Obtain one with AsSyncProfile; there is no unchecked downcast.
type SyncProfile struct {
	*Profile
	log *SyncLog
}

// AsSyncProfile wraps p as a SyncProfile when its type tag is "sync".
func AsSyncProfile(p *Profile) (*SyncProfile, bool) {
	if p == nil || p.Type() != TypeSync {
		return nil, false
	}
	return &SyncProfile{Profile: p}, true
}

// NewSyncProfile creates an empty sync profile with the given name.
func NewSyncProfile(name string) *SyncProfile {
	return &SyncProfile{Profile: NewProfile(name, TypeSync)}
}

// Log returns the attached sync log, or nil.
func (sp *SyncProfile) Log() *SyncLog { return sp.log }

// SetLog attaches a log. The profile takes ownership.
func (sp *SyncProfile) SetLog(log *SyncLog) { sp.log = log }

// LastResults returns the latest log entry, or nil when there is no log or
// the log is empty.
func (sp *SyncProfile) LastResults() *SyncResults {
	if sp.log == nil {
		return nil
	}
	return sp.log.LastResults()
}

// LastSyncTime returns the time of the latest log entry.
func (sp *SyncProfile) LastSyncTime() (time.Time, bool) {
	last := sp.LastResults()
	if last == nil {
		return time.Time{}, false
	}
	return last.Time, true
}

// NextSyncTime computes the next scheduled occurrence based on the schedule
// and the last recorded sync. Manual profiles have none.
func (sp *SyncProfile) NextSyncTime() (time.Time, bool) {
	if sp.SyncType() != SyncTypeScheduled || sp.Schedule() == nil {
		return time.Time{}, false
	}
	prev, ok := sp.LastSyncTime()
	if !ok {
		prev = time.Now()
	}
	return sp.Schedule().NextSyncTime(prev)
}

// SyncType reports whether the profile is scheduled, manual by default.
func (sp *SyncProfile) SyncType() SyncType {
	if sp.BoolKey(KeyScheduled, false) {
		return SyncTypeScheduled
	}
	return SyncTypeManual
}

// SetSyncType sets the scheduled flag.
func (sp *SyncProfile) SetSyncType(t SyncType) {
	sp.SetBoolKey(KeyScheduled, t == SyncTypeScheduled)
}

// ServiceProfile returns the first direct sub-profile of type "service",
// or nil. A sync profile normally has exactly one.
func (sp *SyncProfile) ServiceProfile() *Profile {
	names := sp.SubProfileNames(TypeService)
	if len(names) == 0 {
		return nil
	}
	return sp.SubProfile(names[0], TypeService)
}

// StorageProfiles returns the direct sub-profiles of type "storage".
func (sp *SyncProfile) StorageProfiles() []*Profile {
	var out []*Profile
	for _, name := range sp.SubProfileNames(TypeStorage) {
		if s := sp.SubProfile(name, TypeStorage); s != nil {
			out = append(out, s)
		}
	}
	return out
}
