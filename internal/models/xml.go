package models

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// On-disk document shapes. A profile document is a root <profile> element
// with <key> attribute elements, optional nested <profile> elements of the
// same shape, and an optional <schedule> element. A sync log document is a
// <synclog> element holding <syncresults> entries.

type xmlProfile struct {
	XMLName  xml.Name      `xml:"profile"`
	Name     string        `xml:"name,attr"`
	Type     string        `xml:"type,attr"`
	Keys     []xmlKey      `xml:"key"`
	Schedule *xmlSchedule  `xml:"schedule"`
	Subs     []*xmlProfile `xml:"profile"`
}

type xmlKey struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlSchedule struct {
	XMLName  xml.Name `xml:"schedule"`
	Enabled  bool     `xml:"enabled,attr"`
	Time     string   `xml:"time,attr,omitempty"`
	Interval int      `xml:"interval,attr,omitempty"`
	Days     string   `xml:"days,attr,omitempty"`
}

type xmlSyncLog struct {
	XMLName xml.Name     `xml:"synclog"`
	Name    string       `xml:"name,attr"`
	Results []xmlResults `xml:"syncresults"`
}

type xmlResults struct {
	Time      string      `xml:"time,attr"`
	MajorCode int         `xml:"majorcode,attr"`
	MinorCode int         `xml:"minorcode,attr"`
	Scheduled bool        `xml:"scheduled,attr"`
	Targets   []xmlTarget `xml:"target"`
}

type xmlTarget struct {
	Name     string `xml:"name,attr"`
	Added    int    `xml:"added,attr"`
	Deleted  int    `xml:"deleted,attr"`
	Modified int    `xml:"modified,attr"`
}

const timeFormat = time.RFC3339

// ParseProfile parses a profile document. The root element must carry a
// non-empty name and type.
func ParseProfile(data []byte) (*Profile, error) {
	var doc xmlProfile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed profile document: %w", err)
	}
	return doc.toProfile()
}

func (d *xmlProfile) toProfile() (*Profile, error) {
	if d.Name == "" || d.Type == "" {
		return nil, fmt.Errorf("profile element requires name and type, got name=%q type=%q", d.Name, d.Type)
	}
	p := NewProfile(d.Name, d.Type)
	for _, kv := range d.Keys {
		p.SetKey(kv.Name, kv.Value)
	}
	if d.Schedule != nil {
		s, err := d.Schedule.toSchedule()
		if err != nil {
			return nil, err
		}
		p.SetSchedule(s)
	}
	for _, sub := range d.Subs {
		sp, err := sub.toProfile()
		if err != nil {
			return nil, err
		}
		p.AddSubProfile(sp)
	}
	return p, nil
}

// ToXML serializes the profile tree as an indented document with an XML
// declaration.
func (p *Profile) ToXML() ([]byte, error) {
	if p.name == "" || p.typ == "" {
		return nil, fmt.Errorf("profile requires name and type, got name=%q type=%q", p.name, p.typ)
	}
	return marshalDoc(p.toDoc())
}

func (p *Profile) toDoc() *xmlProfile {
	doc := &xmlProfile{Name: p.name, Type: p.typ}
	for _, kv := range p.keys {
		doc.Keys = append(doc.Keys, xmlKey{Name: kv.Name, Value: kv.Value})
	}
	if p.schedule != nil {
		doc.Schedule = scheduleDoc(p.schedule)
	}
	for _, sub := range p.subs {
		doc.Subs = append(doc.Subs, sub.toDoc())
	}
	return doc
}

// ParseSchedule parses a standalone <schedule> document.
func ParseSchedule(data []byte) (*SyncSchedule, error) {
	var doc xmlSchedule
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed schedule document: %w", err)
	}
	return doc.toSchedule()
}

// ToXML serializes the schedule as a standalone document.
func (s *SyncSchedule) ToXML() ([]byte, error) {
	return marshalDoc(scheduleDoc(s))
}

func scheduleDoc(s *SyncSchedule) *xmlSchedule {
	days := make([]string, len(s.Days))
	for i, d := range s.Days {
		days[i] = strconv.Itoa(d)
	}
	return &xmlSchedule{
		Enabled:  s.Enabled,
		Time:     s.Time,
		Interval: s.Interval,
		Days:     strings.Join(days, ","),
	}
}

func (d *xmlSchedule) toSchedule() (*SyncSchedule, error) {
	s := &SyncSchedule{
		Enabled:  d.Enabled,
		Time:     d.Time,
		Interval: d.Interval,
	}
	if d.Days != "" {
		for _, part := range strings.Split(d.Days, ",") {
			day, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || day < 1 || day > 7 {
				return nil, fmt.Errorf("invalid schedule day %q", part)
			}
			s.Days = append(s.Days, day)
		}
	}
	return s, nil
}

// ParseSyncLog parses a sync log document.
func ParseSyncLog(data []byte) (*SyncLog, error) {
	var doc xmlSyncLog
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed sync log document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("sync log requires a profile name")
	}
	log := NewSyncLog(doc.Name)
	for _, r := range doc.Results {
		t, err := time.Parse(timeFormat, r.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid sync result time %q: %w", r.Time, err)
		}
		results := SyncResults{
			Time:      t,
			MajorCode: r.MajorCode,
			MinorCode: r.MinorCode,
			Scheduled: r.Scheduled,
		}
		for _, tgt := range r.Targets {
			results.Targets = append(results.Targets, TargetResults{
				Name:     tgt.Name,
				Added:    tgt.Added,
				Deleted:  tgt.Deleted,
				Modified: tgt.Modified,
			})
		}
		log.results = append(log.results, results)
	}
	return log, nil
}

// ToXML serializes the log as an indented document.
func (l *SyncLog) ToXML() ([]byte, error) {
	doc := &xmlSyncLog{Name: l.profileName}
	for _, r := range l.results {
		entry := xmlResults{
			Time:      r.Time.Format(timeFormat),
			MajorCode: r.MajorCode,
			MinorCode: r.MinorCode,
			Scheduled: r.Scheduled,
		}
		for _, tgt := range r.Targets {
			entry.Targets = append(entry.Targets, xmlTarget{
				Name:     tgt.Name,
				Added:    tgt.Added,
				Deleted:  tgt.Deleted,
				Modified: tgt.Modified,
			})
		}
		doc.Results = append(doc.Results, entry)
	}
	return marshalDoc(doc)
}

func marshalDoc(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
