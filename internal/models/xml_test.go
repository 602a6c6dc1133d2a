package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/syncstore/internal/models"
)

const sampleProfileXML = `<?xml version="1.0" encoding="UTF-8"?>
<profile name="addressbook" type="sync">
  <key name="enabled" value="true"/>
  <key name="displayname" value="Address Book"/>
  <profile name="google" type="service">
    <key name="destinationType" value="online"/>
  </profile>
  <profile name="contacts" type="storage"/>
  <schedule enabled="true" time="04:30" interval="60" days="1,2,3,4,5"/>
</profile>
`

func TestParseProfile_SampleDocument(t *testing.T) {
	p, err := models.ParseProfile([]byte(sampleProfileXML))
	require.NoError(t, err)

	assert.Equal(t, "addressbook", p.Name())
	assert.Equal(t, models.TypeSync, p.Type())

	v, ok := p.Key(models.KeyDisplayName)
	require.True(t, ok)
	assert.Equal(t, "Address Book", v)

	service := p.SubProfile("google", models.TypeService)
	require.NotNil(t, service)
	v, _ = service.Key(models.KeyDestinationType)
	assert.Equal(t, models.ValueOnline, v)

	stub := p.SubProfile("contacts", models.TypeStorage)
	require.NotNil(t, stub, "stub sub-profiles carry only name and type")
	assert.Empty(t, stub.Keys())
	assert.False(t, stub.IsLoaded())

	sched := p.Schedule()
	require.NotNil(t, sched)
	assert.True(t, sched.Enabled)
	assert.Equal(t, "04:30", sched.Time)
	assert.Equal(t, 60, sched.Interval)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sched.Days)
}

func TestProfile_RoundTrip(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	p.SetKey("enabled", "true")
	p.SetKey("empty", "")
	service := models.NewProfile("google", models.TypeService)
	service.SetKey(models.KeyDestinationType, models.ValueOnline)
	p.AddSubProfile(service)
	p.SetSchedule(&models.SyncSchedule{Enabled: true, Interval: 30})

	data, err := p.ToXML()
	require.NoError(t, err)

	back, err := models.ParseProfile(data)
	require.NoError(t, err)

	assert.Equal(t, p.Name(), back.Name())
	assert.Equal(t, p.Type(), back.Type())
	assert.Equal(t, p.Keys(), back.Keys(), "key set and order must survive the round trip")
	require.NotNil(t, back.SubProfile("google", models.TypeService))
	require.NotNil(t, back.Schedule())
	assert.Equal(t, 30, back.Schedule().Interval)
}

func TestParseProfile_Malformed(t *testing.T) {
	_, err := models.ParseProfile([]byte("<profile name=\"x\" type="))
	assert.Error(t, err)
}

func TestParseProfile_MissingIdentity(t *testing.T) {
	_, err := models.ParseProfile([]byte(`<profile name="" type="sync"/>`))
	assert.Error(t, err)

	_, err = models.ParseProfile([]byte(`<profile name="x" type="sync"><profile name="" type="storage"/></profile>`))
	assert.Error(t, err, "nested profiles need an identity too")
}

func TestToXML_MissingIdentity(t *testing.T) {
	_, err := models.NewProfile("", models.TypeSync).ToXML()
	assert.Error(t, err)
}

func TestParseSchedule_Standalone(t *testing.T) {
	s, err := models.ParseSchedule([]byte(`<schedule enabled="true" interval="15" days="6,7"/>`))
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, 15, s.Interval)
	assert.Equal(t, []int{6, 7}, s.Days)

	_, err = models.ParseSchedule([]byte(`<schedule enabled="true" days="8"/>`))
	assert.Error(t, err, "days outside 1..7 are rejected")
}

func TestSyncLog_RoundTrip(t *testing.T) {
	log := models.NewSyncLog("addressbook")
	log.AddResults(models.SyncResults{
		Time:      time.Date(2026, 8, 1, 4, 30, 0, 0, time.UTC),
		MajorCode: models.ResultSuccess,
		Scheduled: true,
		Targets: []models.TargetResults{
			{Name: "hcalendar", Added: 3, Modified: 1},
		},
	})
	log.AddResults(models.SyncResults{
		Time:      time.Date(2026, 8, 2, 4, 30, 0, 0, time.UTC),
		MajorCode: models.ResultFailed,
		MinorCode: 7,
	})

	data, err := log.ToXML()
	require.NoError(t, err)

	back, err := models.ParseSyncLog(data)
	require.NoError(t, err)

	assert.Equal(t, "addressbook", back.ProfileName())
	results := back.Results()
	require.Len(t, results, 2)
	assert.Equal(t, models.ResultSuccess, results[0].MajorCode)
	assert.True(t, results[0].Scheduled)
	require.Len(t, results[0].Targets, 1)
	assert.Equal(t, "hcalendar", results[0].Targets[0].Name)
	assert.Equal(t, 3, results[0].Targets[0].Added)
	assert.Equal(t, 7, results[1].MinorCode)
}

func TestParseSyncLog_Malformed(t *testing.T) {
	_, err := models.ParseSyncLog([]byte("<synclog"))
	assert.Error(t, err)

	_, err = models.ParseSyncLog([]byte(`<synclog name=""/>`))
	assert.Error(t, err)
}
