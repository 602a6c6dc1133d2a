package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/syncstore/internal/models"
)

func TestKey_AbsentVsEmpty(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	p.SetKey("empty", "")

	v, ok := p.Key("empty")
	assert.True(t, ok, "empty value should still be present")
	assert.Equal(t, "", v)

	_, ok = p.Key("missing")
	assert.False(t, ok, "missing key must be distinguishable from empty value")
}

func TestSetKey_OverwritesInPlace(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	p.SetKey("a", "1")
	p.SetKey("b", "2")
	p.SetKey("a", "3")

	keys := p.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "a", keys[0].Name, "overwriting must not change key order")
	assert.Equal(t, "3", keys[0].Value)
	assert.Equal(t, "b", keys[1].Name)
}

func TestBoolFlags_Defaults(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)

	assert.True(t, p.IsEnabled(), "profiles are enabled by default")
	assert.False(t, p.IsHidden())
	assert.False(t, p.IsProtected())

	p.SetEnabled(false)
	assert.False(t, p.IsEnabled())

	p.SetBoolKey(models.KeyHidden, true)
	assert.True(t, p.IsHidden())
}

func TestSubProfile_LookupByNameAndType(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	p.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))
	p.AddSubProfile(models.NewProfile("notes", models.TypeStorage))
	p.AddSubProfile(models.NewProfile("google", models.TypeService))

	assert.NotNil(t, p.SubProfile("contacts", models.TypeStorage))
	assert.Nil(t, p.SubProfile("contacts", models.TypeService), "type must match when given")
	assert.NotNil(t, p.SubProfile("contacts", ""), "empty type matches any")

	names := p.SubProfileNames(models.TypeStorage)
	assert.Equal(t, []string{"contacts", "notes"}, names)
}

func TestAddSubProfile_DedupesByIdentity(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)

	first := models.NewProfile("contacts", models.TypeStorage)
	first.SetKey("a", "1")
	p.AddSubProfile(first)

	second := models.NewProfile("contacts", models.TypeStorage)
	second.SetKey("b", "2")
	p.AddSubProfile(second)

	require.Len(t, p.SubProfiles(), 1, "same (name, type) must merge, not duplicate")
	sub := p.SubProfile("contacts", models.TypeStorage)
	v, _ := sub.Key("a")
	assert.Equal(t, "1", v)
	v, _ = sub.Key("b")
	assert.Equal(t, "2", v)
}

func TestAllSubProfiles_Recursive(t *testing.T) {
	p := models.NewProfile("root", models.TypeSync)
	service := models.NewProfile("google", models.TypeService)
	service.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))
	p.AddSubProfile(service)
	p.AddSubProfile(models.NewProfile("client", models.TypeClient))

	all := p.AllSubProfiles()
	require.Len(t, all, 3)

	var names []string
	for _, sub := range all {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"google", "contacts", "client"}, names)
}

func TestMerge_IntoMatchingNode(t *testing.T) {
	root := models.NewProfile("addressbook", models.TypeSync)
	stub := models.NewProfile("google", models.TypeService)
	root.AddSubProfile(stub)

	loaded := models.NewProfile("google", models.TypeService)
	loaded.SetKey(models.KeyDestinationType, models.ValueOnline)
	loaded.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))

	require.True(t, root.Merge(loaded))

	merged := root.SubProfile("google", models.TypeService)
	v, ok := merged.Key(models.KeyDestinationType)
	assert.True(t, ok)
	assert.Equal(t, models.ValueOnline, v)
	assert.NotNil(t, merged.SubProfile("contacts", models.TypeStorage),
		"merge must splice in new sub-profiles")
}

func TestMerge_OverwritesAttributes(t *testing.T) {
	root := models.NewProfile("addressbook", models.TypeSync)
	root.SetKey("a", "old")

	src := models.NewProfile("addressbook", models.TypeSync)
	src.SetKey("a", "new")
	src.SetKey("b", "2")

	require.True(t, root.Merge(src))

	v, _ := root.Key("a")
	assert.Equal(t, "new", v)
	v, _ = root.Key("b")
	assert.Equal(t, "2", v)
}

func TestMerge_NoMatchingNode(t *testing.T) {
	root := models.NewProfile("addressbook", models.TypeSync)
	assert.False(t, root.Merge(models.NewProfile("other", models.TypeService)))
}

func TestClone_Independent(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	p.SetKey("a", "1")
	p.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))

	c := p.Clone()
	c.SetKey("a", "2")
	c.SubProfile("contacts", models.TypeStorage).SetKey("x", "y")

	v, _ := p.Key("a")
	assert.Equal(t, "1", v)
	_, ok := p.SubProfile("contacts", models.TypeStorage).Key("x")
	assert.False(t, ok)
}

func TestAsSyncProfile(t *testing.T) {
	p := models.NewProfile("addressbook", models.TypeSync)
	sp, ok := models.AsSyncProfile(p)
	require.True(t, ok)
	assert.Equal(t, "addressbook", sp.Name())

	_, ok = models.AsSyncProfile(models.NewProfile("contacts", models.TypeStorage))
	assert.False(t, ok, "non-sync profiles must not convert")

	_, ok = models.AsSyncProfile(nil)
	assert.False(t, ok)
}

func TestSyncProfile_SyncType(t *testing.T) {
	sp := models.NewSyncProfile("addressbook")
	assert.Equal(t, models.SyncTypeManual, sp.SyncType())

	sp.SetSyncType(models.SyncTypeScheduled)
	assert.Equal(t, models.SyncTypeScheduled, sp.SyncType())

	v, _ := sp.Key(models.KeyScheduled)
	assert.Equal(t, models.ValueTrue, v, "sync type is surfaced through an ordinary key")
}

func TestSyncProfile_ServiceAndStorages(t *testing.T) {
	sp := models.NewSyncProfile("addressbook")
	assert.Nil(t, sp.ServiceProfile())

	sp.AddSubProfile(models.NewProfile("google", models.TypeService))
	sp.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))
	sp.AddSubProfile(models.NewProfile("notes", models.TypeStorage))

	require.NotNil(t, sp.ServiceProfile())
	assert.Equal(t, "google", sp.ServiceProfile().Name())
	assert.Len(t, sp.StorageProfiles(), 2)
}
