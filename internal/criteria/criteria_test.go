package criteria_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/syncstore/internal/criteria"
	"github.com/vytor/syncstore/internal/models"
)

// TestMatchKey_TruthTable exercises the complete comparator algebra over
// key present/absent and value match/mismatch.
func TestMatchKey_TruthTable(t *testing.T) {
	tests := []struct {
		typ      criteria.Type
		present  bool
		valueEq  bool
		expected bool
	}{
		{criteria.Exists, true, true, true},
		{criteria.Exists, true, false, true},
		{criteria.Exists, false, false, false},
		{criteria.NotExists, true, true, false},
		{criteria.NotExists, true, false, false},
		{criteria.NotExists, false, false, true},
		{criteria.Equal, true, true, true},
		{criteria.Equal, true, false, false},
		{criteria.Equal, false, false, false},
		{criteria.NotEqual, true, true, false},
		{criteria.NotEqual, true, false, true},
		{criteria.NotEqual, false, false, true},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("type=%d/present=%v/valueEq=%v", tt.typ, tt.present, tt.valueEq)
		t.Run(name, func(t *testing.T) {
			p := models.NewProfile("test", models.TypeSync)
			if tt.present {
				if tt.valueEq {
					p.SetKey("k", "wanted")
				} else {
					p.SetKey("k", "other")
				}
			}

			c := criteria.Criteria{Type: tt.typ, Key: "k", Value: "wanted"}
			assert.Equal(t, tt.expected, criteria.Match(p, c))
		})
	}
}

func TestMatch_EmptyValueIsNotAbsence(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)
	p.SetKey("k", "")

	assert.True(t, criteria.Match(p, criteria.Criteria{Type: criteria.Exists, Key: "k"}))
	assert.True(t, criteria.Match(p, criteria.Criteria{Type: criteria.Equal, Key: "k", Value: ""}))
	assert.False(t, criteria.Match(p, criteria.Criteria{Type: criteria.NotExists, Key: "k"}))
}

func TestMatch_NamedSubProfile(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)
	storage := models.NewProfile("contacts", models.TypeStorage)
	storage.SetKey(models.KeyEnabled, models.ValueTrue)
	p.AddSubProfile(storage)

	match := criteria.Criteria{
		Type:           criteria.Equal,
		SubProfileName: "contacts",
		SubProfileType: models.TypeStorage,
		Key:            models.KeyEnabled,
		Value:          models.ValueTrue,
	}
	assert.True(t, criteria.Match(p, match))

	absent := criteria.Criteria{
		Type:           criteria.NotExists,
		SubProfileName: "calendar",
		SubProfileType: models.TypeStorage,
	}
	assert.True(t, criteria.Match(p, absent), "missing sub-profile matches only NOT_EXISTS")

	absent.Type = criteria.Exists
	assert.False(t, criteria.Match(p, absent))
}

func TestMatch_SubProfileExistenceWithoutKey(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)
	p.AddSubProfile(models.NewProfile("contacts", models.TypeStorage))

	c := criteria.Criteria{Type: criteria.Exists, SubProfileName: "contacts", SubProfileType: models.TypeStorage}
	assert.True(t, criteria.Match(p, c))

	c.Type = criteria.NotExists
	assert.False(t, criteria.Match(p, c), "existing sub-profile fails NOT_EXISTS even without a key")
}

func TestMatch_SubProfileByTypeScansAll(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)

	first := models.NewProfile("a", models.TypeStorage)
	first.SetKey(models.KeyEnabled, models.ValueFalse)
	p.AddSubProfile(first)

	second := models.NewProfile("b", models.TypeStorage)
	second.SetKey(models.KeyEnabled, models.ValueTrue)
	p.AddSubProfile(second)

	c := criteria.Criteria{
		Type:           criteria.Equal,
		SubProfileType: models.TypeStorage,
		Key:            models.KeyEnabled,
		Value:          models.ValueTrue,
	}
	assert.True(t, criteria.Match(p, c), "any sub-profile of the type may satisfy the clause")

	c.Value = "maybe"
	assert.False(t, criteria.Match(p, c))
}

func TestMatch_SubProfileByType_NoneOfType(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)

	c := criteria.Criteria{Type: criteria.NotExists, SubProfileType: models.TypeStorage}
	assert.True(t, criteria.Match(p, c))

	c.Type = criteria.Equal
	c.Key = models.KeyEnabled
	assert.False(t, criteria.Match(p, c))
}

func TestMatchAll_AndSemantics(t *testing.T) {
	p := models.NewProfile("test", models.TypeSync)
	p.SetKey("a", "1")
	p.SetKey("b", "2")

	cs := []criteria.Criteria{
		{Type: criteria.Equal, Key: "a", Value: "1"},
		{Type: criteria.Equal, Key: "b", Value: "2"},
	}
	assert.True(t, criteria.MatchAll(p, cs))

	cs[1].Value = "3"
	assert.False(t, criteria.MatchAll(p, cs))

	assert.True(t, criteria.MatchAll(p, nil), "an empty clause list matches everything")
}
