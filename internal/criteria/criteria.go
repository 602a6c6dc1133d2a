// Package criteria implements the structural query algebra used to select
// profiles by nested attribute constraints. A Criteria is one clause; a list
// of clauses is AND-combined with MatchAll. Matching is pure and read-only
// over an already-resolved profile tree.
package criteria

import (
	"github.com/vytor/syncstore/internal/models"
)

// Type is the comparator of a criteria clause.
type Type int

const (
	// Exists matches when the addressed sub-profile or key is present.
	Exists Type = iota
	// NotExists matches when the addressed sub-profile or key is absent.
	NotExists
	// Equal matches when the addressed key is present with the given value.
	Equal
	// NotEqual matches when the addressed key is absent or carries a
	// different value.
	NotEqual
)

// Criteria is a single query clause. SubProfileName and SubProfileType scope
// the clause to a sub-profile of the tested profile; when both are empty the
// clause applies to the profile itself. Key and Value address an attribute
// on the scoped profile; an empty Key makes the clause a pure existence
// check on the scoped profile.
type Criteria struct {
	Type           Type
	SubProfileName string
	SubProfileType string
	Key            string
	Value          string
}

// Match evaluates one clause against a profile tree.
func Match(p *models.Profile, c Criteria) bool {
	if c.SubProfileName != "" {
		// A specific sub-profile is addressed by name (and type).
		sub := p.SubProfile(c.SubProfileName, c.SubProfileType)
		if sub == nil {
			return c.Type == NotExists
		}
		return matchKey(sub, c)
	}

	if c.SubProfileType != "" {
		// Only the type is given: any sub-profile of that type may
		// satisfy the clause.
		names := p.SubProfileNames(c.SubProfileType)
		if len(names) == 0 {
			return c.Type == NotExists
		}
		for _, name := range names {
			if sub := p.SubProfile(name, c.SubProfileType); sub != nil && matchKey(sub, c) {
				return true
			}
		}
		return false
	}

	return matchKey(p, c)
}

// MatchAll evaluates an ordered clause list, all required to match.
func MatchAll(p *models.Profile, cs []Criteria) bool {
	for _, c := range cs {
		if !Match(p, c) {
			return false
		}
	}
	return true
}

func matchKey(p *models.Profile, c Criteria) bool {
	if c.Key == "" {
		// No key: the clause is an existence check on the profile that
		// was reached above, which by now is known to exist.
		return c.Type != NotExists
	}

	value, ok := p.Key(c.Key)
	if !ok {
		// An attribute that does not exist trivially satisfies "not
		// equal to X".
		return c.Type == NotExists || c.Type == NotEqual
	}

	switch c.Type {
	case Exists:
		return true
	case NotExists:
		return false
	case Equal:
		return value == c.Value
	case NotEqual:
		return value != c.Value
	default:
		return false
	}
}
