// Package resolver expands sync profiles in place by merging the documents
// of their sub-profiles. A sub-profile element inside a document is usually
// a stub carrying only a name and a type; the full definition lives in its
// own document and is folded into the tree here.
package resolver

import (
	"context"

	"github.com/vytor/syncstore/internal/logger"
	"github.com/vytor/syncstore/internal/models"
)

// Loader fetches a stored profile document by identity. Absence is reported
// as (nil, nil).
type Loader interface {
	Load(ctx context.Context, name, typ string) (*models.Profile, error)
}

// Expander resolves sub-profile stubs against a Loader.
type Expander struct {
	loader Loader
}

// New creates an Expander reading definitions from the given loader.
func New(loader Loader) *Expander {
	return &Expander{loader: loader}
}

// Expand merges the stored definition of every sub-profile into p,
// recursively: merged definitions can themselves introduce new stubs, so
// the tree is re-scanned until a full pass adds no sub-profile. A profile
// already marked loaded is left untouched; on completion the whole tree is
// marked loaded. Each identity is loaded from the store at most once per
// call; further stubs of the same identity reuse the cached definition.
// Stubs with no stored document are left as they are.
func (e *Expander) Expand(ctx context.Context, p *models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("resolver")

	if p.IsLoaded() {
		return nil
	}

	// nil value = identity looked up, no document stored.
	defs := make(map[identity]*models.Profile)
	prevCount := 0
	passes := 0
	for {
		subs := p.AllSubProfiles()
		if len(subs) == prevCount {
			break
		}
		prevCount = len(subs)

		// A stub chain without repeated identities can be at most as
		// deep as the number of distinct stored identities, and each
		// pass resolves one more level. More passes than that means
		// documents reference each other in a cycle.
		passes++
		if passes > len(defs)+1 {
			log.Warn("sub-profile reference cycle in %s, stopping expansion", p.Name())
			break
		}

		for _, sub := range subs {
			if sub.IsLoaded() {
				continue
			}
			id := identity{name: sub.Name(), typ: sub.Type()}

			def, seen := defs[id]
			if !seen {
				var err error
				def, err = e.loader.Load(ctx, sub.Name(), sub.Type())
				if err != nil {
					return err
				}
				defs[id] = def
			}

			if def == nil {
				log.Debug("no document for sub-profile: name=%s type=%s",
					sub.Name(), sub.Type())
			} else {
				// Merge consumes its source, so every stub gets its
				// own copy of the definition.
				sub.Merge(def.Clone())
			}
			sub.SetLoaded(true)
		}
	}

	p.SetLoaded(true)
	return nil
}

type identity struct {
	name string
	typ  string
}
