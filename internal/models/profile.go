package models

// Well-known profile types.
const (
	TypeSync    = "sync"
	TypeStorage = "storage"
	TypeService = "service"
	TypeClient  = "client"
	TypeServer  = "server"
)

// Well-known keys. Boolean flags are stored as ordinary string keys with
// "true"/"false" values for on-disk compatibility; typed accessors below
// wrap them.
const (
	KeyEnabled         = "enabled"
	KeyHidden          = "hidden"
	KeyProtected       = "protected"
	KeyScheduled       = "scheduled"
	KeyDisplayName     = "displayname"
	KeyDestinationType = "destinationType"
	KeyRemoteID        = "remote_id"

	ValueTrue   = "true"
	ValueFalse  = "false"
	ValueOnline = "online"
)

// KeyValue is a single profile attribute. Insertion order is preserved for
// serialization; lookup is by exact, case-sensitive name.
type KeyValue struct {
	Name  string
	Value string
}

// Profile is a named, typed configuration node. It carries an ordered set of
// string attributes and owns zero or more sub-profiles, each itself a
// (name, type)-identified Profile. A sub-profile may start out as a stub
// (name and type only) to be resolved against its own on-disk document.
//
// The (name, type) pair is the identity of a profile: within one parent there
// is at most one sub-profile per distinct (name, type).
type Profile struct {
	name     string
	typ      string
	keys     []KeyValue
	subs     []*Profile
	schedule *SyncSchedule
	loaded   bool
}

// NewProfile creates an empty profile with the given identity.
func NewProfile(name, typ string) *Profile {
	return &Profile{name: name, typ: typ}
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Type returns the profile type.
func (p *Profile) Type() string { return p.typ }

// SetName changes the profile name.
func (p *Profile) SetName(name string) { p.name = name }

// Key looks up an attribute by exact name. The second result distinguishes
// an absent key from one whose value is the empty string.
func (p *Profile) Key(name string) (string, bool) {
	for _, kv := range p.keys {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// SetKey sets an attribute, overwriting an existing value in place so key
// order stays stable.
func (p *Profile) SetKey(name, value string) {
	for i := range p.keys {
		if p.keys[i].Name == name {
			p.keys[i].Value = value
			return
		}
	}
	p.keys = append(p.keys, KeyValue{Name: name, Value: value})
}

// RemoveKey deletes an attribute if present.
func (p *Profile) RemoveKey(name string) {
	for i := range p.keys {
		if p.keys[i].Name == name {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			return
		}
	}
}

// Keys returns a copy of the attributes in insertion order.
func (p *Profile) Keys() []KeyValue {
	out := make([]KeyValue, len(p.keys))
	copy(out, p.keys)
	return out
}

// BoolKey reads a boolean attribute, returning def when the key is absent or
// carries anything other than "true"/"false".
func (p *Profile) BoolKey(name string, def bool) bool {
	v, ok := p.Key(name)
	if !ok {
		return def
	}
	switch v {
	case ValueTrue:
		return true
	case ValueFalse:
		return false
	default:
		return def
	}
}

// SetBoolKey stores a boolean attribute as "true"/"false".
func (p *Profile) SetBoolKey(name string, value bool) {
	if value {
		p.SetKey(name, ValueTrue)
	} else {
		p.SetKey(name, ValueFalse)
	}
}

// IsEnabled reports the enabled flag. Profiles are enabled by default: the
// key may be missing entirely on an enabled profile.
func (p *Profile) IsEnabled() bool { return p.BoolKey(KeyEnabled, true) }

// SetEnabled sets the enabled flag.
func (p *Profile) SetEnabled(enabled bool) { p.SetBoolKey(KeyEnabled, enabled) }

// IsHidden reports the hidden flag, false by default.
func (p *Profile) IsHidden() bool { return p.BoolKey(KeyHidden, false) }

// IsProtected reports the protected flag, false by default. A protected
// profile refuses removal.
func (p *Profile) IsProtected() bool { return p.BoolKey(KeyProtected, false) }

// IsLoaded reports whether this node's sub-profile references have been
// resolved against disk.
func (p *Profile) IsLoaded() bool { return p.loaded }

// SetLoaded marks the resolution state of this node.
func (p *Profile) SetLoaded(loaded bool) { p.loaded = loaded }

// Schedule returns the attached sync schedule, or nil.
func (p *Profile) Schedule() *SyncSchedule { return p.schedule }

// SetSchedule attaches a sync schedule.
func (p *Profile) SetSchedule(s *SyncSchedule) { p.schedule = s }

// SubProfile returns the direct sub-profile with the given name, or nil.
// An empty typ matches any type.
func (p *Profile) SubProfile(name, typ string) *Profile {
	for _, sub := range p.subs {
		if sub.name == name && (typ == "" || sub.typ == typ) {
			return sub
		}
	}
	return nil
}

// SubProfileNames returns the names of direct sub-profiles of the given type,
// in insertion order.
func (p *Profile) SubProfileNames(typ string) []string {
	var names []string
	for _, sub := range p.subs {
		if sub.typ == typ {
			names = append(names, sub.name)
		}
	}
	return names
}

// SubProfiles returns the direct sub-profiles in insertion order.
func (p *Profile) SubProfiles() []*Profile {
	out := make([]*Profile, len(p.subs))
	copy(out, p.subs)
	return out
}

// AddSubProfile attaches sub as an owned child. If a child with the same
// (name, type) already exists the two are merged instead; a parent never
// holds two children with the same identity.
func (p *Profile) AddSubProfile(sub *Profile) {
	if existing := p.SubProfile(sub.name, sub.typ); existing != nil {
		existing.mergeFrom(sub)
		return
	}
	p.subs = append(p.subs, sub)
}

// AllSubProfiles returns every sub-profile node in the tree below p, at all
// depths, in depth-first order.
func (p *Profile) AllSubProfiles() []*Profile {
	var all []*Profile
	for _, sub := range p.subs {
		all = append(all, sub)
		all = append(all, sub.AllSubProfiles()...)
	}
	return all
}

// Merge merges src into the node of p's tree whose identity matches src,
// p itself included. Attributes from src overwrite, sub-profiles are merged
// by identity with new ones spliced in. src is consumed: its children are
// moved into the destination tree and the wrapper must not be used again.
// Returns false if no node in the tree matches src's identity.
func (p *Profile) Merge(src *Profile) bool {
	target := p.findNode(src.name, src.typ)
	if target == nil {
		return false
	}
	target.mergeFrom(src)
	return true
}

// Clone returns a deep copy of the profile tree.
func (p *Profile) Clone() *Profile {
	out := &Profile{
		name:   p.name,
		typ:    p.typ,
		keys:   make([]KeyValue, len(p.keys)),
		loaded: p.loaded,
	}
	copy(out.keys, p.keys)
	if p.schedule != nil {
		s := *p.schedule
		s.Days = append([]int(nil), p.schedule.Days...)
		out.schedule = &s
	}
	for _, sub := range p.subs {
		out.subs = append(out.subs, sub.Clone())
	}
	return out
}

func (p *Profile) findNode(name, typ string) *Profile {
	if p.name == name && p.typ == typ {
		return p
	}
	for _, sub := range p.subs {
		if found := sub.findNode(name, typ); found != nil {
			return found
		}
	}
	return nil
}

func (p *Profile) mergeFrom(src *Profile) {
	for _, kv := range src.keys {
		p.SetKey(kv.Name, kv.Value)
	}
	if src.schedule != nil {
		p.schedule = src.schedule
	}
	for _, sub := range src.subs {
		if existing := p.SubProfile(sub.name, sub.typ); existing != nil {
			existing.mergeFrom(sub)
		} else {
			p.subs = append(p.subs, sub)
		}
	}
	src.subs = nil
}
