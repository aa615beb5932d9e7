package identity

import (
	"sync"

	"github.com/scribble-notes/scribble/internal/noteid"
)

type LifecycleIdentity int

// LifecycleIdentities are used to determine whether notes get an identity
// assigned when they are loaded or saved.
//
// The following identities are supported:
// - UnspecifiedLifecycleIdentity: No identity is generated.
// - AllLifecycleIdentity: All identities are generated.
// - NoteLifecycleIdentity: Note identities are generated.
const (
	UnspecifiedLifecycleIdentity LifecycleIdentity = iota
	AllLifecycleIdentity
	NoteLifecycleIdentity
)

const DefaultLifecycleIdentity = AllLifecycleIdentity

var noteIdentities = &LifecycleIdentities{
	AllLifecycleIdentity,
	NoteLifecycleIdentity,
}

type LifecycleIdentities []LifecycleIdentity

// Contains returns true if the required identity is contained in the provided identities.
func (ids LifecycleIdentities) Contains(id LifecycleIdentity) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ParseLifecycleIdentity maps a configuration value onto a lifecycle
// identity. Unknown values fall back to [DefaultLifecycleIdentity].
func ParseLifecycleIdentity(s string) LifecycleIdentity {
	switch s {
	case "none", "unspecified":
		return UnspecifiedLifecycleIdentity
	case "note":
		return NoteLifecycleIdentity
	case "all":
		return AllLifecycleIdentity
	default:
		return DefaultLifecycleIdentity
	}
}

type IdentityResolver struct {
	noteIdentity bool
	cache        *sync.Map
}

func NewResolver(required LifecycleIdentity) *IdentityResolver {
	return &IdentityResolver{
		noteIdentity: noteIdentities.Contains(required),
		cache:        &sync.Map{},
	}
}

// NoteEnabled returns true if the resolver is configured to generate note identities.
func (ir *IdentityResolver) NoteEnabled() bool {
	return ir != nil && ir.noteIdentity
}

// GetNoteID returns a note ID and a boolean indicating if it was taken
// from the existing one. A current ID that is not empty is always kept,
// even if it is not a UUID, since notes created elsewhere may use other
// schemes. Generated IDs are cached per key so that repeated calls for
// the same note agree.
func (ir *IdentityResolver) GetNoteID(key any, current string) (string, bool) {
	if current != "" {
		if key != nil {
			ir.cache.Store(key, current)
		}
		return current, true
	}

	if key != nil {
		if v, ok := ir.cache.Load(key); ok {
			return v.(string), false
		}
	}

	id := noteid.GenerateID()
	if key != nil {
		ir.cache.Store(key, id)
	}

	return id, false
}
