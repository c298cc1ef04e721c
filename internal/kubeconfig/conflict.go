package kubeconfig

import "fmt"

// Classification says whether two same-name entries carry the same payload.
type Classification int

const (
	// Identical entries need no resolution; the merge leaves the existing
	// entry in place and counts it unchanged.
	Identical Classification = iota

	// Divergent entries share a name but differ in payload and must be
	// resolved by policy.
	Divergent
)

func (c Classification) String() string {
	if c == Divergent {
		return "divergent"
	}
	return "identical"
}

// Conflict is a name collision between the existing and incoming document in
// one namespace. Conflicts are data, not errors: identical ones are skipped
// silently and divergent ones are resolved by policy. They are computed fresh
// per merge and never persisted.
type Conflict struct {
	Namespace      Namespace
	Name           string
	Existing       Entry
	Incoming       Entry
	Classification Classification
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s %q (%s)", c.Namespace, c.Name, c.Classification)
}

// Detect computes all name collisions between the two documents. The result
// is deterministic: namespaces in clusters, users, contexts order, names in
// the incoming document's insertion order. Names present only in incoming are
// additions, not conflicts, and do not appear here.
func Detect(existing, incoming *Document) []Conflict {
	var conflicts []Conflict

	for _, ns := range Namespaces {
		have := existing.Entries(ns)
		want := incoming.Entries(ns)

		for _, name := range want.Names() {
			current, ok := have.Get(name)
			if !ok {
				continue
			}
			proposed, _ := want.Get(name)

			classification := Divergent
			if current.Equal(proposed) {
				classification = Identical
			}

			conflicts = append(conflicts, Conflict{
				Namespace:      ns,
				Name:           name,
				Existing:       current,
				Incoming:       proposed,
				Classification: classification,
			})
		}
	}

	return conflicts
}

// DivergentOnly filters a conflict list down to the divergent ones.
func DivergentOnly(conflicts []Conflict) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if c.Classification == Divergent {
			out = append(out, c)
		}
	}
	return out
}
