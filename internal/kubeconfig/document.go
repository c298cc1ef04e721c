package kubeconfig

import (
	"reflect"
)

const (
	// DefaultAPIVersion is the apiVersion every kubeconfig is expected to carry
	DefaultAPIVersion = "v1"

	// DefaultKind is the kind every kubeconfig is expected to carry
	DefaultKind = "Config"
)

// Namespace identifies one of the three named-entry collections of a
// kubeconfig document. Namespaces are independent: a cluster and a user may
// share a name without colliding.
type Namespace string

const (
	NamespaceClusters Namespace = "clusters"
	NamespaceUsers    Namespace = "users"
	NamespaceContexts Namespace = "contexts"
)

// Namespaces lists the namespaces in merge order. Clusters and users come
// before contexts because a context's validity depends on both.
var Namespaces = []Namespace{NamespaceClusters, NamespaceUsers, NamespaceContexts}

// payloadKey returns the key under which a namespace's entries carry their
// payload on the wire (e.g. clusters: [{name: x, cluster: {...}}]).
func (n Namespace) payloadKey() string {
	switch n {
	case NamespaceClusters:
		return "cluster"
	case NamespaceUsers:
		return "user"
	case NamespaceContexts:
		return "context"
	}
	return ""
}

// Entry is a single named entry in one of the three namespaces. Attributes is
// the opaque payload (server URL, certificate data, context refs, ...) which
// this tool never interprets beyond equality comparison and, for contexts,
// the cluster/user/namespace string references.
//
// Entries are treated as immutable once constructed; the merge engine copies
// them between documents without cloning the attribute maps.
type Entry struct {
	Name       string
	Attributes map[string]any

	// extra holds unknown sibling keys of "name" and the payload key inside
	// the wire wrapper, preserved verbatim on round-trip.
	extra map[string]any
}

// Ref returns the named attribute as a string, or "" when absent or not a
// string. Used for the cluster/user/namespace references of context entries.
func (e Entry) Ref(key string) string {
	s, _ := e.Attributes[key].(string)
	return s
}

// Equal reports whether two entries carry identical payloads. Names are not
// compared; callers only compare entries filed under the same name.
func (e Entry) Equal(other Entry) bool {
	return reflect.DeepEqual(e.Attributes, other.Attributes) &&
		reflect.DeepEqual(e.extra, other.extra)
}

// EntryList is an ordered, name-keyed collection of entries. Order is
// insertion order and is preserved through parse, merge and serialize so
// output and prompts are reproducible across runs.
type EntryList struct {
	order   []string
	entries map[string]Entry
}

// NewEntryList returns an empty list.
func NewEntryList() *EntryList {
	return &EntryList{entries: make(map[string]Entry)}
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	return len(l.order)
}

// Names returns the entry names in insertion order.
func (l *EntryList) Names() []string {
	names := make([]string, len(l.order))
	copy(names, l.order)
	return names
}

// Get returns the entry with the given name.
func (l *EntryList) Get(name string) (Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Has reports whether an entry with the given name exists.
func (l *EntryList) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Set inserts the entry, appending it to the order when the name is new and
// replacing in place when it already exists.
func (l *EntryList) Set(e Entry) {
	if _, ok := l.entries[e.Name]; !ok {
		l.order = append(l.order, e.Name)
	}
	l.entries[e.Name] = e
}

// Delete removes the entry with the given name, if present.
func (l *EntryList) Delete(name string) {
	if _, ok := l.entries[name]; !ok {
		return
	}
	delete(l.entries, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Clone returns a copy of the list. Entries themselves are shared, matching
// their treat-as-immutable contract.
func (l *EntryList) Clone() *EntryList {
	c := &EntryList{
		order:   make([]string, len(l.order)),
		entries: make(map[string]Entry, len(l.entries)),
	}
	copy(c.order, l.order)
	for name, e := range l.entries {
		c.entries[name] = e
	}
	return c
}

// Equal reports whether two lists hold equal entries in the same order.
func (l *EntryList) Equal(other *EntryList) bool {
	if l.Len() != other.Len() {
		return false
	}
	for i, name := range l.order {
		if other.order[i] != name {
			return false
		}
		a := l.entries[name]
		b := other.entries[name]
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

// Document is a typed kubeconfig document. Unknown top-level keys are
// preserved in extra and survive serialization untouched.
type Document struct {
	APIVersion     string
	Kind           string
	Preferences    map[string]any
	Clusters       *EntryList
	Users          *EntryList
	Contexts       *EntryList
	CurrentContext string

	extra map[string]any
}

// NewDocument returns an empty document with the expected apiVersion and kind.
func NewDocument() *Document {
	return &Document{
		APIVersion: DefaultAPIVersion,
		Kind:       DefaultKind,
		Clusters:   NewEntryList(),
		Users:      NewEntryList(),
		Contexts:   NewEntryList(),
	}
}

// Entries returns the list backing the given namespace.
func (d *Document) Entries(ns Namespace) *EntryList {
	switch ns {
	case NamespaceClusters:
		return d.Clusters
	case NamespaceUsers:
		return d.Users
	case NamespaceContexts:
		return d.Contexts
	}
	return nil
}

// Clone returns a copy of the document with independent entry lists.
func (d *Document) Clone() *Document {
	c := &Document{
		APIVersion:     d.APIVersion,
		Kind:           d.Kind,
		Preferences:    d.Preferences,
		Clusters:       d.Clusters.Clone(),
		Users:          d.Users.Clone(),
		Contexts:       d.Contexts.Clone(),
		CurrentContext: d.CurrentContext,
		extra:          d.extra,
	}
	return c
}

// Equal reports whether two documents are equal in content and entry order.
func (d *Document) Equal(other *Document) bool {
	return d.APIVersion == other.APIVersion &&
		d.Kind == other.Kind &&
		d.CurrentContext == other.CurrentContext &&
		reflect.DeepEqual(d.Preferences, other.Preferences) &&
		reflect.DeepEqual(d.extra, other.extra) &&
		d.Clusters.Equal(other.Clusters) &&
		d.Users.Equal(other.Users) &&
		d.Contexts.Equal(other.Contexts)
}
