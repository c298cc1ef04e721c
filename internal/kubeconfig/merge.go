package kubeconfig

import "fmt"

// Resolution is the outcome chosen for one divergent conflict.
type Resolution int

const (
	// KeepExisting leaves the existing entry untouched. This is the default
	// policy: nothing is ever overwritten silently.
	KeepExisting Resolution = iota

	// KeepIncoming replaces the existing entry with the incoming one.
	KeepIncoming

	// KeepBoth keeps the existing entry and inserts the incoming one under a
	// disambiguated name. Only contexts support this: renaming a cluster or
	// user would break every context referencing the old name.
	KeepBoth
)

func (r Resolution) String() string {
	switch r {
	case KeepExisting:
		return "keep-existing"
	case KeepIncoming:
		return "keep-incoming"
	case KeepBoth:
		return "keep-both"
	}
	return fmt.Sprintf("resolution(%d)", int(r))
}

// ConflictResolver decides the resolution for a divergent conflict. The
// interactive session implements this by prompting; non-interactive merges
// use Fixed.
type ConflictResolver interface {
	ResolveConflict(Conflict) (Resolution, error)
}

// Fixed returns a resolver that answers every conflict with the same
// resolution.
func Fixed(r Resolution) ConflictResolver {
	return fixedResolver(r)
}

type fixedResolver Resolution

func (f fixedResolver) ResolveConflict(Conflict) (Resolution, error) {
	return Resolution(f), nil
}

// Counts tallies the merge outcome for one namespace.
type Counts struct {
	Added     int
	Updated   int
	Skipped   int
	Unchanged int
}

// ResolvedConflict pairs a divergent conflict with the resolution applied to
// it. RenamedTo is set when the resolution was KeepBoth.
type ResolvedConflict struct {
	Conflict
	Resolution Resolution
	RenamedTo  string
}

// Report describes what a merge did. It is constructed once per merge call
// and never mutated afterwards.
type Report struct {
	Clusters Counts
	Users    Counts
	Contexts Counts

	// Conflicts holds every detected collision, identical ones included.
	Conflicts []Conflict

	// Resolved holds the divergent conflicts with their applied resolutions,
	// in detection order.
	Resolved []ResolvedConflict
}

// CountsFor returns the tally for the given namespace.
func (r *Report) CountsFor(ns Namespace) Counts {
	switch ns {
	case NamespaceClusters:
		return r.Clusters
	case NamespaceUsers:
		return r.Users
	case NamespaceContexts:
		return r.Contexts
	}
	return Counts{}
}

func (r *Report) countsFor(ns Namespace) *Counts {
	switch ns {
	case NamespaceClusters:
		return &r.Clusters
	case NamespaceUsers:
		return &r.Users
	case NamespaceContexts:
		return &r.Contexts
	}
	return nil
}

// Options configures a merge.
type Options struct {
	// Resolver decides divergent conflicts. Nil means Fixed(KeepExisting).
	Resolver ConflictResolver

	// AdoptCurrentContext makes the merged document take over the incoming
	// current-context, provided it resolves in the merged result. Off by
	// default: the existing current-context is retained.
	AdoptCurrentContext bool
}

// Merge combines the incoming document into the existing one and returns the
// merged document alongside a change report. It performs no I/O and holds no
// state between calls; dry-run is simply the caller discarding the result.
//
// Namespaces merge in clusters, users, contexts order so that context
// references can be checked against the merged clusters and users. It fails
// with ErrInvalidReference only when a context contributed by the incoming
// document still dangles after merging.
func Merge(existing, incoming *Document, opts Options) (*Document, *Report, error) {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = Fixed(KeepExisting)
	}

	// A target missing apiVersion or kind adopts the incoming values. Merging
	// two bare documents keeps the fields empty, so merge(d, d) == d holds
	// even for files without them; Validate flags the omission.
	merged := existing.Clone()
	if merged.APIVersion == "" {
		merged.APIVersion = incoming.APIVersion
	}
	if merged.Kind == "" {
		merged.Kind = incoming.Kind
	}

	report := &Report{Conflicts: Detect(existing, incoming)}
	byKey := make(map[Namespace]map[string]Conflict)
	for _, c := range report.Conflicts {
		if byKey[c.Namespace] == nil {
			byKey[c.Namespace] = make(map[string]Conflict)
		}
		byKey[c.Namespace][c.Name] = c
	}

	// Context entries taken from the incoming document; only these are
	// subject to the post-merge dangling-reference check.
	var contributed []string

	for _, ns := range Namespaces {
		target := merged.Entries(ns)
		counts := report.countsFor(ns)

		for _, name := range incoming.Entries(ns).Names() {
			entry, _ := incoming.Entries(ns).Get(name)

			conflict, collides := byKey[ns][name]
			if !collides {
				target.Set(entry)
				counts.Added++
				if ns == NamespaceContexts {
					contributed = append(contributed, name)
				}
				continue
			}

			if conflict.Classification == Identical {
				counts.Unchanged++
				continue
			}

			resolution, err := resolver.ResolveConflict(conflict)
			if err != nil {
				return nil, nil, fmt.Errorf("resolving %s: %w", conflict, err)
			}

			resolved := ResolvedConflict{Conflict: conflict, Resolution: resolution}
			switch resolution {
			case KeepExisting:
				counts.Skipped++
			case KeepIncoming:
				target.Set(entry)
				counts.Updated++
				if ns == NamespaceContexts {
					contributed = append(contributed, name)
				}
			case KeepBoth:
				if ns != NamespaceContexts {
					return nil, nil, fmt.Errorf("%w: keep-both for %s %q (only contexts can be renamed)", ErrUnsupportedResolution, ns, name)
				}
				renamed := disambiguate(target, name)
				target.Set(Entry{Name: renamed, Attributes: entry.Attributes, extra: entry.extra})
				counts.Added++
				resolved.RenamedTo = renamed
				contributed = append(contributed, renamed)
			default:
				return nil, nil, fmt.Errorf("%w: %s for %s", ErrUnsupportedResolution, resolution, conflict)
			}
			report.Resolved = append(report.Resolved, resolved)
		}
	}

	for _, name := range contributed {
		ctx, _ := merged.Contexts.Get(name)
		if cluster := ctx.Ref("cluster"); !merged.Clusters.Has(cluster) {
			return nil, nil, fmt.Errorf("context %q references unknown cluster %q: %w", name, cluster, ErrInvalidReference)
		}
		if user := ctx.Ref("user"); !merged.Users.Has(user) {
			return nil, nil, fmt.Errorf("context %q references unknown user %q: %w", name, user, ErrInvalidReference)
		}
	}

	if opts.AdoptCurrentContext && incoming.CurrentContext != "" && merged.Contexts.Has(incoming.CurrentContext) {
		merged.CurrentContext = incoming.CurrentContext
	}

	return merged, report, nil
}

// disambiguate finds a free name for a keep-both insert: name-imported,
// name-imported-2, and so on.
func disambiguate(list *EntryList, name string) string {
	candidate := name + "-imported"
	for i := 2; list.Has(candidate); i++ {
		candidate = fmt.Sprintf("%s-imported-%d", name, i)
	}
	return candidate
}
