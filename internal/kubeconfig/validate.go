package kubeconfig

import "fmt"

// Severity grades a validation issue.
type Severity int

const (
	// SeverityWarning flags a deviation that does not break the document,
	// such as an unexpected apiVersion.
	SeverityWarning Severity = iota

	// SeverityError flags a structural problem, such as a context
	// referencing a cluster that does not exist.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is a single validation finding. Issues are collected, never thrown;
// an empty slice from Validate means the document is structurally sound.
type Issue struct {
	Severity  Severity
	Namespace Namespace
	Name      string
	Message   string
}

func (i Issue) String() string {
	if i.Name != "" {
		return fmt.Sprintf("%s: %s %q: %s", i.Severity, i.Namespace, i.Name, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Validate checks the document's internal consistency: every context must
// reference an existing cluster and user, and current-context, when set, must
// name an existing context. apiVersion/kind mismatches are warnings.
func (d *Document) Validate() []Issue {
	var issues []Issue

	if d.APIVersion != DefaultAPIVersion {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("apiVersion is %q, expected %q", d.APIVersion, DefaultAPIVersion),
		})
	}
	if d.Kind != DefaultKind {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("kind is %q, expected %q", d.Kind, DefaultKind),
		})
	}

	for _, name := range d.Contexts.Names() {
		ctx, _ := d.Contexts.Get(name)

		cluster := ctx.Ref("cluster")
		if cluster == "" {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Namespace: NamespaceContexts,
				Name:      name,
				Message:   "no cluster reference",
			})
		} else if !d.Clusters.Has(cluster) {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Namespace: NamespaceContexts,
				Name:      name,
				Message:   fmt.Sprintf("references unknown cluster %q", cluster),
			})
		}

		user := ctx.Ref("user")
		if user == "" {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Namespace: NamespaceContexts,
				Name:      name,
				Message:   "no user reference",
			})
		} else if !d.Users.Has(user) {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Namespace: NamespaceContexts,
				Name:      name,
				Message:   fmt.Sprintf("references unknown user %q", user),
			})
		}
	}

	if d.CurrentContext != "" && !d.Contexts.Has(d.CurrentContext) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("current-context %q does not name an existing context", d.CurrentContext),
		})
	}

	return issues
}
