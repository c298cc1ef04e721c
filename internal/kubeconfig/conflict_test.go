package kubeconfig

import (
	"reflect"
	"testing"
)

func clusterEntry(name, server string) Entry {
	return Entry{Name: name, Attributes: map[string]any{"server": server}}
}

func userEntry(name, token string) Entry {
	return Entry{Name: name, Attributes: map[string]any{"token": token}}
}

func contextEntry(name, cluster, user string) Entry {
	return Entry{Name: name, Attributes: map[string]any{"cluster": cluster, "user": user}}
}

func TestDetect(t *testing.T) {
	existing := NewDocument()
	existing.Clusters.Set(clusterEntry("shared", "https://a.example.com"))
	existing.Clusters.Set(clusterEntry("only-existing", "https://b.example.com"))
	existing.Users.Set(userEntry("admin", "token-1"))

	incoming := NewDocument()
	incoming.Clusters.Set(clusterEntry("shared", "https://other.example.com"))
	incoming.Clusters.Set(clusterEntry("only-incoming", "https://c.example.com"))
	incoming.Users.Set(userEntry("admin", "token-1"))

	conflicts := Detect(existing, incoming)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %v", len(conflicts), conflicts)
	}

	if conflicts[0].Namespace != NamespaceClusters || conflicts[0].Name != "shared" {
		t.Errorf("unexpected first conflict: %s", conflicts[0])
	}
	if conflicts[0].Classification != Divergent {
		t.Errorf("expected shared cluster to be divergent, got %s", conflicts[0].Classification)
	}

	if conflicts[1].Namespace != NamespaceUsers || conflicts[1].Name != "admin" {
		t.Errorf("unexpected second conflict: %s", conflicts[1])
	}
	if conflicts[1].Classification != Identical {
		t.Errorf("expected admin user to be identical, got %s", conflicts[1].Classification)
	}
}

func TestDetectOrderIsDeterministic(t *testing.T) {
	existing := NewDocument()
	incoming := NewDocument()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		existing.Clusters.Set(clusterEntry(name, "https://old.example.com"))
		incoming.Clusters.Set(clusterEntry(name, "https://new.example.com"))
	}

	var first []string
	for _, c := range Detect(existing, incoming) {
		first = append(first, c.Name)
	}

	// Incoming insertion order, not lexicographic.
	if want := []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(first, want) {
		t.Errorf("expected order %v, got %v", want, first)
	}

	for i := 0; i < 10; i++ {
		var again []string
		for _, c := range Detect(existing, incoming) {
			again = append(again, c.Name)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("detection order varies between runs: %v vs %v", first, again)
		}
	}
}

func TestDetectNoConflictsForAdditions(t *testing.T) {
	existing := NewDocument()
	incoming := NewDocument()
	incoming.Clusters.Set(clusterEntry("brand-new", "https://example.com"))

	if conflicts := Detect(existing, incoming); len(conflicts) != 0 {
		t.Errorf("additions must not be conflicts, got %v", conflicts)
	}
}

func TestDetectSameNameAcrossNamespaces(t *testing.T) {
	existing := NewDocument()
	existing.Clusters.Set(clusterEntry("prod", "https://example.com"))

	incoming := NewDocument()
	incoming.Users.Set(userEntry("prod", "token"))

	if conflicts := Detect(existing, incoming); len(conflicts) != 0 {
		t.Errorf("namespaces are independent, got %v", conflicts)
	}
}

func TestDivergentOnly(t *testing.T) {
	conflicts := []Conflict{
		{Namespace: NamespaceClusters, Name: "a", Classification: Identical},
		{Namespace: NamespaceClusters, Name: "b", Classification: Divergent},
		{Namespace: NamespaceUsers, Name: "c", Classification: Divergent},
	}

	divergent := DivergentOnly(conflicts)
	if len(divergent) != 2 {
		t.Fatalf("expected 2 divergent conflicts, got %d", len(divergent))
	}
	if divergent[0].Name != "b" || divergent[1].Name != "c" {
		t.Errorf("unexpected filter result: %v", divergent)
	}
}
