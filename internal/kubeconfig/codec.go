package kubeconfig

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawDocument is the wire shape of a kubeconfig. Field order here dictates
// output order. The inline map catches unknown top-level keys so they survive
// a round-trip.
type rawDocument struct {
	APIVersion     string           `yaml:"apiVersion,omitempty"`
	Kind           string           `yaml:"kind,omitempty"`
	Preferences    map[string]any   `yaml:"preferences,omitempty"`
	Clusters       []map[string]any `yaml:"clusters"`
	Users          []map[string]any `yaml:"users"`
	Contexts       []map[string]any `yaml:"contexts"`
	CurrentContext string           `yaml:"current-context,omitempty"`
	Extra          map[string]any   `yaml:",inline"`
}

// Parse decodes a kubeconfig document from YAML (or JSON, which YAML
// subsumes) bytes. Missing top-level collections are treated as empty;
// apiVersion/kind mismatches are left for Validate to flag.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := &Document{
		APIVersion:     raw.APIVersion,
		Kind:           raw.Kind,
		Preferences:    emptyToNil(raw.Preferences),
		CurrentContext: raw.CurrentContext,
		extra:          emptyToNil(raw.Extra),
	}

	var err error
	if doc.Clusters, err = decodeEntries(raw.Clusters, NamespaceClusters); err != nil {
		return nil, err
	}
	if doc.Users, err = decodeEntries(raw.Users, NamespaceUsers); err != nil {
		return nil, err
	}
	if doc.Contexts, err = decodeEntries(raw.Contexts, NamespaceContexts); err != nil {
		return nil, err
	}

	return doc, nil
}

// ParseFile reads and parses the kubeconfig at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Serialize encodes the document back to YAML. Output is deterministic: entry
// lists keep insertion order and map keys are emitted sorted, so serializing
// the same document always yields identical bytes.
func Serialize(doc *Document) ([]byte, error) {
	raw := rawDocument{
		APIVersion:     doc.APIVersion,
		Kind:           doc.Kind,
		Preferences:    doc.Preferences,
		Clusters:       encodeEntries(doc.Clusters, NamespaceClusters),
		Users:          encodeEntries(doc.Users, NamespaceUsers),
		Contexts:       encodeEntries(doc.Contexts, NamespaceContexts),
		CurrentContext: doc.CurrentContext,
		Extra:          doc.extra,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return nil, fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeEntries(items []map[string]any, ns Namespace) (*EntryList, error) {
	list := NewEntryList()
	payloadKey := ns.payloadKey()

	for i, item := range items {
		name, ok := item["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %s[%d] has no name", ErrMalformedDocument, ns, i)
		}

		var attrs map[string]any
		switch payload := item[payloadKey].(type) {
		case nil:
		case map[string]any:
			attrs = emptyToNil(payload)
		default:
			return nil, fmt.Errorf("%w: %s %q: %s is not a mapping", ErrMalformedDocument, ns, name, payloadKey)
		}

		var extra map[string]any
		for k, v := range item {
			if k == "name" || k == payloadKey {
				continue
			}
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}

		// Duplicate names: last occurrence wins, matching kubectl's loader.
		list.Set(Entry{Name: name, Attributes: attrs, extra: extra})
	}

	return list, nil
}

func encodeEntries(list *EntryList, ns Namespace) []map[string]any {
	items := make([]map[string]any, 0, list.Len())
	payloadKey := ns.payloadKey()

	for _, name := range list.Names() {
		e, _ := list.Get(name)
		item := map[string]any{"name": e.Name}
		if e.Attributes != nil {
			item[payloadKey] = e.Attributes
		}
		for k, v := range e.extra {
			item[k] = v
		}
		items = append(items, item)
	}

	return items
}

func emptyToNil(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
