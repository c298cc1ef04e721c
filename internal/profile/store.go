// Package profile maps profile names to kubeconfig paths and tracks which
// profile is active. The merge engine never sees profiles; commands resolve a
// profile to a document path and hand the path on.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	sigyaml "sigs.k8s.io/yaml"

	"github.com/kanzi/kubeconf/internal/fsutil"
	"github.com/kanzi/kubeconf/internal/kubeconfig"
)

// DefaultName is the implicit profile backed by the standard kubeconfig
// path. It always exists and cannot be deleted.
const DefaultName = "default"

var (
	// ErrNotFound is returned when a profile name is unknown.
	ErrNotFound = errors.New("profile not found")

	// ErrExists is returned when creating a profile whose name is taken.
	ErrExists = errors.New("profile already exists")

	// ErrDefaultImmutable is returned when deleting the default profile.
	ErrDefaultImmutable = errors.New("the default profile cannot be deleted")
)

// Profile is a named, isolated kubeconfig document plus metadata.
type Profile struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ConfigPath  string    `json:"configPath"`
	CreatedAt   time.Time `json:"created,omitzero"`
}

// Store is the profile bookkeeping interface the commands consume.
type Store interface {
	Resolve(name string) (string, error)
	List() ([]Profile, error)
	Create(name, description string) (Profile, error)
	Delete(name string) error
	SetActive(name string) error
	Active() (Profile, error)
}

// registry is the on-disk shape of the profile metadata file.
type registry struct {
	Active   string                   `json:"active"`
	Profiles map[string]registryEntry `json:"profiles,omitempty"`
}

type registryEntry struct {
	Description string    `json:"description,omitempty"`
	ConfigPath  string    `json:"configPath"`
	Created     time.Time `json:"created"`
}

// FileStore keeps profile documents under a profiles directory and the
// registry in profiles.yaml next to them. The default profile resolves to
// <kube-dir>/config.
type FileStore struct {
	kubeDir      string
	profilesDir  string
	registryPath string
	now          func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at kubeDir with profile documents and
// metadata under profilesDir.
func NewFileStore(kubeDir, profilesDir string) *FileStore {
	return &FileStore{
		kubeDir:      kubeDir,
		profilesDir:  profilesDir,
		registryPath: filepath.Join(profilesDir, "profiles.yaml"),
		now:          time.Now,
	}
}

// Resolve returns the kubeconfig path for a profile name.
func (s *FileStore) Resolve(name string) (string, error) {
	if name == DefaultName {
		return s.defaultConfigPath(), nil
	}
	reg, err := s.load()
	if err != nil {
		return "", err
	}
	entry, ok := reg.Profiles[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (create the profile first with 'kubeconf profile create %s')", ErrNotFound, name, name)
	}
	if entry.ConfigPath != "" {
		return entry.ConfigPath, nil
	}
	return s.configPath(name), nil
}

// List returns all profiles, default first, the rest sorted by name.
func (s *FileStore) List() ([]Profile, error) {
	reg, err := s.load()
	if err != nil {
		return nil, err
	}

	profiles := []Profile{{
		Name:        DefaultName,
		Description: "system default",
		ConfigPath:  s.defaultConfigPath(),
	}}

	names := make([]string, 0, len(reg.Profiles))
	for name := range reg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := reg.Profiles[name]
		path := entry.ConfigPath
		if path == "" {
			path = s.configPath(name)
		}
		profiles = append(profiles, Profile{
			Name:        name,
			Description: entry.Description,
			ConfigPath:  path,
			CreatedAt:   entry.Created,
		})
	}
	return profiles, nil
}

// Create registers a new profile and seeds its kubeconfig with an empty
// document unless a file already exists at the profile path.
func (s *FileStore) Create(name, description string) (Profile, error) {
	if name == DefaultName {
		return Profile{}, fmt.Errorf("%w: %q", ErrExists, name)
	}
	reg, err := s.load()
	if err != nil {
		return Profile{}, err
	}
	if _, ok := reg.Profiles[name]; ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrExists, name)
	}

	path := s.configPath(name)
	created := s.now()
	if reg.Profiles == nil {
		reg.Profiles = make(map[string]registryEntry)
	}
	reg.Profiles[name] = registryEntry{
		Description: description,
		ConfigPath:  path,
		Created:     created,
	}
	if err := s.save(reg); err != nil {
		return Profile{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := kubeconfig.Serialize(kubeconfig.NewDocument())
		if err != nil {
			return Profile{}, err
		}
		if err := fsutil.WriteFileAtomic(path, data, 0o600); err != nil {
			return Profile{}, err
		}
	}

	return Profile{Name: name, Description: description, ConfigPath: path, CreatedAt: created}, nil
}

// Delete removes a profile, its registry entry and its kubeconfig file. The
// active pointer falls back to default when the deleted profile was active.
func (s *FileStore) Delete(name string) error {
	if name == DefaultName {
		return ErrDefaultImmutable
	}
	reg, err := s.load()
	if err != nil {
		return err
	}
	entry, ok := reg.Profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	delete(reg.Profiles, name)
	if reg.Active == name {
		reg.Active = DefaultName
	}
	if err := s.save(reg); err != nil {
		return err
	}

	path := entry.ConfigPath
	if path == "" {
		path = s.configPath(name)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile config %s: %w", path, err)
	}
	return nil
}

// SetActive switches the active profile pointer.
func (s *FileStore) SetActive(name string) error {
	reg, err := s.load()
	if err != nil {
		return err
	}
	if name != DefaultName {
		if _, ok := reg.Profiles[name]; !ok {
			return fmt.Errorf("%w: %q (create the profile first with 'kubeconf profile create %s')", ErrNotFound, name, name)
		}
	}
	reg.Active = name
	return s.save(reg)
}

// Active returns the active profile. A registry pointing at a profile that no
// longer exists falls back to default.
func (s *FileStore) Active() (Profile, error) {
	reg, err := s.load()
	if err != nil {
		return Profile{}, err
	}
	name := reg.Active
	if name == "" {
		name = DefaultName
	}
	if name == DefaultName {
		return Profile{
			Name:        DefaultName,
			Description: "system default",
			ConfigPath:  s.defaultConfigPath(),
		}, nil
	}
	entry, ok := reg.Profiles[name]
	if !ok {
		return Profile{
			Name:        DefaultName,
			Description: "system default",
			ConfigPath:  s.defaultConfigPath(),
		}, nil
	}
	path := entry.ConfigPath
	if path == "" {
		path = s.configPath(name)
	}
	return Profile{Name: name, Description: entry.Description, ConfigPath: path, CreatedAt: entry.Created}, nil
}

func (s *FileStore) defaultConfigPath() string {
	return filepath.Join(s.kubeDir, "config")
}

func (s *FileStore) configPath(name string) string {
	return filepath.Join(s.profilesDir, name+"_config")
}

func (s *FileStore) load() (*registry, error) {
	data, err := os.ReadFile(s.registryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &registry{Active: DefaultName}, nil
		}
		return nil, fmt.Errorf("failed to read profile registry %s: %w", s.registryPath, err)
	}
	var reg registry
	if err := sigyaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse profile registry %s: %w", s.registryPath, err)
	}
	if reg.Active == "" {
		reg.Active = DefaultName
	}
	return &reg, nil
}

func (s *FileStore) save(reg *registry) error {
	data, err := sigyaml.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal profile registry: %w", err)
	}
	return fsutil.WriteFileAtomic(s.registryPath, data, 0o600)
}
