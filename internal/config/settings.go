// Package config loads the optional kubeconf settings file. Everything has a
// sensible default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kanzi/kubeconf/internal/fsutil"
)

const (
	// SettingsFileName is the settings file name inside the kube directory
	SettingsFileName = "kubeconf.yaml"

	// OnConflictKeepExisting never overwrites on a divergent conflict
	OnConflictKeepExisting = "keep-existing"

	// OnConflictKeepIncoming overwrites with the incoming entry
	OnConflictKeepIncoming = "keep-incoming"
)

// Settings is the tool-level configuration: where documents, profiles and
// backups live, and the default behavior of non-interactive merges.
type Settings struct {
	KubeDir     string `yaml:"kubeDir,omitempty"`
	ProfilesDir string `yaml:"profilesDir,omitempty"`
	BackupDir   string `yaml:"backupDir,omitempty"`
	OnConflict  string `yaml:"onConflict,omitempty"`
	Backup      *bool  `yaml:"backup,omitempty"`
}

// DefaultPath returns the default settings file location, ~/.kube/kubeconf.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return SettingsFileName
	}
	return filepath.Join(home, ".kube", SettingsFileName)
}

// Load reads the settings file at path (the default location when path is
// empty), fills in defaults and validates. A missing file yields pure
// defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	var s Settings
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the settings to path (the default location when path is empty).
func (s *Settings) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid settings: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o600)
}

// Exists checks whether a settings file exists at path (default location when
// empty).
func Exists(path string) bool {
	if path == "" {
		path = DefaultPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

func (s *Settings) applyDefaults() {
	if s.KubeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.KubeDir = filepath.Join(home, ".kube")
		} else {
			s.KubeDir = ".kube"
		}
	}
	if s.ProfilesDir == "" {
		s.ProfilesDir = filepath.Join(s.KubeDir, "profiles")
	}
	if s.BackupDir == "" {
		s.BackupDir = filepath.Join(s.KubeDir, "backups")
	}
	if s.OnConflict == "" {
		s.OnConflict = OnConflictKeepExisting
	}
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	if s.OnConflict != OnConflictKeepExisting && s.OnConflict != OnConflictKeepIncoming {
		return fmt.Errorf("onConflict must be %q or %q (got: %q)", OnConflictKeepExisting, OnConflictKeepIncoming, s.OnConflict)
	}
	return nil
}

// ShouldBackup reports whether merges snapshot the target first. Defaults to
// true.
func (s *Settings) ShouldBackup() bool {
	if s.Backup == nil {
		return true
	}
	return *s.Backup
}

// DefaultConfigPath returns the kubeconfig path of the default profile.
func (s *Settings) DefaultConfigPath() string {
	return filepath.Join(s.KubeDir, "config")
}
