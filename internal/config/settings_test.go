package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "kubeconf.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.KubeDir == "" || s.ProfilesDir == "" || s.BackupDir == "" {
		t.Errorf("expected directory defaults, got %+v", s)
	}
	if s.OnConflict != OnConflictKeepExisting {
		t.Errorf("expected default onConflict %q, got %q", OnConflictKeepExisting, s.OnConflict)
	}
	if !s.ShouldBackup() {
		t.Error("backups must default to enabled")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	content := `kubeDir: /custom/kube
onConflict: keep-incoming
backup: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.KubeDir != "/custom/kube" {
		t.Errorf("unexpected kubeDir %q", s.KubeDir)
	}
	// Unset directories derive from kubeDir.
	if s.ProfilesDir != filepath.Join("/custom/kube", "profiles") {
		t.Errorf("unexpected profilesDir %q", s.ProfilesDir)
	}
	if s.BackupDir != filepath.Join("/custom/kube", "backups") {
		t.Errorf("unexpected backupDir %q", s.BackupDir)
	}
	if s.OnConflict != OnConflictKeepIncoming {
		t.Errorf("unexpected onConflict %q", s.OnConflict)
	}
	if s.ShouldBackup() {
		t.Error("backup: false was not honored")
	}
	if s.DefaultConfigPath() != filepath.Join("/custom/kube", "config") {
		t.Errorf("unexpected default config path %q", s.DefaultConfigPath())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "{nope"},
		{name: "invalid onConflict", content: "onConflict: ask-nicely\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)

	backup := false
	s := &Settings{
		KubeDir:    "/custom/kube",
		OnConflict: OnConflictKeepIncoming,
		Backup:     &backup,
	}
	s.applyDefaults()
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.KubeDir != s.KubeDir || loaded.OnConflict != s.OnConflict {
		t.Errorf("settings changed over a round-trip: %+v", loaded)
	}
	if loaded.ShouldBackup() {
		t.Error("backup flag lost over a round-trip")
	}
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	s := &Settings{OnConflict: "bogus"}
	if err := s.Save(filepath.Join(t.TempDir(), SettingsFileName)); err == nil {
		t.Error("expected Save to reject invalid settings")
	}
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	if Exists(path) {
		t.Error("expected Exists to be false for a missing file")
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("expected Exists to be true")
	}
}
