package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kanzi/kubeconf/internal/profile"
	"github.com/kanzi/kubeconf/internal/ui"
)

// writeSettings writes a settings file pointing all directories into dir and
// returns its path plus the kube directory it configures.
func writeSettings(t *testing.T, dir, extra string) (string, string) {
	t.Helper()
	kubeDir := filepath.Join(dir, "kube")
	path := filepath.Join(dir, "kubeconf.yaml")
	content := "kubeDir: " + kubeDir + "\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, kubeDir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	restore := ui.SetTTYDetector(func() bool { return false })
	defer restore()

	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func TestProfileCommandsHonorSettingsFlag(t *testing.T) {
	settingsPath, kubeDir := writeSettings(t, t.TempDir(), "")

	if err := execute(t, "--settings", settingsPath, "profile", "create", "work"); err != nil {
		t.Fatalf("profile create failed: %v", err)
	}

	// The registry and the seeded config must land under the configured
	// directories, not the defaults.
	profilesDir := filepath.Join(kubeDir, "profiles")
	if _, err := os.Stat(filepath.Join(profilesDir, "profiles.yaml")); err != nil {
		t.Fatalf("registry not written under the configured kubeDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(profilesDir, "work_config")); err != nil {
		t.Fatalf("profile config not seeded under the configured kubeDir: %v", err)
	}

	if err := execute(t, "--settings", settingsPath, "profile", "switch", "work"); err != nil {
		t.Fatalf("profile switch failed: %v", err)
	}

	store := profile.NewFileStore(kubeDir, profilesDir)
	active, err := store.Active()
	if err != nil {
		t.Fatal(err)
	}
	if active.Name != "work" {
		t.Errorf("expected work active in the configured registry, got %q", active.Name)
	}
}

func TestAddBackupFlagOverridesSettings(t *testing.T) {
	settingsPath, kubeDir := writeSettings(t, t.TempDir(), "backup: false\n")

	target := filepath.Join(kubeDir, "config")
	existing := `clusters:
- cluster:
    server: https://prod.example.com
  name: prod
users: []
contexts: []
`
	if err := os.MkdirAll(kubeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte(existing), 0o600); err != nil {
		t.Fatal(err)
	}

	incomingPath := filepath.Join(kubeDir, "incoming.yaml")
	incoming := `clusters:
- cluster:
    server: https://staging.example.com
  name: staging
users: []
contexts: []
`
	if err := os.WriteFile(incomingPath, []byte(incoming), 0o600); err != nil {
		t.Fatal(err)
	}

	backupDir := filepath.Join(kubeDir, "backups")

	// With backup: false in settings, no snapshot is taken.
	if err := execute(t, "--settings", settingsPath, "add", incomingPath); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if entries, _ := os.ReadDir(backupDir); len(entries) != 0 {
		t.Fatalf("expected no backups with backup: false, found %d", len(entries))
	}

	// --backup forces a snapshot regardless of settings.
	if err := execute(t, "--settings", settingsPath, "add", incomingPath, "--backup"); err != nil {
		t.Fatalf("add --backup failed: %v", err)
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("backup directory missing after add --backup: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly 1 backup, found %d", len(entries))
	}
}

func TestBackupEnabled(t *testing.T) {
	tests := []struct {
		name      string
		defaultOn bool
		force     bool
		suppress  bool
		want      bool
	}{
		{name: "settings default on", defaultOn: true, want: true},
		{name: "settings default off", defaultOn: false, want: false},
		{name: "force overrides off default", defaultOn: false, force: true, want: true},
		{name: "suppress overrides on default", defaultOn: true, suppress: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backupEnabled(tt.defaultOn, tt.force, tt.suppress); got != tt.want {
				t.Errorf("backupEnabled(%v, %v, %v) = %v, want %v", tt.defaultOn, tt.force, tt.suppress, got, tt.want)
			}
		})
	}
}
