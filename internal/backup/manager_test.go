package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func managerAt(t *testing.T, at time.Time) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "backups"))
	m.now = func() time.Time { return at }
	return m, dir
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 15, 30, 0, time.Local)
	m, dir := managerAt(t, at)

	source := filepath.Join(dir, "config")
	writeFile(t, source, "apiVersion: v1\n")

	handle, err := m.Snapshot(source)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if handle.Name != "config_backup_20260829_101530" {
		t.Errorf("unexpected backup name %q", handle.Name)
	}
	if !handle.CreatedAt.Equal(at) {
		t.Errorf("unexpected CreatedAt %v", handle.CreatedAt)
	}

	data, err := os.ReadFile(handle.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "apiVersion: v1\n" {
		t.Errorf("backup content differs: %q", data)
	}
}

func TestSnapshotMissingSource(t *testing.T) {
	m, dir := managerAt(t, time.Now())

	_, err := m.Snapshot(filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestSnapshotSameSecondGetsSequenceSuffix(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 15, 30, 0, time.Local)
	m, dir := managerAt(t, at)

	source := filepath.Join(dir, "config")
	writeFile(t, source, "one")

	first, err := m.Snapshot(source)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, source, "two")
	second, err := m.Snapshot(source)
	if err != nil {
		t.Fatal(err)
	}
	third, err := m.Snapshot(source)
	if err != nil {
		t.Fatal(err)
	}

	if second.Name != first.Name+"_2" {
		t.Errorf("expected %q, got %q", first.Name+"_2", second.Name)
	}
	if third.Name != first.Name+"_3" {
		t.Errorf("expected %q, got %q", first.Name+"_3", third.Name)
	}
}

func TestListNewestFirst(t *testing.T) {
	m, dir := managerAt(t, time.Time{})
	source := filepath.Join(dir, "config")

	stamps := []time.Time{
		time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local),
		time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local),
		time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local),
	}
	for i, at := range stamps {
		m.now = func() time.Time { return at }
		writeFile(t, source, fmt.Sprintf("version %d", i))
		if _, err := m.Snapshot(source); err != nil {
			t.Fatal(err)
		}
	}

	handles, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(handles))
	}
	for i := 1; i < len(handles); i++ {
		if handles[i].CreatedAt.After(handles[i-1].CreatedAt) {
			t.Errorf("backups out of order: %v before %v", handles[i-1].CreatedAt, handles[i].CreatedAt)
		}
	}
	if handles[0].Name != "config_backup_20260829_090000" {
		t.Errorf("unexpected newest backup %q", handles[0].Name)
	}
}

func TestListSameSecondOrdersBySequence(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	m, dir := managerAt(t, at)
	source := filepath.Join(dir, "config")
	writeFile(t, source, "data")

	for i := 0; i < 3; i++ {
		if _, err := m.Snapshot(source); err != nil {
			t.Fatal(err)
		}
	}

	handles, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"config_backup_20260829_100000_3",
		"config_backup_20260829_100000_2",
		"config_backup_20260829_100000",
	}
	for i, name := range want {
		if handles[i].Name != name {
			t.Errorf("handles[%d]: expected %q, got %q", i, name, handles[i].Name)
		}
	}
}

func TestListEmptyOrMissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "never-created"))
	handles, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(handles) != 0 {
		t.Errorf("expected no backups, got %v", handles)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	m, _ := managerAt(t, time.Now())
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(m.dir, "notes.txt"), "not a backup")

	handles, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(handles) != 0 {
		t.Errorf("expected foreign files to be skipped, got %v", handles)
	}
}

func TestRestore(t *testing.T) {
	at := time.Date(2026, 8, 29, 11, 0, 0, 0, time.Local)
	m, dir := managerAt(t, at)

	source := filepath.Join(dir, "config")
	writeFile(t, source, "original")

	handle, err := m.Snapshot(source)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, source, "clobbered")
	if err := m.Restore(handle.Name, source); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("expected restored content, got %q", data)
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	m, dir := managerAt(t, time.Now())
	err := m.Restore("config_backup_20260101_000000", filepath.Join(dir, "config"))
	if !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("expected ErrBackupNotFound, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	at := time.Date(2026, 8, 29, 12, 30, 0, 0, time.Local)
	m, dir := managerAt(t, at)

	source := filepath.Join(dir, "config")
	writeFile(t, source, "data")
	handle, err := m.Snapshot(source)
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := m.Resolve(handle.Name)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Path != handle.Path || !resolved.CreatedAt.Equal(at) {
		t.Errorf("unexpected handle: %+v", resolved)
	}

	if _, err := m.Resolve("no-such-backup"); !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("expected ErrBackupNotFound, got %v", err)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		wantOK  bool
		wantSeq int
	}{
		{name: "config_backup_20260829_101530", wantOK: true, wantSeq: 1},
		{name: "config_backup_20260829_101530_7", wantOK: true, wantSeq: 7},
		{name: "my_backup_file_backup_20260829_101530", wantOK: true, wantSeq: 1},
		{name: "config", wantOK: false},
		{name: "config_backup_notadate", wantOK: false},
		{name: "config_backup_20260829_101530_x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, seq, ok := parseName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && seq != tt.wantSeq {
				t.Errorf("expected seq %d, got %d", tt.wantSeq, seq)
			}
		})
	}
}
