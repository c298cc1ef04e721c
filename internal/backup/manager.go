// Package backup snapshots kubeconfig files before mutation and restores
// them on demand. Snapshots are immutable byte-for-byte copies named after
// the original file and a second-resolution timestamp.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kanzi/kubeconf/internal/fsutil"
)

var (
	// ErrSourceNotFound is returned when the file to snapshot does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrBackupNotFound is returned when a named backup does not exist.
	ErrBackupNotFound = errors.New("backup not found")
)

const (
	nameSeparator   = "_backup_"
	timestampLayout = "20060102_150405"
)

// Handle identifies one stored backup.
type Handle struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Size      int64
}

// Manager stores and restores backups under a single directory.
type Manager struct {
	dir string
	now func() time.Time
}

// NewManager returns a manager storing backups under dir. The directory is
// created lazily on first snapshot.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir, now: time.Now}
}

// Snapshot copies the current bytes of path into the backup directory under
// a name encoding the original filename and the current time. Two snapshots
// of the same file within the same second get distinct names via a numeric
// suffix.
func (m *Manager) Snapshot(path string) (Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Handle{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return Handle{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return Handle{}, fmt.Errorf("failed to create backup directory %s: %w", m.dir, err)
	}

	created := m.now()
	base := filepath.Base(path) + nameSeparator + created.Format(timestampLayout)
	name := base
	for seq := 2; exists(filepath.Join(m.dir, name)); seq++ {
		name = base + "_" + strconv.Itoa(seq)
	}

	dest := filepath.Join(m.dir, name)
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return Handle{}, fmt.Errorf("failed to write backup %s: %w", dest, err)
	}

	return Handle{Name: name, Path: dest, CreatedAt: created, Size: int64(len(data))}, nil
}

// List returns all backups, most recent first. Backups created within the
// same second order by descending sequence suffix.
func (m *Manager) List() ([]Handle, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory %s: %w", m.dir, err)
	}

	type sortable struct {
		Handle
		seq int
	}
	var backups []sortable

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		createdAt, seq, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, sortable{
			Handle: Handle{
				Name:      entry.Name(),
				Path:      filepath.Join(m.dir, entry.Name()),
				CreatedAt: createdAt,
				Size:      info.Size(),
			},
			seq: seq,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		if backups[i].seq != backups[j].seq {
			return backups[i].seq > backups[j].seq
		}
		return backups[i].Name < backups[j].Name
	})

	handles := make([]Handle, len(backups))
	for i, b := range backups {
		handles[i] = b.Handle
	}
	return handles, nil
}

// Resolve returns the handle for a backup name.
func (m *Manager) Resolve(name string) (Handle, error) {
	path := filepath.Join(m.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Handle{}, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return Handle{}, fmt.Errorf("failed to stat backup %s: %w", name, err)
	}
	createdAt, _, ok := parseName(name)
	if !ok {
		createdAt = info.ModTime()
	}
	return Handle{Name: name, Path: path, CreatedAt: createdAt, Size: info.Size()}, nil
}

// Restore overwrites dest with the named backup's bytes. The write is atomic
// but no backup of the pre-restore state is taken; callers wanting that
// safety net must Snapshot dest first.
func (m *Manager) Restore(name, dest string) error {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return fmt.Errorf("failed to read backup %s: %w", name, err)
	}
	return fsutil.WriteFileAtomic(dest, data, 0o600)
}

// parseName extracts the timestamp and sequence suffix from a backup name.
// Names look like config_backup_20240131_235959 or ..._235959_2.
func parseName(name string) (time.Time, int, bool) {
	idx := strings.LastIndex(name, nameSeparator)
	if idx < 0 {
		return time.Time{}, 0, false
	}
	rest := name[idx+len(nameSeparator):]

	seq := 1
	if len(rest) > len(timestampLayout) && rest[len(timestampLayout)] == '_' {
		n, err := strconv.Atoi(rest[len(timestampLayout)+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		seq = n
		rest = rest[:len(timestampLayout)]
	}

	createdAt, err := time.ParseInLocation(timestampLayout, rest, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return createdAt, seq, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
