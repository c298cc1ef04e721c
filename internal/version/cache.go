package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	// CacheFileName is the cache file name
	CacheFileName = "version-cache.json"

	// CacheDuration is how long a check result stays fresh
	CacheDuration = 24 * time.Hour
)

// Cache is the persisted result of the last update check.
type Cache struct {
	LastCheck     time.Time `json:"last_check"`
	LatestVersion string    `json:"latest_version"`
	ReleaseURL    string    `json:"release_url"`
}

func cachePath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "kubeconf", CacheFileName), nil
}

// LoadCache reads the cached check result.
func LoadCache() (*Cache, error) {
	path, err := cachePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// SaveCache persists a check result.
func SaveCache(latestVersion, releaseURL string) error {
	path, err := cachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	cache := Cache{
		LastCheck:     time.Now(),
		LatestVersion: latestVersion,
		ReleaseURL:    releaseURL,
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ShouldCheck reports whether the cache is missing or stale.
func ShouldCheck() bool {
	cache, err := LoadCache()
	if err != nil {
		return true
	}
	return time.Since(cache.LastCheck) > CacheDuration
}

// CachedResult builds a CheckResult from a fresh cache, or nil.
func CachedResult(currentVersion string) *CheckResult {
	cache, err := LoadCache()
	if err != nil {
		return nil
	}
	if time.Since(cache.LastCheck) > CacheDuration {
		return nil
	}

	result := &CheckResult{
		CurrentVersion: currentVersion,
		LatestVersion:  cache.LatestVersion,
		ReleaseURL:     cache.ReleaseURL,
	}
	if newer, err := isNewerVersion(currentVersion, cache.LatestVersion); err == nil {
		result.UpdateAvailable = newer
	}
	return result
}
