// Package version checks GitHub for newer releases. Checks are throttled by
// a small cache file so at most one network round-trip happens per day.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	// ReleasesURL is the API endpoint for the latest release
	ReleasesURL = "https://api.github.com/repos/kanzi/kubeconf/releases/latest"

	// CheckTimeout bounds the GitHub API call
	CheckTimeout = 2 * time.Second
)

// CheckResult is the outcome of an update check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdate queries GitHub for the latest release and compares it to
// currentVersion.
func CheckForUpdate(currentVersion string) (*CheckResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "kubeconf-version-check")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &CheckResult{
		CurrentVersion: currentVersion,
		LatestVersion:  release.TagName,
		ReleaseURL:     release.HTMLURL,
	}

	newer, err := isNewerVersion(currentVersion, release.TagName)
	if err != nil {
		// Unparseable versions: fail safe, report no update
		return result, nil
	}
	result.UpdateAvailable = newer
	return result, nil
}

func isNewerVersion(current, latest string) (bool, error) {
	current = normalizeVersion(current)
	latest = normalizeVersion(latest)

	// Never nag dev builds
	if current == "dev" {
		return false, nil
	}

	currentVer, err := semver.NewVersion(current)
	if err != nil {
		return false, fmt.Errorf("failed to parse current version %q: %w", current, err)
	}
	latestVer, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("failed to parse latest version %q: %w", latest, err)
	}
	return latestVer.GreaterThan(currentVer), nil
}

func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "dev" || v == "none" {
		return "dev"
	}
	return strings.TrimPrefix(v, "v")
}
