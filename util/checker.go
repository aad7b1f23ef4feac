package util

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desknote/desknote/config"
	"github.com/google/go-github/v63/github"
	"golang.org/x/mod/semver"
)

const (
	githubOwner = "desknote"
	githubRepo  = "desknote"
)

// CheckForUpdatesResult holds the outcome of the update check.
type CheckForUpdatesResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
}

// CheckForUpdates asks GitHub for the latest stable release and compares it
// with config.AppVersion. A nil client uses http.DefaultClient.
// Development builds without a valid version never report an update.
func CheckForUpdates(ctx context.Context, httpClient *http.Client) (*CheckForUpdatesResult, error) {
	client := github.NewClient(httpClient)

	release, _, err := client.Repositories.GetLatestRelease(ctx, githubOwner, githubRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest GitHub release: %w", err)
	}

	current := canonicalVersion(config.AppVersion)
	latest := canonicalVersion(release.GetTagName())

	result := &CheckForUpdatesResult{
		CurrentVersion: current,
		LatestVersion:  latest,
		ReleaseURL:     release.GetHTMLURL(),
	}

	if semver.IsValid(current) && semver.IsValid(latest) && semver.Compare(latest, current) > 0 {
		result.UpdateAvailable = true
	}
	return result, nil
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
