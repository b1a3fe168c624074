// Package upgrade checks the installed Clever Cloud CLI against the latest
// clever-tools release published on the npm registry.
package upgrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

// RegistryBaseURL is the public npm registry endpoint.
const RegistryBaseURL = "https://registry.npmjs.org"

// CLIPackage is the npm package shipping the clever binary.
const CLIPackage = "clever-tools"

// packageVersion is the subset of the registry's version document we read.
type packageVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// UpgradeInfo holds the result of a version check.
type UpgradeInfo struct {
	Package        string `json:"package"`
	CurrentVersion string `json:"currentVersion"`
	LatestVersion  string `json:"latestVersion"`
	UpgradeAvail   bool   `json:"upgradeAvailable"`
	Error          string `json:"error,omitempty"`
}

// Client queries the npm registry.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a registry client with sensible defaults.
func NewClient() *Client {
	return &Client{
		BaseURL: RegistryBaseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LatestVersion fetches the version tagged "latest" for pkg.
func (c *Client) LatestVersion(ctx context.Context, pkg string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/latest", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(pkg))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", pkg, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching latest version of %s: %w", pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("registry returned %d for %s: %s", resp.StatusCode, pkg, strings.TrimSpace(string(body)))
	}

	var result packageVersion
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding registry response for %s: %w", pkg, err)
	}
	if result.Version == "" {
		return "", fmt.Errorf("no version found for %s", pkg)
	}
	return result.Version, nil
}

// Check compares current against the latest published version of pkg.
func Check(ctx context.Context, client *Client, pkg, current string) UpgradeInfo {
	info := UpgradeInfo{Package: pkg, CurrentVersion: current}

	latest, err := client.LatestVersion(ctx, pkg)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.LatestVersion = latest
	cmp, err := CompareVersions(latest, current)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.UpgradeAvail = cmp > 0
	return info
}

// CompareVersions compares two semantic versions, pre-releases ordered
// before their release. Returns >0 if a > b, <0 if a < b, 0 if equal.
func CompareVersions(a, b string) (int, error) {
	va, err := version.NewVersion(strings.TrimSpace(a))
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	vb, err := version.NewVersion(strings.TrimSpace(b))
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return va.Compare(vb), nil
}
