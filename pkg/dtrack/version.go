package dtrack

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// minServerVersion is the first Dependency-Track release that exposes the
// direct-dependencies graph endpoint this tool relies on.
const minServerVersion = "4.9.0"

type aboutResponse struct {
	Version string `json:"version"`
}

// ServerVersion fetches the Dependency-Track server version string.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var about aboutResponse
	if err := c.get(ctx, "/api/v1/version", &about); err != nil {
		return "", fmt.Errorf("fetching server version: %w", err)
	}
	return about.Version, nil
}

// CheckServerVersion verifies that the reported server version satisfies the
// minimum this tool supports. An unparseable version string is an error so
// the caller can decide how loudly to complain.
func CheckServerVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("unparseable server version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(">= " + minServerVersion)
	if err != nil {
		return fmt.Errorf("building version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("server version %s is older than %s; the direct-dependencies endpoint may be unavailable", version, minServerVersion)
	}
	return nil
}
