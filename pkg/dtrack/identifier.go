package dtrack

import (
	"context"
	"strings"
)

// LooksLikeUUID reports whether a command-line token should be treated as a
// project UUID rather than a project name: exactly 36 characters containing
// exactly 4 hyphens.
//
// This is a structural heuristic, not UUID validation — hyphen positions and
// hex content are not checked, so a 36-character project name with exactly 4
// hyphens is misclassified as a UUID. Known limitation, kept on purpose: the
// lookup by UUID simply misses and the caller falls back to the not-found
// path.
func LooksLikeUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

// ResolveProject turns a CLI token into a project: UUID-shaped tokens are
// fetched directly, everything else goes through the name search.
func (c *Client) ResolveProject(ctx context.Context, token string) (Project, error) {
	if LooksLikeUUID(token) {
		return c.Project(ctx, token)
	}
	return c.FindProjectByName(ctx, token)
}
