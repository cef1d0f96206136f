package dtrack

import "fmt"

// Project is a Dependency-Track project as returned by /api/v1/project.
type Project struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Component is a single entry of a project's direct dependency graph.
type Component struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Group   string `json:"group,omitempty"`
	PURL    string `json:"purl,omitempty"`
}

// DisplayName renders the component identity for reports. A Package URL is
// the most precise identifier, so it wins; otherwise group:name@version,
// falling back to name@version for ungrouped ecosystems.
func (c Component) DisplayName() string {
	if c.PURL != "" {
		return c.PURL
	}
	name := c.Name
	if name == "" {
		name = "Unknown"
	}
	version := c.Version
	if version == "" {
		version = "?"
	}
	if c.Group != "" {
		return fmt.Sprintf("%s:%s@%s", c.Group, name, version)
	}
	return fmt.Sprintf("%s@%s", name, version)
}

// Vulnerability is one finding attached to a component. CVSS base scores are
// pointers because the API omits whichever version a source did not publish.
type Vulnerability struct {
	VulnID          string   `json:"vulnId"`
	Severity        string   `json:"severity"`
	CvssV3BaseScore *float64 `json:"cvssV3BaseScore,omitempty"`
	CvssV2BaseScore *float64 `json:"cvssV2BaseScore,omitempty"`
}

// DisplayScore prefers the CVSS v3 base score, falls back to v2, and renders
// a placeholder when neither is present.
func (v Vulnerability) DisplayScore() string {
	switch {
	case v.CvssV3BaseScore != nil:
		return trimScore(*v.CvssV3BaseScore)
	case v.CvssV2BaseScore != nil:
		return trimScore(*v.CvssV2BaseScore)
	default:
		return "-"
	}
}

func trimScore(s float64) string {
	return fmt.Sprintf("%.1f", s)
}
