// Package report turns API data into an aggregated, render-ready model.
// Fetch policy lives here: the client surfaces every failure, and the
// builder decides — per the configured strictness — what becomes a hard
// error and what is carried in the report as a flagged gap.
package report

import (
	"context"
	"fmt"

	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/logger"
)

// DependencyFinding is one direct dependency together with its vulnerability
// lookup result. FetchFailed records a failed lookup; the finding then
// carries zero vulnerabilities and renderers flag it instead of presenting
// the component as clean.
type DependencyFinding struct {
	Component       dtrack.Component       `json:"component"`
	Vulnerabilities []dtrack.Vulnerability `json:"vulnerabilities"`
	Tally           dtrack.Tally           `json:"tally"`
	FetchFailed     bool                   `json:"fetchFailed,omitempty"`
}

// ProjectReport aggregates one project's direct dependencies and the
// project-wide severity tally. Findings keep the dependency order the API
// returned.
type ProjectReport struct {
	Project  dtrack.Project      `json:"project"`
	Findings []DependencyFinding `json:"findings"`
	Tally    dtrack.Tally        `json:"tally"`

	// DependenciesFailed is set when the direct-dependency listing itself
	// failed and the report was built without dependency data.
	DependenciesFailed bool `json:"dependenciesFailed,omitempty"`
}

// Builder fetches and aggregates project reports.
type Builder struct {
	Client *dtrack.Client

	// Strict turns every fetch failure into a hard error. When false the
	// original lenient behavior applies: a failed dependency listing yields
	// an empty report with a warning, and a failed vulnerability lookup is
	// recorded on the finding.
	Strict bool
}

// Build assembles the report for a single project. Dependencies are walked
// sequentially in API order, one request outstanding at a time, so the
// resulting report is deterministic for an unchanged dataset.
func (b *Builder) Build(ctx context.Context, project dtrack.Project) (ProjectReport, error) {
	rep := ProjectReport{Project: project}

	deps, err := b.Client.DirectDependencies(ctx, project.UUID)
	if err != nil {
		if b.Strict {
			return rep, err
		}
		logger.Warnf("Direct dependencies API error: %v", err)
		rep.DependenciesFailed = true
		return rep, nil
	}

	for _, dep := range deps {
		finding := DependencyFinding{Component: dep}

		vulns, err := b.Client.ComponentVulnerabilities(ctx, dep.UUID)
		if err != nil {
			if b.Strict {
				return rep, fmt.Errorf("component %s: %w", dep.DisplayName(), err)
			}
			// One broken component must not abort the rest of the report.
			logger.Debugf("vulnerability lookup failed for %s: %v", dep.DisplayName(), err)
			finding.FetchFailed = true
		}

		finding.Vulnerabilities = vulns
		for _, v := range vulns {
			sev, _ := dtrack.ParseSeverity(v.Severity)
			finding.Tally.Add(sev)
		}
		rep.Tally.Merge(finding.Tally)
		rep.Findings = append(rep.Findings, finding)
	}

	return rep, nil
}

// BuildAll assembles reports for every project, preserving the listing
// order. A failed project listing is always fatal; per-project failures
// follow the strictness policy.
func (b *Builder) BuildAll(ctx context.Context) ([]ProjectReport, error) {
	projects, err := b.Client.Projects(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]ProjectReport, 0, len(projects))
	for _, p := range projects {
		rep, err := b.Build(ctx, p)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
