package output

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/report"
)

func finding(c dtrack.Component, vulns ...dtrack.Vulnerability) report.DependencyFinding {
	f := report.DependencyFinding{Component: c, Vulnerabilities: vulns}
	for _, v := range vulns {
		sev, _ := dtrack.ParseSeverity(v.Severity)
		f.Tally.Add(sev)
	}
	return f
}

func sampleReport() report.ProjectReport {
	score := 9.8
	rep := report.ProjectReport{
		Project: dtrack.Project{
			UUID:    "123e4567-e89b-12d3-a456-426614174000",
			Name:    "webshop",
			Version: "2.4.1",
		},
		Findings: []report.DependencyFinding{
			finding(
				dtrack.Component{UUID: "c1", PURL: "pkg:npm/foo@1.0.0", Group: "com.example", Name: "foo", Version: "1.0.0"},
				dtrack.Vulnerability{VulnID: "CVE-2021-44228", Severity: "CRITICAL", CvssV3BaseScore: &score},
				dtrack.Vulnerability{VulnID: "CVE-2021-45046", Severity: "HIGH"},
			),
			finding(dtrack.Component{UUID: "c2", Group: "com.example", Name: "bar", Version: "3.1.0"}),
			finding(dtrack.Component{UUID: "c3", Name: "baz", Version: "0.9.0"},
				dtrack.Vulnerability{VulnID: "CVE-1", Severity: "LOW"},
				dtrack.Vulnerability{VulnID: "CVE-2", Severity: "LOW"},
				dtrack.Vulnerability{VulnID: "CVE-3", Severity: "MEDIUM"},
			),
		},
	}
	for _, f := range rep.Findings {
		rep.Tally.Merge(f.Tally)
	}
	return rep
}

func TestWriteProjectReport_HeaderAndFooter(t *testing.T) {
	var buf bytes.Buffer
	WriteProjectReport(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "📦 Project: webshop (v2.4.1)")
	assert.Contains(t, out, "UUID: 123e4567-e89b-12d3-a456-426614174000")
	assert.Contains(t, out, "📊 Direct Dependencies (3 root components):")
	assert.Contains(t, out, "Total Components: 3")
	assert.Contains(t, out, "🔴 Critical: 1 | 🟠 High: 1 | 🟡 Medium: 1 | 🟢 Low: 2")
}

func TestWriteProjectReport_DisplayNamePrecedence(t *testing.T) {
	var buf bytes.Buffer
	WriteProjectReport(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "1. pkg:npm/foo@1.0.0", "purl wins over group and name")
	assert.Contains(t, out, "2. com.example:bar@3.1.0 ✅", "clean dependency gets the OK marker")
	assert.Contains(t, out, "3. baz@0.9.0")
}

func TestWriteProjectReport_DetailLinesAndSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteProjectReport(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "└── Vulnerabilities: 🔴1 🟠1 (Total: 2)")
	assert.Contains(t, out, "• CVE-2021-44228 (🔴 CRITICAL) CVSS: 9.8")
	assert.Contains(t, out, "• CVE-2021-45046 (🟠 HIGH) CVSS: -")
	assert.Contains(t, out, "└── Vulnerabilities: 🟡1 🟢2 (Total: 3)")
}

func TestWriteProjectReport_OverflowTruncation(t *testing.T) {
	vulns := make([]dtrack.Vulnerability, 5)
	for i := range vulns {
		vulns[i] = dtrack.Vulnerability{VulnID: fmt.Sprintf("CVE-%d", i), Severity: "HIGH"}
	}
	rep := report.ProjectReport{
		Project:  dtrack.Project{Name: "app", Version: "1.0.0", UUID: "u"},
		Findings: []report.DependencyFinding{finding(dtrack.Component{Name: "dep", Version: "1.0.0"}, vulns...)},
	}

	var buf bytes.Buffer
	WriteProjectReport(&buf, rep)
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, "            • "), "exactly 3 detail lines")
	assert.Contains(t, out, "... and 2 more vulnerabilities")
}

func TestWriteProjectReport_NoDependencies(t *testing.T) {
	rep := report.ProjectReport{Project: dtrack.Project{Name: "empty", Version: "1.0.0", UUID: "u"}}

	var buf bytes.Buffer
	WriteProjectReport(&buf, rep)

	assert.Contains(t, buf.String(), "⚠️ Direct dependency not found")
}

func TestWriteProjectReport_FlagsFailedLookup(t *testing.T) {
	f := finding(dtrack.Component{Name: "broken", Version: "1.0.0"})
	f.FetchFailed = true
	rep := report.ProjectReport{
		Project:  dtrack.Project{Name: "app", Version: "1.0.0", UUID: "u"},
		Findings: []report.DependencyFinding{f},
	}

	var buf bytes.Buffer
	WriteProjectReport(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "broken@1.0.0 ⚠️ (vulnerability lookup failed)")
	assert.NotContains(t, out, "broken@1.0.0 ✅", "a failed lookup must not look clean")
}

func TestWriteAllProjects(t *testing.T) {
	reports := []report.ProjectReport{
		sampleReport(),
		{Project: dtrack.Project{Name: "empty", Version: "0.1.0", UUID: "u2"}},
	}

	var buf bytes.Buffer
	WriteAllProjects(&buf, reports)
	out := buf.String()

	assert.Contains(t, out, "🔍 Found 2 projects.")
	assert.Contains(t, out, "📦 Project: webshop (v2.4.1)")
	assert.Contains(t, out, "📦 Project: empty (v0.1.0)")
	assert.Contains(t, out, "✅ Listing completed.")
	assert.Less(t, strings.Index(out, "webshop"), strings.Index(out, "empty"),
		"projects render in listing order")
}

func TestWriteAllProjects_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteAllProjects(&buf, nil)
	assert.Equal(t, "⚠️ No projects found.\n", buf.String())
}

func TestWriteAllProjects_Idempotent(t *testing.T) {
	reports := []report.ProjectReport{sampleReport()}

	var first, second bytes.Buffer
	WriteAllProjects(&first, reports)
	WriteAllProjects(&second, reports)

	require.Equal(t, first.String(), second.String(), "same data renders byte-identically")
}

func TestWriteProjectList(t *testing.T) {
	projects := []dtrack.Project{
		{Name: "webshop", Version: "2.4.1", UUID: "uuid-a"},
		{Name: "legacy", UUID: "uuid-b"},
	}

	var buf bytes.Buffer
	WriteProjectList(&buf, projects)
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "webshop")
	assert.Contains(t, out, "uuid-a")
	assert.Contains(t, out, "legacy")
}
