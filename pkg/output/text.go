package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/report"
)

const (
	// detailLimit caps the per-dependency vulnerability detail lines; the
	// remainder collapses into an overflow note.
	detailLimit = 3

	ruleWidth = 80
)

func heavyRule() string {
	return strings.Repeat("═", ruleWidth)
}

func lightRule() string {
	return strings.Repeat("─", ruleWidth)
}

// WriteProjectReport renders one project's report in the human-readable text
// format: header, indexed dependency lines with severity summaries and up to
// three detail lines each, and the project-wide severity tally footer.
func WriteProjectReport(w io.Writer, rep report.ProjectReport) {
	p := rep.Project
	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	version := p.Version
	if version == "" {
		version = "-"
	}

	fmt.Fprintf(w, "\n%s\n", heavyRule())
	fmt.Fprintf(w, "📦 Project: %s (v%s)\n", name, version)
	fmt.Fprintf(w, "   UUID: %s\n", p.UUID)
	fmt.Fprintf(w, "%s\n", heavyRule())

	if len(rep.Findings) == 0 {
		fmt.Fprintln(w, "   ⚠️ Direct dependency not found")
		return
	}

	fmt.Fprintf(w, "\n📊 Direct Dependencies (%d root components):\n\n", len(rep.Findings))

	for i, f := range rep.Findings {
		idx := i + 1
		name := f.Component.DisplayName()

		switch {
		case f.FetchFailed:
			fmt.Fprintf(w, "   %3d. %s ⚠️ (vulnerability lookup failed)\n", idx, name)
		case len(f.Vulnerabilities) == 0:
			fmt.Fprintf(w, "   %3d. %s ✅\n", idx, name)
		default:
			fmt.Fprintf(w, "   %3d. %s\n", idx, name)
			fmt.Fprintf(w, "        └── Vulnerabilities: %s (Total: %d)\n",
				tallySummary(f.Tally), len(f.Vulnerabilities))

			for _, v := range f.Vulnerabilities[:min(detailLimit, len(f.Vulnerabilities))] {
				id := v.VulnID
				if id == "" {
					id = "N/A"
				}
				fmt.Fprintf(w, "            • %s (%s) CVSS: %s\n",
					id, dtrack.FormatSeverity(v.Severity), v.DisplayScore())
			}
			if extra := len(f.Vulnerabilities) - detailLimit; extra > 0 {
				fmt.Fprintf(w, "            ... and %d more vulnerabilities\n", extra)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", lightRule())
	fmt.Fprintln(w, "📈 SUMMARY:")
	fmt.Fprintf(w, "   Total Components: %d\n", len(rep.Findings))
	fmt.Fprintf(w, "   Vulnerabilities: 🔴 Critical: %d | 🟠 High: %d | 🟡 Medium: %d | 🟢 Low: %d\n",
		rep.Tally.Critical, rep.Tally.High, rep.Tally.Medium, rep.Tally.Low)
}

// tallySummary builds the compact per-dependency severity string, e.g.
// "🔴2 🟠1". A dependency whose vulnerabilities are all outside the four
// actionable severities collapses to the clean marker.
func tallySummary(t dtrack.Tally) string {
	var parts []string
	if t.Critical > 0 {
		parts = append(parts, fmt.Sprintf("🔴%d", t.Critical))
	}
	if t.High > 0 {
		parts = append(parts, fmt.Sprintf("🟠%d", t.High))
	}
	if t.Medium > 0 {
		parts = append(parts, fmt.Sprintf("🟡%d", t.Medium))
	}
	if t.Low > 0 {
		parts = append(parts, fmt.Sprintf("🟢%d", t.Low))
	}
	if len(parts) == 0 {
		return "✅"
	}
	return strings.Join(parts, " ")
}

// WriteAllProjects renders every project report in order, bracketed by the
// project count header and the completion marker.
func WriteAllProjects(w io.Writer, reports []report.ProjectReport) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "⚠️ No projects found.")
		return
	}

	fmt.Fprintf(w, "\n🔍 Found %d projects.\n", len(reports))

	for _, rep := range reports {
		WriteProjectReport(w, rep)
	}

	fmt.Fprintf(w, "\n%s\n", heavyRule())
	fmt.Fprintln(w, "✅ Listing completed.")
	fmt.Fprintf(w, "%s\n\n", heavyRule())
}

// WriteProjectList prints the (name, version, UUID) table used by the
// projects subcommand and the not-found fallback listing.
func WriteProjectList(w io.Writer, projects []dtrack.Project) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tUUID")
	fmt.Fprintln(tw, "----\t-------\t----")
	for _, p := range projects {
		version := p.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, version, p.UUID)
	}
	tw.Flush()
}
