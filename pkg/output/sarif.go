package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/report"
)

// SARIF format specification: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SarifReport represents the top-level SARIF report structure
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

// SarifRun represents a single run of the analysis tool
type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Results     []SarifResult     `json:"results"`
	Invocations []SarifInvocation `json:"invocations"`
}

// SarifTool represents the tool that performed the analysis
type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

// SarifDriver represents the driver of the tool
type SarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SarifRule `json:"rules"`
}

// SarifRule represents a rule that was evaluated during the analysis
type SarifRule struct {
	ID               string            `json:"id"`
	ShortDescription SarifMessage      `json:"shortDescription"`
	FullDescription  SarifMessage      `json:"fullDescription"`
	Help             SarifMessage      `json:"help"`
	Properties       map[string]string `json:"properties,omitempty"`
}

// SarifResult represents a result of the analysis
type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SarifMessage    `json:"message"`
	Locations []SarifLocation `json:"locations"`
}

// SarifMessage represents a message in the SARIF report
type SarifMessage struct {
	Text string `json:"text"`
}

// SarifLocation represents where a result was found
type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

// SarifPhysicalLocation points at the affected artifact
type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
}

// SarifArtifactLocation represents the location of an artifact
type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifInvocation represents an invocation of the tool
type SarifInvocation struct {
	ExecutionSuccessful bool   `json:"executionSuccessful"`
	StartTimeUtc        string `json:"startTimeUtc"`
	EndTimeUtc          string `json:"endTimeUtc"`
}

// sarifRules are the fixed rules results are filed under, one per severity
// class the platform assigns.
func sarifRules() []SarifRule {
	return []SarifRule{
		{
			ID:               "vulnerable-dependency-critical",
			ShortDescription: SarifMessage{Text: "Critical vulnerability in a direct dependency"},
			FullDescription:  SarifMessage{Text: "A direct dependency of this project carries a vulnerability rated CRITICAL."},
			Help:             SarifMessage{Text: "Upgrade or replace the affected component as soon as possible."},
		},
		{
			ID:               "vulnerable-dependency-high",
			ShortDescription: SarifMessage{Text: "High-severity vulnerability in a direct dependency"},
			FullDescription:  SarifMessage{Text: "A direct dependency of this project carries a vulnerability rated HIGH."},
			Help:             SarifMessage{Text: "Plan an upgrade of the affected component."},
		},
		{
			ID:               "vulnerable-dependency-medium",
			ShortDescription: SarifMessage{Text: "Medium-severity vulnerability in a direct dependency"},
			FullDescription:  SarifMessage{Text: "A direct dependency of this project carries a vulnerability rated MEDIUM."},
			Help:             SarifMessage{Text: "Review the finding and schedule remediation."},
		},
		{
			ID:               "vulnerable-dependency-low",
			ShortDescription: SarifMessage{Text: "Low-severity vulnerability in a direct dependency"},
			FullDescription:  SarifMessage{Text: "A direct dependency of this project carries a vulnerability rated LOW or informational."},
			Help:             SarifMessage{Text: "Review the finding; remediation is optional."},
		},
	}
}

// sarifRuleAndLevel maps a platform severity to the SARIF rule and level.
func sarifRuleAndLevel(raw string) (string, string) {
	sev, _ := dtrack.ParseSeverity(raw)
	switch sev {
	case dtrack.SeverityCritical:
		return "vulnerable-dependency-critical", "error"
	case dtrack.SeverityHigh:
		return "vulnerable-dependency-high", "error"
	case dtrack.SeverityMedium:
		return "vulnerable-dependency-medium", "warning"
	default:
		return "vulnerable-dependency-low", "note"
	}
}

// GenerateSarifReport converts the aggregated project reports to SARIF.
// Every vulnerability becomes one result; the affected component's display
// name serves as the artifact URI.
func GenerateSarifReport(reports []report.ProjectReport, toolVersion string) ([]byte, error) {
	results := make([]SarifResult, 0)
	for _, rep := range reports {
		for _, f := range rep.Findings {
			for _, v := range f.Vulnerabilities {
				ruleID, level := sarifRuleAndLevel(v.Severity)
				messageText := fmt.Sprintf("%s: %s (%s) CVSS: %s in project %s",
					f.Component.DisplayName(), v.VulnID, v.Severity, v.DisplayScore(), rep.Project.Name)

				results = append(results, SarifResult{
					RuleID:  ruleID,
					Level:   level,
					Message: SarifMessage{Text: messageText},
					Locations: []SarifLocation{
						{
							PhysicalLocation: SarifPhysicalLocation{
								ArtifactLocation: SarifArtifactLocation{
									URI: f.Component.DisplayName(),
								},
							},
						},
					},
				})
			}
		}
	}

	now := time.Now().UTC()
	sarifReport := SarifReport{
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Version: "2.1.0",
		Runs: []SarifRun{
			{
				Tool: SarifTool{
					Driver: SarifDriver{
						Name:           "dtrack-report",
						Version:        toolVersion,
						InformationURI: "https://github.com/dtrack-tools/dtrack-report",
						Rules:          sarifRules(),
					},
				},
				Results: results,
				Invocations: []SarifInvocation{
					{
						ExecutionSuccessful: true,
						StartTimeUtc:        now.Format(time.RFC3339),
						EndTimeUtc:          now.Format(time.RFC3339),
					},
				},
			},
		},
	}

	return json.MarshalIndent(sarifReport, "", "  ")
}
