package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/report"
)

func TestGenerateSarifReport(t *testing.T) {
	data, err := GenerateSarifReport([]report.ProjectReport{sampleReport()}, "1.2.3")
	require.NoError(t, err)

	var parsed SarifReport
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2.1.0", parsed.Version)
	require.Len(t, parsed.Runs, 1)

	run := parsed.Runs[0]
	assert.Equal(t, "dtrack-report", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Results, 5, "one result per vulnerability")

	byRule := map[string]int{}
	byLevel := map[string]int{}
	for _, r := range run.Results {
		byRule[r.RuleID]++
		byLevel[r.Level]++
	}
	assert.Equal(t, 1, byRule["vulnerable-dependency-critical"])
	assert.Equal(t, 1, byRule["vulnerable-dependency-high"])
	assert.Equal(t, 1, byRule["vulnerable-dependency-medium"])
	assert.Equal(t, 2, byRule["vulnerable-dependency-low"])
	assert.Equal(t, 2, byLevel["error"], "critical and high map to error")
	assert.Equal(t, 1, byLevel["warning"])
	assert.Equal(t, 2, byLevel["note"])

	// The affected component identifies the result location.
	assert.Equal(t, "pkg:npm/foo@1.0.0", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestGenerateSarifReport_NoFindings(t *testing.T) {
	rep := report.ProjectReport{Project: dtrack.Project{Name: "clean"}}
	data, err := GenerateSarifReport([]report.ProjectReport{rep}, "dev")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	runs := parsed["runs"].([]any)
	results := runs[0].(map[string]any)["results"]
	assert.NotNil(t, results, "results must be an empty array, not null")
}
