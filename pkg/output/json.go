package output

import (
	"encoding/json"

	"github.com/dtrack-tools/dtrack-report/pkg/report"
)

// GenerateJSONReport marshals the aggregated project reports to indented
// JSON.
func GenerateJSONReport(reports []report.ProjectReport) ([]byte, error) {
	return json.MarshalIndent(reports, "", "  ")
}
