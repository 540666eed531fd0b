package output

import (
	"encoding/json"

	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	out := *report
	out.Assumptions = assumptionsFor(report)
	return json.MarshalIndent(&out, "", "  ")
}
