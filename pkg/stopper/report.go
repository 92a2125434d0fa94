package stopper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// NewReport returns an empty report for a run at now
func NewReport(now time.Time, region string) *models.Report {
	return &models.Report{
		Date:             utils.FormatReportDate(now),
		Time:             utils.FormatReportTime(now),
		Region:           region,
		IdleInstances:    []models.IdleInstance{},
		StoppedInstances: []string{},
		EstimatedCost:    models.EstimatedCostPlaceholder,
	}
}

// ReportKey returns the object key of the report for a run at now.
// Two runs in the same second get the same key.
func ReportKey(prefix string, now time.Time) string {
	return fmt.Sprintf("%sidle-instances-%s.json", prefix, utils.FormatObjectKeyTime(now))
}

// EncodeReport serializes a report as 2-space indented JSON
func EncodeReport(report *models.Report) ([]byte, error) {
	body, err := utils.FormatJSON(report)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// DecodeReport parses a report written by EncodeReport
func DecodeReport(body []byte) (*models.Report, error) {
	var report models.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("error parsing report: %w", err)
	}
	return &report, nil
}
