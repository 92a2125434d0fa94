package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/younsl/idlestop/internal/models"
)

func TestPrintReportTable(t *testing.T) {
	report := &models.Report{
		Region:           "eu-west-1",
		InstancesChecked: 4,
		IdleInstances: []models.IdleInstance{
			{InstanceID: "i-0abc", AverageCPU: 1.25, Timestamp: "2025-04-15 08:30:00+00:00"},
		},
		StoppedInstances: []string{"i-0abc"},
		EstimatedCost:    models.EstimatedCostPlaceholder,
	}
	link := &ReportLink{
		Bucket:    "reports",
		Key:       "idle-instances-2025-04-15_09-30-05.json",
		URL:       "https://example.com/r.json",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	var out bytes.Buffer
	PrintReportTable(&out, report, link, time.Date(2025, 4, 15, 9, 30, 5, 0, time.UTC), 1500*time.Millisecond)
	got := out.String()

	for _, want := range []string{
		"Scan time: 2025-04-15 09:30:05 (completed in 1.50 seconds)",
		"Region: eu-west-1 (EU (Ireland))",
		"INSTANCE ID",
		"i-0abc",
		"1.25%",
		"yes",
		"Checked: 4  Idle: 1  Stopped: 1  Estimated cost: Rs. 0.0",
		"Report: s3://reports/idle-instances-2025-04-15_09-30-05.json",
		"from now",
		"https://example.com/r.json",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestPrintReportTableNoIdle(t *testing.T) {
	report := &models.Report{Region: "us-east-1", InstancesChecked: 2}

	var out bytes.Buffer
	PrintReportTable(&out, report, nil, time.Now(), time.Second)

	if !strings.Contains(out.String(), "No idle instances found among 2 running instances.") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "INSTANCE ID") {
		t.Errorf("Expected no table header, got:\n%s", out.String())
	}
}
