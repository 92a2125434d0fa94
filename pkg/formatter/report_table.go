package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// ReportLink describes where a published report can be downloaded
type ReportLink struct {
	Bucket    string
	Key       string
	URL       string
	ExpiresAt time.Time
}

// PrintReportTable prints a formatted table of the instances a run stopped
func PrintReportTable(out io.Writer, report *models.Report, link *ReportLink, scanTime time.Time, scanDuration time.Duration) {
	// kubectl 스타일 tabwriter 설정
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	// Print scan timestamp first
	fmt.Fprintf(w, "Scan time: %s (completed in %.2f seconds)\n",
		scanTime.Format("2006-01-02 15:04:05"),
		scanDuration.Seconds())
	fmt.Fprintf(w, "Region: %s (%s)\n", report.Region, utils.GetRegionDescriptiveName(report.Region))

	if len(report.IdleInstances) == 0 {
		fmt.Fprintf(w, "No idle instances found among %d running instances.\n", report.InstancesChecked)
		w.Flush()
		return
	}

	// Print header
	fmt.Fprintln(w, "INSTANCE ID\tAVG CPU\tDATAPOINT\tSTOPPED")

	stopped := make(map[string]bool, len(report.StoppedInstances))
	for _, id := range report.StoppedInstances {
		stopped[id] = true
	}

	// Print each instance
	for _, idle := range report.IdleInstances {
		fmt.Fprintf(w, "%s\t%s%%\t%s\t%s\n",
			idle.InstanceID,
			FormatCPU(idle.AverageCPU),
			idle.Timestamp,
			yesNo(stopped[idle.InstanceID]),
		)
	}

	fmt.Fprintf(w, "\nChecked: %d  Idle: %d  Stopped: %d  Estimated cost: %s\n",
		report.InstancesChecked,
		len(report.IdleInstances),
		len(report.StoppedInstances),
		report.EstimatedCost,
	)

	if link != nil {
		fmt.Fprintf(w, "Report: s3://%s/%s\n", link.Bucket, link.Key)
		fmt.Fprintf(w, "Download link (expires %s): %s\n", humanize.Time(link.ExpiresAt), link.URL)
	}

	w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
