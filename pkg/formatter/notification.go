package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// NotificationHeader is the first line of every shutdown notification
const NotificationHeader = "EC2 Cost Optimization Report - Auto-Shutdown Summary"

// NotificationSubject returns the SNS subject for a run at now
func NotificationSubject(now time.Time) string {
	return "EC2 Idle Shutdown Report - " + utils.FormatNotificationDate(now)
}

// NotificationDetails carries the run metadata that is not part of the report
type NotificationDetails struct {
	Now          time.Time
	Trigger      string
	PresignedURL string
	Schedule     string
}

// NotificationBody renders the plain-text message sent to the topic
func NotificationBody(report *models.Report, d NotificationDetails) string {
	var b strings.Builder

	b.WriteString(NotificationHeader + "\n\n")
	fmt.Fprintf(&b, "Date: %s\n", utils.FormatNotificationDate(d.Now))
	fmt.Fprintf(&b, "Region: %s\n", report.Region)
	fmt.Fprintf(&b, "Triggered By: %s\n\n", d.Trigger)

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "- Total EC2 Instances Checked: %d\n", report.InstancesChecked)
	fmt.Fprintf(&b, "- Idle Instances Identified: %d\n", len(report.IdleInstances))
	fmt.Fprintf(&b, "- Instances Stopped: %d\n", len(report.StoppedInstances))
	fmt.Fprintf(&b, "- Estimated EC2 Cost (Yesterday): %s\n\n", report.EstimatedCost)

	b.WriteString("Instance Actions:")
	for _, idle := range report.IdleInstances {
		fmt.Fprintf(&b, "\n- %s | Average CPU: %s%% | Time: %s",
			idle.InstanceID, FormatCPU(idle.AverageCPU), idle.Timestamp)
	}

	fmt.Fprintf(&b, "\n\nReport Download:\nS3 Pre-signed Link: %s", d.PresignedURL)
	fmt.Fprintf(&b, "\n\nNext Check Scheduled: %s", d.Schedule)

	return b.String()
}

// FormatCPU prints a rounded CPU percentage without trailing zeros, so 3.2
// prints as "3.2" and 5 as "5.0"
func FormatCPU(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
