package utils

import (
	"time"
)

// Layouts used in reports, object keys and notifications
const (
	ReportDateLayout       = "2006-01-02"
	ReportTimeLayout       = "15:04:05"
	DatapointLayout        = "2006-01-02 15:04:05-07:00"
	ObjectKeyLayout        = "2006-01-02_15-04-05"
	NotificationDateLayout = "02 January 2006"
)

// ObservationWindow returns the [start, end] window of the given length
// ending at now
func ObservationWindow(now time.Time, length time.Duration) (time.Time, time.Time) {
	return now.Add(-length), now
}

// FormatReportDate formats t as the report date in UTC
func FormatReportDate(t time.Time) string {
	return t.UTC().Format(ReportDateLayout)
}

// FormatReportTime formats t as the report time of day in UTC
func FormatReportTime(t time.Time) string {
	return t.UTC().Format(ReportTimeLayout)
}

// FormatDatapointTime formats a CloudWatch datapoint timestamp with an
// explicit UTC offset, e.g. "2025-04-01 12:00:00+00:00"
func FormatDatapointTime(t time.Time) string {
	return t.UTC().Format(DatapointLayout)
}

// FormatObjectKeyTime formats t to the second for use in an S3 object key
func FormatObjectKeyTime(t time.Time) string {
	return t.UTC().Format(ObjectKeyLayout)
}

// FormatNotificationDate formats t as "02 January 2006"
func FormatNotificationDate(t time.Time) string {
	return t.UTC().Format(NotificationDateLayout)
}
