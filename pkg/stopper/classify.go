package stopper

import (
	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// DefaultThreshold is the average CPU percentage below which an instance is idle
const DefaultThreshold = 15.0

// IsIdle reports whether sample is strictly below threshold.
// A nil sample means CloudWatch had no data and is never idle.
func IsIdle(sample *models.UtilizationSample, threshold float64) bool {
	return sample != nil && sample.AverageCPU < threshold
}

// NewIdleInstance builds the report entry for an idle sample
func NewIdleInstance(sample *models.UtilizationSample) models.IdleInstance {
	return models.IdleInstance{
		InstanceID: sample.InstanceID,
		AverageCPU: utils.RoundTo(sample.AverageCPU, 2),
		Timestamp:  utils.FormatDatapointTime(sample.Timestamp),
	}
}
