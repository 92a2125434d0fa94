package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// CPU utilization query parameters
const (
	EC2Namespace         = "AWS/EC2"
	CPUUtilizationMetric = "CPUUtilization"
	CPUPeriodSeconds     = 3600
)

// CloudWatchAPI is the part of the CloudWatch SDK client used by CloudWatchClient
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// CloudWatchClient struct for CloudWatch client
type CloudWatchClient struct {
	client CloudWatchAPI
}

// NewCloudWatchClient creates a new CloudWatchClient
func NewCloudWatchClient(cfg aws.Config) *CloudWatchClient {
	return NewCloudWatchClientWithAPI(cloudwatch.NewFromConfig(cfg))
}

// NewCloudWatchClientWithAPI creates a CloudWatchClient on top of an existing API client
func NewCloudWatchClientWithAPI(api CloudWatchAPI) *CloudWatchClient {
	return &CloudWatchClient{client: api}
}

// AverageCPU returns the average CPU utilization of an instance between
// start and end at hourly granularity.
//
// It returns a nil sample when CloudWatch has no datapoints for the window.
// When several datapoints come back only the first one, in response order,
// is used.
func (c *CloudWatchClient) AverageCPU(ctx context.Context, instanceID string, start, end time.Time) (*models.UtilizationSample, error) {
	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(EC2Namespace),
		MetricName: aws.String(CPUUtilizationMetric),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  aws.String("InstanceId"),
				Value: aws.String(instanceID),
			},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(CPUPeriodSeconds), // 1 hour
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	}

	result, err := c.client.GetMetricStatistics(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error getting CPU utilization for %s: %w", instanceID, err)
	}

	if len(result.Datapoints) == 0 {
		return nil, nil
	}

	first := result.Datapoints[0]
	average, ok := utils.SafeDerefFloat64(first.Average)
	if !ok {
		return nil, nil
	}

	sample := &models.UtilizationSample{
		InstanceID: instanceID,
		AverageCPU: average,
	}
	if first.Timestamp != nil {
		sample.Timestamp = *first.Timestamp
	}

	return sample, nil
}
