package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type mockCloudWatchAPI struct {
	output *cloudwatch.GetMetricStatisticsOutput
	err    error
	inputs []*cloudwatch.GetMetricStatisticsInput
}

func (m *mockCloudWatchAPI) GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	m.inputs = append(m.inputs, params)
	return m.output, m.err
}

func TestAverageCPUQuery(t *testing.T) {
	end := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	start := end.Add(-time.Hour)
	mock := &mockCloudWatchAPI{output: &cloudwatch.GetMetricStatisticsOutput{}}

	if _, err := NewCloudWatchClientWithAPI(mock).AverageCPU(context.Background(), "i-1", start, end); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	input := mock.inputs[0]
	if aws.ToString(input.Namespace) != "AWS/EC2" || aws.ToString(input.MetricName) != "CPUUtilization" {
		t.Errorf("Unexpected metric %s/%s", aws.ToString(input.Namespace), aws.ToString(input.MetricName))
	}
	if len(input.Dimensions) != 1 || aws.ToString(input.Dimensions[0].Name) != "InstanceId" || aws.ToString(input.Dimensions[0].Value) != "i-1" {
		t.Errorf("Unexpected dimensions %+v", input.Dimensions)
	}
	if !input.StartTime.Equal(start) || !input.EndTime.Equal(end) {
		t.Errorf("Unexpected window %s - %s", input.StartTime, input.EndTime)
	}
	if aws.ToInt32(input.Period) != 3600 {
		t.Errorf("Expected period 3600, got %d", aws.ToInt32(input.Period))
	}
	if len(input.Statistics) != 1 || input.Statistics[0] != cwTypes.StatisticAverage {
		t.Errorf("Expected Average statistic, got %v", input.Statistics)
	}
}

func TestAverageCPUNoDatapoints(t *testing.T) {
	mock := &mockCloudWatchAPI{output: &cloudwatch.GetMetricStatisticsOutput{}}

	sample, err := NewCloudWatchClientWithAPI(mock).AverageCPU(context.Background(), "i-1", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sample != nil {
		t.Errorf("Expected no sample, got %+v", sample)
	}
}

func TestAverageCPUFirstDatapointWins(t *testing.T) {
	first := time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)
	mock := &mockCloudWatchAPI{output: &cloudwatch.GetMetricStatisticsOutput{
		Datapoints: []cwTypes.Datapoint{
			{Average: aws.Float64(42.0), Timestamp: aws.Time(first)},
			{Average: aws.Float64(1.0), Timestamp: aws.Time(first.Add(-time.Hour))},
		},
	}}

	sample, err := NewCloudWatchClientWithAPI(mock).AverageCPU(context.Background(), "i-1", first.Add(-time.Hour), first)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sample == nil {
		t.Fatalf("Expected a sample")
	}
	if sample.AverageCPU != 42.0 || !sample.Timestamp.Equal(first) || sample.InstanceID != "i-1" {
		t.Errorf("Expected first datapoint, got %+v", sample)
	}
}

func TestAverageCPUMissingAverage(t *testing.T) {
	mock := &mockCloudWatchAPI{output: &cloudwatch.GetMetricStatisticsOutput{
		Datapoints: []cwTypes.Datapoint{{Timestamp: aws.Time(time.Now())}},
	}}

	sample, err := NewCloudWatchClientWithAPI(mock).AverageCPU(context.Background(), "i-1", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sample != nil {
		t.Errorf("Expected no sample, got %+v", sample)
	}
}

func TestAverageCPUError(t *testing.T) {
	cause := errors.New("denied")
	mock := &mockCloudWatchAPI{err: cause}

	if _, err := NewCloudWatchClientWithAPI(mock).AverageCPU(context.Background(), "i-1", time.Now().Add(-time.Hour), time.Now()); !errors.Is(err, cause) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}
