package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/utils"
)

// EC2API is the part of the EC2 SDK client used by EC2Client
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// EC2Client struct for EC2 client
type EC2Client struct {
	client EC2API
}

// NewEC2Client creates a new EC2Client
func NewEC2Client(cfg aws.Config) *EC2Client {
	return NewEC2ClientWithAPI(ec2.NewFromConfig(cfg))
}

// NewEC2ClientWithAPI creates an EC2Client on top of an existing API client
func NewEC2ClientWithAPI(api EC2API) *EC2Client {
	return &EC2Client{client: api}
}

// ListRunningInstances returns the instances in the running state.
// Only the first page of DescribeInstances is read; hasMore reports whether
// the response carried a NextToken.
func (c *EC2Client) ListRunningInstances(ctx context.Context) (instances []models.InstanceInfo, hasMore bool, err error) {
	// Filter only running instances
	filter := types.Filter{
		Name:   aws.String("instance-state-name"),
		Values: []string{string(types.InstanceStateNameRunning)},
	}

	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{filter},
	}

	result, err := c.client.DescribeInstances(ctx, input)
	if err != nil {
		return nil, false, fmt.Errorf("error querying EC2 instances: %w", err)
	}

	instances = []models.InstanceInfo{}

	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			info := models.InstanceInfo{
				InstanceID:   utils.SafeDeref(instance.InstanceId),
				Name:         utils.GetName(instance.Tags),
				InstanceType: string(instance.InstanceType),
			}
			instances = append(instances, info)
		}
	}

	return instances, result.NextToken != nil && *result.NextToken != "", nil
}

// StopInstances stops all given instances with a single request and returns
// the state transitions EC2 reported. The transitions are informational; a
// successful call does not mean every instance reached the stopping state.
func (c *EC2Client) StopInstances(ctx context.Context, instanceIDs []string) ([]models.StateChange, error) {
	if len(instanceIDs) == 0 {
		return nil, nil
	}

	result, err := c.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("error stopping EC2 instances: %w", err)
	}

	changes := make([]models.StateChange, 0, len(result.StoppingInstances))
	for _, sc := range result.StoppingInstances {
		change := models.StateChange{InstanceID: utils.SafeDeref(sc.InstanceId)}
		if sc.PreviousState != nil {
			change.PreviousState = string(sc.PreviousState.Name)
		}
		if sc.CurrentState != nil {
			change.CurrentState = string(sc.CurrentState.Name)
		}
		changes = append(changes, change)
	}

	return changes, nil
}
