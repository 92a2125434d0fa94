package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// loadOptions collects the settings applied when loading the AWS config
type loadOptions struct {
	region  string
	profile string
	appID   string
}

// ConfigOption customizes how the shared AWS config is loaded
type ConfigOption func(*loadOptions)

// WithRegion sets the AWS region for every client built from the config
func WithRegion(region string) ConfigOption {
	return func(o *loadOptions) {
		o.region = region
	}
}

// WithProfile selects a named profile from the shared config files
func WithProfile(profile string) ConfigOption {
	return func(o *loadOptions) {
		o.profile = profile
	}
}

// WithAppID tags SDK requests with an application id in the user agent
func WithAppID(appID string) ConfigOption {
	return func(o *loadOptions) {
		o.appID = appID
	}
}

// LoadConfig loads the AWS config shared by the EC2, CloudWatch, S3 and SNS
// clients. Credentials come from the default chain (environment, shared
// files, Lambda execution role or instance metadata).
func LoadConfig(ctx context.Context, opts ...ConfigOption) (aws.Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	configOpts := []func(*config.LoadOptions) error{
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithEC2IMDSClientEnableState(imds.ClientEnabled),
	}
	if o.region != "" {
		configOpts = append(configOpts, config.WithRegion(o.region))
	}
	if o.appID != "" {
		configOpts = append(configOpts, config.WithAppID(o.appID))
	}
	if o.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(o.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}

	return cfg, nil
}

// Clients bundles the service wrappers used by one check
type Clients struct {
	EC2        *EC2Client
	CloudWatch *CloudWatchClient
	Reports    *ReportStore
	Notifier   *Notifier
}

// NewClients builds every service wrapper from a single AWS config
func NewClients(cfg aws.Config, bucket, topic string) *Clients {
	return &Clients{
		EC2:        NewEC2Client(cfg),
		CloudWatch: NewCloudWatchClient(cfg),
		Reports:    NewReportStore(cfg, bucket),
		Notifier:   NewNotifier(cfg, topic),
	}
}
