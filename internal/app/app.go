// Package app wires configuration, logging and AWS clients into a Stopper.
package app

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/younsl/idlestop/internal/config"
	"github.com/younsl/idlestop/internal/version"
	"github.com/younsl/idlestop/pkg/aws"
	"github.com/younsl/idlestop/pkg/stopper"
)

// Trigger labels shown in notifications
const (
	TriggerLambda = stopper.DefaultTrigger
	TriggerCLI    = "idlestop CLI"
)

// Options converts the configuration into stopper options
func Options(cfg *config.Config, trigger string) stopper.Options {
	return stopper.Options{
		Region:     cfg.Region,
		Threshold:  cfg.Threshold,
		KeyPrefix:  cfg.KeyPrefix,
		Window:     stopper.DefaultWindow,
		LinkExpiry: cfg.LinkExpiry,
		Schedule:   cfg.Schedule,
		Trigger:    trigger,
	}
}

// Dependencies adapts the AWS clients to the interfaces the stopper consumes
func Dependencies(clients *aws.Clients) stopper.Dependencies {
	return stopper.Dependencies{
		Instances: clients.EC2,
		Metrics:   clients.CloudWatch,
		Stopper:   clients.EC2,
		Reports:   clients.Reports,
		Notifier:  clients.Notifier,
	}
}

// NewStopper loads the AWS config for cfg and returns a ready Stopper
func NewStopper(ctx context.Context, cfg *config.Config, trigger string, logger *logrus.Logger) (*stopper.Stopper, error) {
	awsCfg, err := aws.LoadConfig(ctx,
		aws.WithRegion(cfg.Region),
		aws.WithProfile(cfg.Profile),
		aws.WithAppID(version.AppID()),
	)
	if err != nil {
		return nil, err
	}

	clients := aws.NewClients(awsCfg, cfg.Bucket, cfg.Topic)
	return stopper.New(Dependencies(clients), Options(cfg, trigger), stopper.WithLogger(logger)), nil
}

// LogFailure records a failed run with the stage and AWS error code
func LogFailure(logger *logrus.Logger, err error) {
	entry := logger.WithError(err)
	if stage, ok := stopper.FailedStage(err); ok {
		entry = entry.WithField("stage", stage)
	}
	if code := stopper.APIErrorCode(err); code != "" {
		entry = entry.WithField("error_code", code)
	}
	entry.Error("Idle instance check failed")
}
