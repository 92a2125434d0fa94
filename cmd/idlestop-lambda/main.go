package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/younsl/idlestop/internal/app"
	"github.com/younsl/idlestop/internal/config"
	"github.com/younsl/idlestop/internal/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up logging")
	}

	s, err := app.NewStopper(context.Background(), cfg, app.TriggerLambda, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to set up AWS clients")
	}

	lambda.Start(newHandler(s, logger).Handle)
}
