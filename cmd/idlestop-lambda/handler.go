package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/younsl/idlestop/internal/app"
	"github.com/younsl/idlestop/pkg/stopper"
)

// Response is returned to the Lambda runtime after each invocation
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// runner performs one check
type runner interface {
	Run(ctx context.Context) (*stopper.Result, error)
}

type handler struct {
	runner runner
	logger *logrus.Logger
}

func newHandler(r runner, logger *logrus.Logger) *handler {
	return &handler{runner: r, logger: logger}
}

// Handle runs one check. The scheduled event payload is not used.
// Errors are returned to the runtime, which records a failed invocation.
func (h *handler) Handle(ctx context.Context, _ json.RawMessage) (Response, error) {
	result, err := h.runner.Run(ctx)
	if err != nil {
		app.LogFailure(h.logger, err)
		return Response{}, err
	}

	body, err := json.Marshal(result.Body)
	if err != nil {
		return Response{}, fmt.Errorf("error encoding response body: %w", err)
	}

	return Response{
		StatusCode: result.StatusCode,
		Body:       string(body),
	}, nil
}
