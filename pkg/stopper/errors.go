package stopper

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Stage names a step of a check
type Stage string

const (
	StageList    Stage = "list"
	StageSample  Stage = "sample"
	StageStop    Stage = "stop"
	StageEncode  Stage = "encode"
	StageStore   Stage = "store"
	StagePresign Stage = "presign"
	StageNotify  Stage = "notify"
)

// StageError reports which step of a check failed. Steps are not retried
// and nothing done by earlier steps is undone: a failure at StageStore or
// later leaves the instances stopped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// FailedStage returns the stage err was raised in, if any
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// APIErrorCode returns the AWS error code carried by err, if any
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
