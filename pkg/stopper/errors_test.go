package stopper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestStageError(t *testing.T) {
	cause := errors.New("access denied")
	err := fmt.Errorf("wrapped: %w", stageErr(StageStop, cause))

	if err.Error() != "wrapped: stage stop: access denied" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected StageError to unwrap to its cause")
	}
	stage, ok := FailedStage(err)
	if !ok || stage != StageStop {
		t.Errorf("Expected stage stop, got %s (ok=%v)", stage, ok)
	}
	if _, ok := FailedStage(cause); ok {
		t.Errorf("Expected no stage for a plain error")
	}
}

func TestAPIErrorCode(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "not allowed"}
	err := stageErr(StageStop, fmt.Errorf("error stopping EC2 instances: %w", apiErr))

	if code := APIErrorCode(err); code != "UnauthorizedOperation" {
		t.Errorf("Expected UnauthorizedOperation, got %q", code)
	}
	if code := APIErrorCode(errors.New("plain")); code != "" {
		t.Errorf("Expected no code, got %q", code)
	}
}
