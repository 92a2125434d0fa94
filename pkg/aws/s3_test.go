package aws

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockS3API struct {
	err    error
	inputs []*s3.PutObjectInput
	bodies []string
}

func (m *mockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.inputs = append(m.inputs, params)
	body, _ := io.ReadAll(params.Body)
	m.bodies = append(m.bodies, string(body))
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutReport(t *testing.T) {
	mock := &mockS3API{}
	store := NewReportStoreWithAPI(mock, nil, "reports")

	if err := store.PutReport(context.Background(), "idle-instances-2025-04-15_09-30-05.json", []byte(`{"a": 1}`)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	input := mock.inputs[0]
	if aws.ToString(input.Bucket) != "reports" || aws.ToString(input.Key) != "idle-instances-2025-04-15_09-30-05.json" {
		t.Errorf("Unexpected destination s3://%s/%s", aws.ToString(input.Bucket), aws.ToString(input.Key))
	}
	if aws.ToString(input.ContentType) != "application/json" {
		t.Errorf("Expected JSON content type, got %s", aws.ToString(input.ContentType))
	}
	if mock.bodies[0] != `{"a": 1}` {
		t.Errorf("Unexpected body %s", mock.bodies[0])
	}
}

func TestPutReportError(t *testing.T) {
	cause := errors.New("NoSuchBucket")
	store := NewReportStoreWithAPI(&mockS3API{err: cause}, nil, "reports")

	err := store.PutReport(context.Background(), "k.json", []byte("{}"))
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "s3://reports/k.json") {
		t.Errorf("Expected error to name the object, got %v", err)
	}
}

func TestPresignReport(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	store := NewReportStore(cfg, "reports")

	link, err := store.PresignReport(context.Background(), "idle-instances-2025-04-15_09-30-05.json", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("Expected a valid URL, got %v", err)
	}
	if !strings.HasPrefix(u.Host, "reports.s3.") {
		t.Errorf("Expected virtual-hosted bucket host, got %s", u.Host)
	}
	if u.Path != "/idle-instances-2025-04-15_09-30-05.json" {
		t.Errorf("Expected object key as path, got %s", u.Path)
	}
	q := u.Query()
	if q.Get("X-Amz-Expires") != "3600" {
		t.Errorf("Expected 3600 second expiry, got %s", q.Get("X-Amz-Expires"))
	}
	if q.Get("X-Amz-Signature") == "" {
		t.Errorf("Expected a signature in %s", link)
	}
}
