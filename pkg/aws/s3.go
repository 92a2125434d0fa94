package aws

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportContentType is the content type of stored reports
const ReportContentType = "application/json"

// S3API is the part of the S3 SDK client used by ReportStore
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PresignAPI is the part of the S3 presign client used by ReportStore
type S3PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ReportStore writes reports to a fixed S3 bucket and hands out
// time-limited download links for them
type ReportStore struct {
	client    S3API
	presigner S3PresignAPI
	bucket    string
}

// NewReportStore creates a ReportStore for the given bucket
func NewReportStore(cfg aws.Config, bucket string) *ReportStore {
	client := s3.NewFromConfig(cfg)
	return NewReportStoreWithAPI(client, s3.NewPresignClient(client), bucket)
}

// NewReportStoreWithAPI creates a ReportStore on top of existing API clients
func NewReportStoreWithAPI(api S3API, presigner S3PresignAPI, bucket string) *ReportStore {
	return &ReportStore{
		client:    api,
		presigner: presigner,
		bucket:    bucket,
	}
}

// Bucket returns the bucket reports are written to
func (s *ReportStore) Bucket() string {
	return s.bucket
}

// PutReport writes body as a new JSON object under key.
// An existing object with the same key is overwritten.
func (s *ReportStore) PutReport(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(ReportContentType),
	})
	if err != nil {
		return fmt.Errorf("error writing report s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// PresignReport returns a GET URL for key that stays valid for expires
func (s *ReportStore) PresignReport(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("error presigning report s3://%s/%s: %w", s.bucket, key, err)
	}
	return req.URL, nil
}
