package aws

import (
	"context"
	"path/filepath"
	"testing"
)

func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

func TestLoadConfig(t *testing.T) {
	isolateSharedConfig(t)

	cfg, err := LoadConfig(context.Background(), WithRegion("ap-northeast-2"), WithAppID("idlestop/test"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Region != "ap-northeast-2" {
		t.Errorf("Expected region ap-northeast-2, got %s", cfg.Region)
	}
	if cfg.AppID != "idlestop/test" {
		t.Errorf("Expected app id idlestop/test, got %s", cfg.AppID)
	}

	clients := NewClients(cfg, "reports", "arn:aws:sns:ap-northeast-2:123456789012:alerts")
	if clients.Reports.Bucket() != "reports" {
		t.Errorf("Expected bucket reports, got %s", clients.Reports.Bucket())
	}
	if clients.Notifier.Topic() != "arn:aws:sns:ap-northeast-2:123456789012:alerts" {
		t.Errorf("Unexpected topic %s", clients.Notifier.Topic())
	}
	if clients.EC2 == nil || clients.CloudWatch == nil {
		t.Errorf("Expected EC2 and CloudWatch clients")
	}
}

func TestLoadConfigMissingProfile(t *testing.T) {
	isolateSharedConfig(t)

	if _, err := LoadConfig(context.Background(), WithProfile("does-not-exist")); err == nil {
		t.Errorf("Expected an error for a missing profile")
	}
}
