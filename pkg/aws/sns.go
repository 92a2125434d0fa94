package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the part of the SNS SDK client used by Notifier
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier publishes messages to a fixed SNS topic
type Notifier struct {
	client   SNSAPI
	topicArn string
}

// NewNotifier creates a Notifier for the given topic
func NewNotifier(cfg aws.Config, topicArn string) *Notifier {
	return NewNotifierWithAPI(sns.NewFromConfig(cfg), topicArn)
}

// NewNotifierWithAPI creates a Notifier on top of an existing API client
func NewNotifierWithAPI(api SNSAPI, topicArn string) *Notifier {
	return &Notifier{
		client:   api,
		topicArn: topicArn,
	}
}

// Topic returns the topic ARN messages are published to
func (n *Notifier) Topic() string {
	return n.topicArn
}

// Publish sends one message to the topic and returns its message id
func (n *Notifier) Publish(ctx context.Context, subject, message string) (string, error) {
	result, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("error publishing to %s: %w", n.topicArn, err)
	}
	return aws.ToString(result.MessageId), nil
}
