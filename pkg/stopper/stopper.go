// Package stopper runs one idle instance check: list running instances,
// sample their CPU, stop the idle ones and publish a report.
package stopper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/younsl/idlestop/internal/models"
	"github.com/younsl/idlestop/pkg/formatter"
	"github.com/younsl/idlestop/pkg/utils"
)

// Defaults for Options left zero
const (
	DefaultWindow     = time.Hour
	DefaultLinkExpiry = time.Hour
	DefaultSchedule   = "Every 1 hour"
	DefaultTrigger    = "AWS Lambda via EventBridge"
)

// Result of a completed check
const (
	StatusOK          = 200
	CompletionMessage = "EC2 idle instance check complete."
)

// InstanceLister lists the instances currently running
type InstanceLister interface {
	ListRunningInstances(ctx context.Context) ([]models.InstanceInfo, bool, error)
}

// UtilizationSampler returns the average CPU of one instance over a window,
// or nil when there is no data
type UtilizationSampler interface {
	AverageCPU(ctx context.Context, instanceID string, start, end time.Time) (*models.UtilizationSample, error)
}

// InstanceStopper stops a batch of instances in one request
type InstanceStopper interface {
	StopInstances(ctx context.Context, instanceIDs []string) ([]models.StateChange, error)
}

// ReportStore persists reports and links to them
type ReportStore interface {
	Bucket() string
	PutReport(ctx context.Context, key string, body []byte) error
	PresignReport(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Notifier delivers the run summary to operators
type Notifier interface {
	Topic() string
	Publish(ctx context.Context, subject, message string) (string, error)
}

// Dependencies are the external systems a check talks to
type Dependencies struct {
	Instances InstanceLister
	Metrics   UtilizationSampler
	Stopper   InstanceStopper
	Reports   ReportStore
	Notifier  Notifier
}

// Options tune a check
type Options struct {
	Region     string
	Threshold  float64
	KeyPrefix  string
	Window     time.Duration
	LinkExpiry time.Duration
	Schedule   string
	Trigger    string
}

// Result describes the outcome of one check
type Result struct {
	StatusCode int
	Body       string
	Report     *models.Report
	// Link is set only when a report was published
	Link      *formatter.ReportLink
	MessageID string
}

// Stopper runs idle instance checks
type Stopper struct {
	deps   Dependencies
	opts   Options
	logger *logrus.Logger
	now    func() time.Time
}

// Option customizes a Stopper
type Option func(*Stopper)

// WithClock replaces the wall clock used to timestamp a run
func WithClock(now func() time.Time) Option {
	return func(s *Stopper) {
		s.now = now
	}
}

// WithLogger sets the logger used for run progress
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Stopper) {
		s.logger = logger
	}
}

// New creates a Stopper
func New(deps Dependencies, opts Options, options ...Option) *Stopper {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	if opts.LinkExpiry == 0 {
		opts.LinkExpiry = DefaultLinkExpiry
	}
	if opts.Schedule == "" {
		opts.Schedule = DefaultSchedule
	}
	if opts.Trigger == "" {
		opts.Trigger = DefaultTrigger
	}

	s := &Stopper{
		deps:   deps,
		opts:   opts,
		logger: logrus.StandardLogger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run performs one check. Stages run in order and the first failure ends
// the run with a *StageError; no stage is retried.
func (s *Stopper) Run(ctx context.Context) (*Result, error) {
	now := s.now()
	start, end := utils.ObservationWindow(now, s.opts.Window)
	report := NewReport(now, s.opts.Region)
	log := s.logger.WithFields(logrus.Fields{
		"region":    s.opts.Region,
		"threshold": s.opts.Threshold,
	})

	instances, hasMore, err := s.deps.Instances.ListRunningInstances(ctx)
	if err != nil {
		return nil, stageErr(StageList, err)
	}
	if hasMore {
		log.Debug("DescribeInstances returned more pages; only the first page is checked")
	}
	log.WithField("running", len(instances)).Info("Listed running instances")

	for _, instance := range instances {
		report.InstancesChecked++

		sample, err := s.deps.Metrics.AverageCPU(ctx, instance.InstanceID, start, end)
		if err != nil {
			return nil, stageErr(StageSample, err)
		}

		ilog := log.WithFields(logrus.Fields{
			"instance_id":   instance.InstanceID,
			"name":          instance.Name,
			"instance_type": instance.InstanceType,
		})
		if sample == nil {
			ilog.Debug("No CPU datapoints; treating instance as active")
			continue
		}
		ilog = ilog.WithField("average_cpu", sample.AverageCPU)
		if !IsIdle(sample, s.opts.Threshold) {
			ilog.Debug("Instance is active")
			continue
		}

		ilog.Info("Instance is idle")
		report.IdleInstances = append(report.IdleInstances, NewIdleInstance(sample))
	}

	result := &Result{
		StatusCode: StatusOK,
		Body:       CompletionMessage,
		Report:     report,
	}

	idleIDs := report.IdleInstanceIDs()
	if len(idleIDs) == 0 {
		log.WithField("checked", report.InstancesChecked).Info("No idle instances found. No SNS alert sent.")
		return result, nil
	}

	changes, err := s.deps.Stopper.StopInstances(ctx, idleIDs)
	if err != nil {
		return nil, stageErr(StageStop, err)
	}
	for _, change := range changes {
		log.WithFields(logrus.Fields{
			"instance_id":    change.InstanceID,
			"previous_state": change.PreviousState,
			"current_state":  change.CurrentState,
		}).Debug("Stop requested")
	}
	// Every idle instance is recorded as stopped once the request succeeds.
	report.StoppedInstances = idleIDs
	log.WithField("stopped", len(idleIDs)).Info("Stopped idle instances")

	link, err := s.publishReport(ctx, now, report)
	if err != nil {
		return nil, err
	}
	result.Link = link

	subject := formatter.NotificationSubject(now)
	body := formatter.NotificationBody(report, formatter.NotificationDetails{
		Now:          now,
		Trigger:      s.opts.Trigger,
		PresignedURL: link.URL,
		Schedule:     s.opts.Schedule,
	})
	messageID, err := s.deps.Notifier.Publish(ctx, subject, body)
	if err != nil {
		return nil, stageErr(StageNotify, err)
	}
	result.MessageID = messageID
	log.WithFields(logrus.Fields{
		"topic":      s.deps.Notifier.Topic(),
		"message_id": messageID,
	}).Info("Sent shutdown notification")

	return result, nil
}

// publishReport writes the report and returns a presigned link to it
func (s *Stopper) publishReport(ctx context.Context, now time.Time, report *models.Report) (*formatter.ReportLink, error) {
	body, err := EncodeReport(report)
	if err != nil {
		return nil, stageErr(StageEncode, err)
	}

	key := ReportKey(s.opts.KeyPrefix, now)
	if err := s.deps.Reports.PutReport(ctx, key, body); err != nil {
		return nil, stageErr(StageStore, err)
	}
	s.logger.WithFields(logrus.Fields{
		"bucket": s.deps.Reports.Bucket(),
		"key":    key,
	}).Info("Uploaded report")

	url, err := s.deps.Reports.PresignReport(ctx, key, s.opts.LinkExpiry)
	if err != nil {
		return nil, stageErr(StagePresign, err)
	}

	return &formatter.ReportLink{
		Bucket:    s.deps.Reports.Bucket(),
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.opts.LinkExpiry),
	}, nil
}
