package models

import "time"

// InstanceInfo represents a running EC2 instance observed during a check
type InstanceInfo struct {
	InstanceID   string
	Name         string
	InstanceType string
}

// UtilizationSample is the CPU utilization CloudWatch reported for one
// instance over the observation window
type UtilizationSample struct {
	InstanceID string
	AverageCPU float64
	Timestamp  time.Time
}

// StateChange is a state transition EC2 reported for a stop request
type StateChange struct {
	InstanceID    string
	PreviousState string
	CurrentState  string
}
