package models

// EstimatedCostPlaceholder is written to every report. Cost is not computed.
const EstimatedCostPlaceholder = "Rs. 0.0"

// IdleInstance is a report entry for an instance classified idle
type IdleInstance struct {
	InstanceID string  `json:"instance_id"`
	AverageCPU float64 `json:"average_cpu"`
	Timestamp  string  `json:"timestamp"`
}

// Report is the record written to S3 once per run with idle instances.
// Field order is the JSON key order.
type Report struct {
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	Region           string         `json:"region"`
	InstancesChecked int            `json:"instances_checked"`
	IdleInstances    []IdleInstance `json:"idle_instances"`
	StoppedInstances []string       `json:"stopped_instances"`
	EstimatedCost    string         `json:"estimated_cost"`
}

// IdleInstanceIDs returns the ids of the idle entries in report order
func (r *Report) IdleInstanceIDs() []string {
	ids := make([]string, 0, len(r.IdleInstances))
	for _, idle := range r.IdleInstances {
		ids = append(ids, idle.InstanceID)
	}
	return ids
}
