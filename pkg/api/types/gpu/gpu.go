package gpu

import "time"

// Lease of GPUs in a group for a VM.
type Lease struct {
	ID         string `json:"id"`
	GPUGroupID string `json:"gpuGroupId"`
	VMID       string `json:"vmId,omitempty"`

	// QueuePosition is the position in the waiting queue. 0 means the lease is active.
	QueuePosition int `json:"queuePosition"`

	// LeaseDuration is in seconds.
	LeaseDuration int        `json:"leaseDuration"`
	ActivatedAt   *time.Time `json:"activatedAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func (l Lease) Active() bool {
	return l.ActivatedAt != nil
}

// Group of GPUs of the same model in a zone.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Zone        string `json:"zone"`
	Vendor      string `json:"vendor,omitempty"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
}

type CreateLease struct {
	GPUGroupID    string `json:"gpuGroupId"`
	VMID          string `json:"vmId,omitempty"`
	LeaseDuration int    `json:"leaseDuration"`
}
