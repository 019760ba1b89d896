package jobs

import (
	"encoding/json"
	"strings"
)

// Status of backend jobs.
//
// Older backends send "job"-prefixed spellings (e.g. "jobFinished").
// They are decoded into the same values.
type Status string

const (
	Pending    Status = "pending"
	Running    Status = "running"
	Failed     Status = "failed"
	Finished   Status = "finished"
	Terminated Status = "terminated"
)

// ParseStatus normalizes status string of jobs.
//
// Unrecognized strings are kept as they are (lowercased) and treated as non-terminal.
func ParseStatus(s string) Status {
	s = strings.ToLower(strings.TrimSpace(s))
	if t := strings.TrimPrefix(s, "job"); t != "" {
		s = t
	}
	return Status(s)
}

// Terminal reports whether a job with this status never changes its status anymore.
//
// Failed is not terminal: the backend retries failed jobs.
func (s Status) Terminal() bool {
	return s == Finished || s == Terminated
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Job is a status of an asynchronous operation in the backend.
type Job struct {
	JobID string `json:"jobId"`

	// ID is the id of the resource which the job works on.
	ID string `json:"id,omitempty"`

	// Type is a kind of operation, like "createVm" or "deleteDeployment".
	Type string `json:"type,omitempty"`

	Status    Status `json:"status"`
	LastError string `json:"lastError,omitempty"`
}

// Ref is the response of mutation requests.
//
// Mutations do not return resources itself, but the job working on the resource.
type Ref struct {
	ID    string `json:"id,omitempty"`
	JobID string `json:"jobId"`
}

// Update is a request to change a job by admins.
type Update struct {
	Status    Status `json:"status,omitempty"`
	LastError string `json:"lastError,omitempty"`
}
