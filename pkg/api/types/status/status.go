package status

import (
	"encoding/json"
	"strings"
)

// Status is the lifecycle status of a VM or a Deployment.
type Status string

const (
	Running      Status = "running"
	Stopped      Status = "stopped"
	Starting     Status = "starting"
	Stopping     Status = "stopping"
	BeingCreated Status = "beingCreated"
	BeingDeleted Status = "beingDeleted"
	Error        Status = "error"
	Unknown      Status = "unknown"
)

var known = map[string]Status{
	"running":      Running,
	"stopped":      Stopped,
	"starting":     Starting,
	"stopping":     Stopping,
	"beingcreated": BeingCreated,
	"creating":     BeingCreated,
	"beingdeleted": BeingDeleted,
	"deleting":     BeingDeleted,
	"error":        Error,
	"unknown":      Unknown,
}

// Parse status string leniently.
//
// The "resource" prefix used by some backend versions (e.g. "resourceRunning") is stripped,
// and comparison is case-insensitive. Unrecognized strings are Unknown.
func Parse(s string) Status {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "resource")
	if st, ok := known[s]; ok {
		return st
	}
	return Unknown
}

func (s Status) String() string {
	return string(s)
}

// Transitional reports whether the resource is moving between stable states.
func (s Status) Transitional() bool {
	switch s {
	case Starting, Stopping, BeingCreated, BeingDeleted:
		return true
	default:
		return false
	}
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Parse(raw)
	return nil
}
