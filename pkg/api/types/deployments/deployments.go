package deployments

import (
	"time"

	"github.com/opst/cloudconsole/pkg/api/types/status"
)

// Deployment is a container workload served over HTTP(S).
type Deployment struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Status  status.Status `json:"status"`
	Zone    string        `json:"zone"`
	Teams   []string      `json:"teams,omitempty"`
	OwnerID string        `json:"ownerId"`

	Image   string `json:"image"`
	URL     string `json:"url,omitempty"`
	Private bool   `json:"private"`
	Port    int    `json:"port,omitempty"`

	// PingResult is the latest health check result of URL.
	PingResult *PingResult `json:"pingResult,omitempty"`

	Env       map[string]string `json:"envs,omitempty"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}

type PingResult struct {
	StatusCode int        `json:"statusCode"`
	Error      string     `json:"error,omitempty"`
	At         *time.Time `json:"at,omitempty"`
}

// Healthy reports whether the last ping reached the deployment successfully.
func (p *PingResult) Healthy() bool {
	return p != nil && p.Error == "" && 200 <= p.StatusCode && p.StatusCode < 400
}

// Create is a request to create a Deployment.
type Create struct {
	Name    string            `json:"name"`
	Image   string            `json:"image"`
	Zone    string            `json:"zone,omitempty"`
	Private bool              `json:"private"`
	Port    int               `json:"port,omitempty"`
	Env     map[string]string `json:"envs,omitempty"`
	Teams   []string          `json:"teams,omitempty"`
}

// Update is a request to change a Deployment. Nil fields are not changed.
type Update struct {
	Name    *string           `json:"name,omitempty"`
	Image   *string           `json:"image,omitempty"`
	Private *bool             `json:"private,omitempty"`
	Port    *int              `json:"port,omitempty"`
	Env     map[string]string `json:"envs,omitempty"`
	Teams   []string          `json:"teams,omitempty"`
}
