package vms

import (
	"time"

	"github.com/opst/cloudconsole/pkg/api/types/status"
)

// VM is a virtual machine, as the v2 API returns.
type VM struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Status  status.Status `json:"status"`
	Zone    string        `json:"zone"`
	Teams   []string      `json:"teams,omitempty"`
	OwnerID string        `json:"ownerId"`

	CPU      int `json:"cpu"`
	RAM      int `json:"ram"`
	DiskSize int `json:"diskSize"`

	// GPU is the id of the GPU lease attached to this VM, if any.
	GPU string `json:"gpu,omitempty"`

	Host       string     `json:"host,omitempty"`
	ExternalIP string     `json:"externalIp,omitempty"`
	InternalIP string     `json:"internalIp,omitempty"`
	SSHKeys    []string   `json:"sshKeys,omitempty"`
	Port       int        `json:"port,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// VMv1 is a virtual machine managed by the deprecated v1 API.
type VMv1 struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Status  status.Status `json:"status"`
	Zone    string        `json:"zone"`
	Teams   []string      `json:"teams,omitempty"`
	OwnerID string        `json:"ownerId"`

	CPU      int    `json:"cpu"`
	RAM      int    `json:"ram"`
	DiskSize int    `json:"diskSize"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// Create is a request to create a VM.
//
// RAM and DiskSize are in GB.
type Create struct {
	Name     string   `json:"name"`
	Zone     string   `json:"zone,omitempty"`
	CPU      int      `json:"cpu"`
	RAM      int      `json:"ram"`
	DiskSize int      `json:"diskSize"`
	SSHKeys  []string `json:"sshKeys,omitempty"`
	Teams    []string `json:"teams,omitempty"`

	// UserData is the id of a user data (cloud-init) to be applied.
	UserData string `json:"userData,omitempty"`
}

// Update is a request to change a VM. Nil fields are not changed.
type Update struct {
	Name     *string  `json:"name,omitempty"`
	CPU      *int     `json:"cpu,omitempty"`
	RAM      *int     `json:"ram,omitempty"`
	DiskSize *int     `json:"diskSize,omitempty"`
	Teams    []string `json:"teams,omitempty"`
}

// Action to be applied to a VM.
type Action string

const (
	Start   Action = "start"
	Stop    Action = "stop"
	Restart Action = "reboot"
	Repair  Action = "repair"
)

// ParseAction returns Action for the name,
// and false if the name is not an action.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "start":
		return Start, true
	case "stop":
		return Stop, true
	case "restart", "reboot":
		return Restart, true
	case "repair":
		return Repair, true
	default:
		return "", false
	}
}

// Snapshot of a VM disk.
type Snapshot struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Status  status.Status `json:"status"`
	Created time.Time     `json:"created"`
}

type CreateSnapshot struct {
	Name string `json:"name"`
}
