package notifications

import (
	"encoding/json"
	"time"
)

type Type string

const (
	TeamInvite         Type = "teamInvite"
	DeploymentTransfer Type = "deploymentTransfer"
	VMTransfer         Type = "vmTransfer"
)

type Notification struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`

	// Content is a payload whose shape depends on Type.
	Content json.RawMessage `json:"content,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// ReadAt is nil while the notification is unread.
	ReadAt *time.Time `json:"readAt"`
}

func (n Notification) Read() bool {
	return n.ReadAt != nil
}

// Invitation is Content of TeamInvite.
type Invitation struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName,omitempty"`
	InvitationCode string `json:"invitationCode"`
}

// Transfer is Content of DeploymentTransfer and VMTransfer.
type Transfer struct {
	ResourceID string `json:"id"`
	Name       string `json:"name,omitempty"`
	From       string `json:"from,omitempty"`
	Code       string `json:"code,omitempty"`
}

// Decode Content into v.
func (n Notification) Decode(v any) error {
	return json.Unmarshal(n.Content, v)
}
