package users

import "encoding/json"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	Admin     bool   `json:"admin"`

	Quota Quota `json:"quota"`
	Usage Usage `json:"usage"`

	PublicKeys []PublicKey `json:"publicKeys,omitempty"`
}

// DisplayName is the full name if the user has it, and username otherwise.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Quota is limits of resources the user can use.
//
// RAM and Disk are in GB.
type Quota struct {
	VMs         int `json:"vms"`
	CPU         int `json:"cpuCores"`
	RAM         int `json:"ram"`
	Disk        int `json:"diskSize"`
	Snapshots   int `json:"snapshots"`
	Deployments int `json:"deployments"`
	GPUs        int `json:"gpus"`
}

// Usage is resources the user already used. Units are same as Quota.
type Usage Quota

type PublicKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Update is a request to change a user. Nil fields are not changed.
type Update struct {
	Role       *Role       `json:"role,omitempty"`
	Quota      *Quota      `json:"quota,omitempty"`
	PublicKeys []PublicKey `json:"publicKeys,omitempty"`
}

// UserData is a cloud-init user data registered by a user.
type UserData struct {
	ID   string          `json:"id"`
	Name string          `json:"name,omitempty"`
	Data json.RawMessage `json:"data"`
}

type CreateUserData struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}
