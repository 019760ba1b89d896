package teams

type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	OwnerID     string   `json:"ownerId"`
	Members     []Member `json:"members,omitempty"`

	Resources Resources `json:"resources"`
}

type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Resources shared with the team.
type Resources struct {
	VMs         []string `json:"vms,omitempty"`
	Deployments []string `json:"deployments,omitempty"`
}

type Create struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Update is a request to change a team. Nil fields are not changed.
type Update struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// Join is a request to accept a team invitation.
type Join struct {
	InvitationCode string `json:"invitationCode"`
}
