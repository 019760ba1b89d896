package zones

import "slices"

type Zone struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Has reports whether the zone has the capability, like "vm" or "deployment".
func (z Zone) Has(capability string) bool {
	return slices.Contains(z.Capabilities, capability)
}
