package common

import (
	"fmt"

	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/pkg/console/poller"
)

// Mode builds poller.Mode from flags.
//
// Impersonated ids are validated and canonicalized. Empty ids are left empty.
func Mode(admin bool, legacy bool, impersonateVM string, impersonateDeployment string) (poller.Mode, error) {
	mode := poller.Mode{Admin: admin, LegacyVMs: legacy}
	if impersonateVM != "" {
		id, err := flagtype.ID(impersonateVM)
		if err != nil {
			return poller.Mode{}, fmt.Errorf("--impersonate-vm: %w", err)
		}
		mode.ImpersonateVM = id
	}
	if impersonateDeployment != "" {
		id, err := flagtype.ID(impersonateDeployment)
		if err != nil {
			return poller.Mode{}, fmt.Errorf("--impersonate-deployment: %w", err)
		}
		mode.ImpersonateDeployment = id
	}
	return mode, nil
}
