package gpu

import (
	gpu_groups "github.com/opst/cloudconsole/cmd/console/subcommands/gpu/groups"
	gpu_leases "github.com/opst/cloudconsole/cmd/console/subcommands/gpu/leases"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	groups, err := gpu_groups.New()
	if err != nil {
		return nil, err
	}
	leases, err := gpu_leases.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect GPUs.",
		struct{}{},
		flarc.WithSubcommand("groups", groups),
		flarc.WithSubcommand("leases", leases),
	)
}
