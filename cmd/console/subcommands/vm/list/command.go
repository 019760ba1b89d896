package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	All    bool   `flag:"all" alias:"a" help:"list VMs of all users (admin only)"`
	Filter string `flag:"filter" alias:"f" metavar:"TEXT" help:"show only VMs whose name contains TEXT"`
	Legacy bool   `flag:"legacy" help:"include VMs managed by the v1 API"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Virtual Machines.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
List Virtual Machines you can access, as JSON.

With --legacy, VMs of the v1 API are listed after VMs of the current API.
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.Client,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		scope := rest.Scope{All: flags.All}

		vms, err := client.GetVMs(ctx, scope)
		if err != nil {
			return cerr.FromAPI("failed to list VMs", err)
		}
		batches := [][]resource.Resource{resource.FromVMs(vms)}

		if flags.Legacy {
			legacy, err := client.GetVMsV1(ctx, scope)
			if err != nil {
				return cerr.FromAPI("failed to list VMs of v1 API", err)
			}
			batches = append(batches, resource.FromVMsV1(legacy))
		}

		found := resource.Filter(resource.Merge(batches...), flags.Filter, resource.NameOf)
		logger.Printf("%d VMs found", len(found))
		return common.Dump(cl.Stdout(), found)
	}
}
