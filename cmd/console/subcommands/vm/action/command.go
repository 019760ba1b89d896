package action

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/cmd/console/subcommands/job/wait"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Wait bool `flag:"wait" alias:"w" help:"wait until the action is done"`
}

const (
	ARG_VM_ID  = "VM_ID"
	ARG_ACTION = "ACTION"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Start, stop, restart or repair a Virtual Machine.",
		Flags{},
		flarc.Args{
			{Name: ARG_VM_ID, Required: true, Help: "Id of the VM"},
			{Name: ARG_ACTION, Required: true, Help: "one of start, stop, restart (or reboot) and repair"},
		},
		common.NewTask(Task()),
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
		args := cl.Args()
		id, err := flagtype.ID(args[ARG_VM_ID][0])
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		action, ok := vms.ParseAction(args[ARG_ACTION][0])
		if !ok {
			return fmt.Errorf("%w: unknown action: %s", flarc.ErrUsage, args[ARG_ACTION][0])
		}

		ref, err := client.DoVMAction(ctx, id, action)
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to %s VM %s", action, id), err)
		}
		if ref.ID == "" {
			ref.ID = id
		}

		return wait.Follow(
			ctx, logger, client, cl.Stdout(), cl.Stderr(),
			ref, resource.KindVM, cl.Flags().Wait,
		)
	}
}
