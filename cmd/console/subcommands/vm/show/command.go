package show

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Legacy bool `flag:"legacy" help:"the VM is managed by the v1 API"`
}

const ARG_VM_ID = "VM_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show a Virtual Machine.",
		Flags{},
		flarc.Args{
			{Name: ARG_VM_ID, Required: true, Help: "Id of the VM to be shown"},
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
		id, err := flagtype.ID(cl.Args()[ARG_VM_ID][0])
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}

		if cl.Flags().Legacy {
			vm, err := client.GetVMV1(ctx, id)
			if err != nil {
				return cerr.FromAPI(fmt.Sprintf("failed to get VM %s", id), err)
			}
			return common.Dump(cl.Stdout(), vm)
		}

		vm, err := client.GetVM(ctx, id)
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to get VM %s", id), err)
		}
		return common.Dump(cl.Stdout(), vm)
	}
}
