package rm

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/cmd/console/subcommands/job/wait"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Legacy bool `flag:"legacy" help:"the VM is managed by the v1 API"`
	Wait   bool `flag:"wait" alias:"w" help:"wait until the VM is deleted"`
}

const ARG_VM_ID = "VM_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a Virtual Machine.",
		Flags{},
		flarc.Args{
			{Name: ARG_VM_ID, Required: true, Help: "Id of the VM to be deleted"},
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
		flags := cl.Flags()

		kind := resource.KindVM
		var ref apijobs.Ref
		if flags.Legacy {
			kind = resource.KindVMv1
			ref, err = client.DeleteVMV1(ctx, id)
		} else {
			ref, err = client.DeleteVM(ctx, id)
		}
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to delete VM %s", id), err)
		}
		if ref.ID == "" {
			ref.ID = id
		}

		return wait.Follow(
			ctx, logger, client, cl.Stdout(), cl.Stderr(),
			ref, kind, flags.Wait,
		)
	}
}
