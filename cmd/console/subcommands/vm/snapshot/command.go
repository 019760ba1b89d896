package snapshot

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
	Remove string `flag:"rm" metavar:"SNAPSHOT_ID" help:"delete the snapshot instead of listing or creating"`
	Wait   bool   `flag:"wait" alias:"w" help:"wait until the snapshot is created or deleted"`
}

const (
	ARG_VM_ID = "VM_ID"
	ARG_NAME  = "NAME"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List, create or delete snapshots of a Virtual Machine.",
		Flags{},
		flarc.Args{
			{Name: ARG_VM_ID, Required: true, Help: "Id of the VM"},
			{Name: ARG_NAME, Required: false, Help: "name of a new snapshot. If not given, snapshots are listed"},
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
		flags := cl.Flags()
		id, err := flagtype.ID(args[ARG_VM_ID][0])
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		names := args[ARG_NAME]

		switch {
		case flags.Remove != "":
			if 0 < len(names) {
				return fmt.Errorf("%w: NAME and --rm are exclusive", flarc.ErrUsage)
			}
			ref, err := client.DeleteSnapshot(ctx, id, flags.Remove)
			if err != nil {
				return cerr.FromAPI(fmt.Sprintf("failed to delete snapshot %s", flags.Remove), err)
			}
			return wait.Follow(
				ctx, logger, client, cl.Stdout(), cl.Stderr(),
				ref, resource.KindVM, flags.Wait,
			)
		case 0 < len(names) && names[0] != "":
			ref, err := client.CreateSnapshot(ctx, id, vms.CreateSnapshot{Name: names[0]})
			if err != nil {
				return cerr.FromAPI(fmt.Sprintf("failed to create snapshot of VM %s", id), err)
			}
			if ref.ID == "" {
				ref.ID = id
			}
			return wait.Follow(
				ctx, logger, client, cl.Stdout(), cl.Stderr(),
				ref, resource.KindVM, flags.Wait,
			)
		default:
			snapshots, err := client.GetSnapshots(ctx, id)
			if err != nil {
				return cerr.FromAPI(fmt.Sprintf("failed to list snapshots of VM %s", id), err)
			}
			return common.Dump(cl.Stdout(), snapshots)
		}
	}
}
