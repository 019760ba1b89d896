package create

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
	Name     string             `flag:"name" alias:"n" metavar:"NAME" help:"name of the new VM (required)"`
	Zone     string             `flag:"zone" alias:"z" metavar:"ZONE" help:"zone to place the VM. If not set, the platform decides"`
	CPU      int                `flag:"cpu" metavar:"CORES" help:"number of CPU cores"`
	RAM      *flagtype.Quantity `flag:"ram" metavar:"SIZE" help:"memory size, like 4Gi. It is rounded up to GiB"`
	Disk     *flagtype.Quantity `flag:"disk" metavar:"SIZE" help:"disk size, like 20Gi. It is rounded up to GiB"`
	SSHKey   *flagtype.Strings  `flag:"ssh-key" metavar:"PUBKEY" help:"ssh public key to be authorized. Repeatable"`
	Team     *flagtype.Strings  `flag:"team" metavar:"TEAM_ID" help:"team to share the VM with. Repeatable"`
	UserData string             `flag:"user-data" metavar:"USER_DATA_ID" help:"id of user data (cloud-init) to be applied"`
	Wait     bool               `flag:"wait" alias:"w" help:"wait until the VM is created"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a Virtual Machine.",
		Flags{
			CPU:    2,
			RAM:    flagtype.MustParse("4Gi"),
			Disk:   flagtype.MustParse("20Gi"),
			SSHKey: &flagtype.Strings{},
			Team:   &flagtype.Strings{},
		},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a Virtual Machine.

Creation is asynchronous. This command prints the job creating the VM.
With --wait, it waits for the job to be finished and prints the job at the end.
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
		spec, err := Spec(flags)
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}

		ref, err := client.CreateVM(ctx, spec)
		if err != nil {
			return cerr.FromAPI("failed to create VM", err)
		}
		logger.Printf("VM %s is being created (job: %s)", spec.Name, ref.JobID)

		return wait.Follow(
			ctx, logger, client, cl.Stdout(), cl.Stderr(),
			ref, resource.KindVM, flags.Wait,
		)
	}
}

// Spec builds a request to create a VM from flags.
func Spec(flags Flags) (vms.Create, error) {
	if flags.Name == "" {
		return vms.Create{}, fmt.Errorf("--name is required")
	}
	if flags.CPU <= 0 {
		return vms.Create{}, fmt.Errorf("--cpu should be positive: %d", flags.CPU)
	}

	spec := vms.Create{
		Name:     flags.Name,
		Zone:     flags.Zone,
		CPU:      flags.CPU,
		UserData: flags.UserData,
	}
	if flags.RAM != nil {
		spec.RAM = flags.RAM.GiB()
	}
	if spec.RAM <= 0 {
		return vms.Create{}, fmt.Errorf("--ram should be positive")
	}
	if flags.Disk != nil {
		spec.DiskSize = flags.Disk.GiB()
	}
	if spec.DiskSize <= 0 {
		return vms.Create{}, fmt.Errorf("--disk should be positive")
	}
	if flags.SSHKey != nil && 0 < len(*flags.SSHKey) {
		spec.SSHKeys = []string(*flags.SSHKey)
	}
	if flags.Team != nil && 0 < len(*flags.Team) {
		spec.Teams = []string(*flags.Team)
	}
	return spec, nil
}
