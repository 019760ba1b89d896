package groups

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Zone      string `flag:"zone" alias:"z" metavar:"ZONE" help:"show only GPU groups in the zone"`
	Available bool   `flag:"available" help:"show only GPU groups having available GPUs"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List GPU groups.",
		Flags{},
		flarc.Args{},
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
		flags := cl.Flags()
		found, err := client.GetGPUGroups(ctx)
		if err != nil {
			return cerr.FromAPI("failed to list GPU groups", err)
		}

		ret := make([]gpu.Group, 0, len(found))
		for _, g := range found {
			if flags.Zone != "" && g.Zone != flags.Zone {
				continue
			}
			if flags.Available && g.Available <= 0 {
				continue
			}
			ret = append(ret, g)
		}
		return common.Dump(cl.Stdout(), ret)
	}
}
