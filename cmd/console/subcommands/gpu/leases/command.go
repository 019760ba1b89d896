package leases

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	All bool `flag:"all" alias:"a" help:"list leases of all users (admin only)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List GPU leases.",
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
		found, err := client.GetGPULeases(ctx, rest.Scope{All: cl.Flags().All})
		if err != nil {
			return cerr.FromAPI("failed to list GPU leases", err)
		}
		return common.Dump(cl.Stdout(), found)
	}
}
