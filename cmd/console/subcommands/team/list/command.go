package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	All    bool   `flag:"all" alias:"a" help:"list teams of all users (admin only)"`
	Filter string `flag:"filter" alias:"f" metavar:"TEXT" help:"show only teams whose name contains TEXT"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Teams.",
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
		found, err := client.GetTeams(ctx, rest.Scope{All: flags.All})
		if err != nil {
			return cerr.FromAPI("failed to list teams", err)
		}
		found = resource.Filter(found, flags.Filter, func(t teams.Team) string { return t.Name })
		return common.Dump(cl.Stdout(), found)
	}
}
