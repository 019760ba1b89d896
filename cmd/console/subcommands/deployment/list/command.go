package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	All       bool   `flag:"all" alias:"a" help:"list Deployments of all users (admin only)"`
	Filter    string `flag:"filter" alias:"f" metavar:"TEXT" help:"show only Deployments whose name contains TEXT"`
	Unhealthy bool   `flag:"unhealthy" help:"show only Deployments whose last health check failed"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Deployments.",
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
		found, err := client.GetDeployments(ctx, rest.Scope{All: flags.All})
		if err != nil {
			return cerr.FromAPI("failed to list deployments", err)
		}

		found = resource.Filter(found, flags.Filter, func(d deployments.Deployment) string { return d.Name })
		if flags.Unhealthy {
			unhealthy := make([]deployments.Deployment, 0, len(found))
			for _, d := range found {
				if d.PingResult != nil && !d.PingResult.Healthy() {
					unhealthy = append(unhealthy, d)
				}
			}
			found = unhealthy
		}
		return common.Dump(cl.Stdout(), found)
	}
}
