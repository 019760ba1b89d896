package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Capability string `flag:"capability" alias:"c" metavar:"CAPABILITY" help:"show only zones having the capability, like vm or deployment"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Zones.",
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
		found, err := client.GetZones(ctx)
		if err != nil {
			return cerr.FromAPI("failed to list zones", err)
		}
		if c := cl.Flags().Capability; c != "" {
			ret := make([]zones.Zone, 0, len(found))
			for _, z := range found {
				if z.Has(c) {
					ret = append(ret, z)
				}
			}
			found = ret
		}
		return common.Dump(cl.Stdout(), found)
	}
}
