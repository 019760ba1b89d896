package rm

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct{}

const ARG_TEAM_ID = "TEAM_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a Team.",
		Flags{},
		flarc.Args{
			{Name: ARG_TEAM_ID, Required: true, Help: "Id of the team to be deleted"},
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
		id := cl.Args()[ARG_TEAM_ID][0]
		if err := client.DeleteTeam(ctx, id); err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to delete team %s", id), err)
		}
		logger.Printf("team %s is deleted", id)
		return nil
	}
}
