package create

import (
	"context"
	"fmt"
	"log"
	"strings"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Description string `flag:"description" alias:"d" metavar:"TEXT" help:"description of the team"`
}

const ARG_NAME = "NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a Team.",
		Flags{},
		flarc.Args{
			{Name: ARG_NAME, Required: true, Help: "name of the new team"},
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
		name := strings.TrimSpace(cl.Args()[ARG_NAME][0])
		if name == "" {
			return fmt.Errorf("%w: %s is empty", flarc.ErrUsage, ARG_NAME)
		}
		team, err := client.CreateTeam(ctx, teams.Create{
			Name:        name,
			Description: cl.Flags().Description,
		})
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to create team %s", name), err)
		}
		return common.Dump(cl.Stdout(), team)
	}
}
