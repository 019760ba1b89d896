package show

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct{}

const ARG_DEPLOYMENT_ID = "DEPLOYMENT_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show a Deployment.",
		Flags{},
		flarc.Args{
			{Name: ARG_DEPLOYMENT_ID, Required: true, Help: "Id of the Deployment to be shown"},
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
		id, err := flagtype.ID(cl.Args()[ARG_DEPLOYMENT_ID][0])
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		d, err := client.GetDeployment(ctx, id)
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to get deployment %s", id), err)
		}
		return common.Dump(cl.Stdout(), d)
	}
}
