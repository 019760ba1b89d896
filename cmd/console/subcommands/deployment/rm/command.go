package rm

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/cmd/console/subcommands/job/wait"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Wait bool `flag:"wait" alias:"w" help:"wait until the Deployment is deleted"`
}

const ARG_DEPLOYMENT_ID = "DEPLOYMENT_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a Deployment.",
		Flags{},
		flarc.Args{
			{Name: ARG_DEPLOYMENT_ID, Required: true, Help: "Id of the Deployment to be deleted"},
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
		ref, err := client.DeleteDeployment(ctx, id)
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to delete deployment %s", id), err)
		}
		if ref.ID == "" {
			ref.ID = id
		}
		return wait.Follow(
			ctx, logger, client, cl.Stdout(), cl.Stderr(),
			ref, resource.KindDeployment, cl.Flags().Wait,
		)
	}
}
