package create

import (
	"context"
	"fmt"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/flagtype"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/opst/cloudconsole/cmd/console/subcommands/job/wait"
	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name    string                           `flag:"name" alias:"n" metavar:"NAME" help:"name of the new Deployment (required)"`
	Image   *flagtype.Parsed[name.Reference] `flag:"image" alias:"i" metavar:"IMAGE" help:"container image to be deployed, like nginx:1.27 (required)"`
	Zone    string                           `flag:"zone" alias:"z" metavar:"ZONE" help:"zone to place the Deployment. If not set, the platform decides"`
	Port    int                              `flag:"port" alias:"p" metavar:"PORT" help:"port the container listens on"`
	Private bool                             `flag:"private" help:"do not expose the Deployment to the internet"`
	Env     *flagtype.KeyValues              `flag:"env" alias:"e" metavar:"KEY=VALUE" help:"environment variable of the container. Repeatable"`
	Team    *flagtype.Strings                `flag:"team" metavar:"TEAM_ID" help:"team to share the Deployment with. Repeatable"`
	Wait    bool                             `flag:"wait" alias:"w" help:"wait until the Deployment is created"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a Deployment.",
		Flags{
			Port:  80,
			Image: flagtype.ImageRef(),
			Env:   &flagtype.KeyValues{},
			Team:  &flagtype.Strings{},
		},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a Deployment, a container image served over HTTP(S).

Creation is asynchronous. This command prints the job creating the Deployment.
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

		ref, err := client.CreateDeployment(ctx, spec)
		if err != nil {
			return cerr.FromAPI("failed to create deployment", err)
		}
		logger.Printf("deployment %s (%s) is being created (job: %s)", spec.Name, spec.Image, ref.JobID)

		return wait.Follow(
			ctx, logger, client, cl.Stdout(), cl.Stderr(),
			ref, resource.KindDeployment, flags.Wait,
		)
	}
}

// Spec builds a request to create a Deployment from flags.
func Spec(flags Flags) (deployments.Create, error) {
	if flags.Name == "" {
		return deployments.Create{}, fmt.Errorf("--name is required")
	}
	if flags.Image == nil || !flags.Image.IsSet() {
		return deployments.Create{}, fmt.Errorf("--image is required")
	}
	if flags.Port < 0 || 65535 < flags.Port {
		return deployments.Create{}, fmt.Errorf("--port is out of range: %d", flags.Port)
	}

	spec := deployments.Create{
		Name:    flags.Name,
		Image:   flags.Image.Value().String(),
		Zone:    flags.Zone,
		Private: flags.Private,
		Port:    flags.Port,
	}
	if flags.Env != nil && 0 < len(*flags.Env) {
		spec.Env = map[string]string(*flags.Env)
	}
	if flags.Team != nil && 0 < len(*flags.Team) {
		spec.Teams = []string(*flags.Team)
	}
	return spec, nil
}
