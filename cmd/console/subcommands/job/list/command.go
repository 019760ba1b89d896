package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Active bool `flag:"active" help:"list only jobs not finished nor terminated"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Jobs (admin only).",
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
		found, err := client.GetJobs(ctx)
		if err != nil {
			return cerr.FromAPI("failed to list jobs", err)
		}
		if cl.Flags().Active {
			active := make([]apijobs.Job, 0, len(found))
			for _, j := range found {
				if !j.Status.Terminal() {
					active = append(active, j)
				}
			}
			found = active
		}
		return common.Dump(cl.Stdout(), found)
	}
}
