package show

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

const ARG_JOB_ID = "JOB_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the status of a Job.",
		Flags{},
		flarc.Args{
			{Name: ARG_JOB_ID, Required: true, Help: "Id of the Job to be shown"},
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
		id := cl.Args()[ARG_JOB_ID][0]
		if id == "" {
			return fmt.Errorf("%w: %s is empty", flarc.ErrUsage, ARG_JOB_ID)
		}
		job, err := client.GetJob(ctx, id)
		if err != nil {
			return cerr.FromAPI(fmt.Sprintf("failed to get job %s", id), err)
		}
		return common.Dump(cl.Stdout(), job)
	}
}
