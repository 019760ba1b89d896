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

const ARG_NOTIFICATION_ID = "NOTIFICATION_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete Notifications.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_NOTIFICATION_ID, Required: true, Repeatable: true,
				Help: "Id of Notification to be deleted",
			},
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
		for _, id := range cl.Args()[ARG_NOTIFICATION_ID] {
			if err := client.DeleteNotification(ctx, id); err != nil {
				if rest.IsNotFound(err) {
					logger.Printf("notification %s is already deleted", id)
					continue
				}
				return cerr.FromAPI(fmt.Sprintf("failed to delete notification %s", id), err)
			}
			logger.Printf("notification %s is deleted", id)
		}
		return nil
	}
}
