package read

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
		"Mark Notifications as read.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_NOTIFICATION_ID, Required: true, Repeatable: true,
				Help: "Id of Notification to be marked",
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
			n, err := client.MarkNotificationRead(ctx, id)
			if err != nil {
				return cerr.FromAPI(fmt.Sprintf("failed to mark notification %s as read", id), err)
			}
			if err := common.Dump(cl.Stdout(), n); err != nil {
				return err
			}
		}
		return nil
	}
}
