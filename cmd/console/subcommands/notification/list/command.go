package list

import (
	"context"
	"log"

	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/console/inbox"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Unread bool `flag:"unread" alias:"u" help:"list only unread notifications"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List Notifications.",
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
		found, err := client.GetNotifications(ctx, rest.Scope{})
		if err != nil {
			return cerr.FromAPI("failed to list notifications", err)
		}
		logger.Printf("%d unread of %d notifications", inbox.Unread(found), len(found))
		if cl.Flags().Unread {
			found = inbox.OnlyUnread(found)
		}
		return common.Dump(cl.Stdout(), found)
	}
}
