package notification

import (
	notification_list "github.com/opst/cloudconsole/cmd/console/subcommands/notification/list"
	notification_read "github.com/opst/cloudconsole/cmd/console/subcommands/notification/read"
	notification_rm "github.com/opst/cloudconsole/cmd/console/subcommands/notification/rm"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := notification_list.New()
	if err != nil {
		return nil, err
	}
	read, err := notification_read.New()
	if err != nil {
		return nil, err
	}
	rm, err := notification_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Read and dismiss Notifications.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("read", read),
		flarc.WithSubcommand("rm", rm),
	)
}
