package job

import (
	job_list "github.com/opst/cloudconsole/cmd/console/subcommands/job/list"
	job_show "github.com/opst/cloudconsole/cmd/console/subcommands/job/show"
	job_wait "github.com/opst/cloudconsole/cmd/console/subcommands/job/wait"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := job_list.New()
	if err != nil {
		return nil, err
	}
	show, err := job_show.New()
	if err != nil {
		return nil, err
	}
	wait, err := job_wait.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect asynchronous Jobs.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("wait", wait),
	)
}
