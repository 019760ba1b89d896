package deployment

import (
	deployment_create "github.com/opst/cloudconsole/cmd/console/subcommands/deployment/create"
	deployment_list "github.com/opst/cloudconsole/cmd/console/subcommands/deployment/list"
	deployment_rm "github.com/opst/cloudconsole/cmd/console/subcommands/deployment/rm"
	deployment_show "github.com/opst/cloudconsole/cmd/console/subcommands/deployment/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := deployment_list.New()
	if err != nil {
		return nil, err
	}
	show, err := deployment_show.New()
	if err != nil {
		return nil, err
	}
	create, err := deployment_create.New()
	if err != nil {
		return nil, err
	}
	rm, err := deployment_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Deployments.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("rm", rm),
	)
}
