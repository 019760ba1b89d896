package team

import (
	team_list "github.com/opst/cloudconsole/cmd/console/subcommands/team/list"
	team_create "github.com/opst/cloudconsole/cmd/console/subcommands/team/create"
	team_rm "github.com/opst/cloudconsole/cmd/console/subcommands/team/rm"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := team_list.New()
	if err != nil {
		return nil, err
	}
	create, err := team_create.New()
	if err != nil {
		return nil, err
	}
	rm, err := team_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Teams.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("rm", rm),
	)
}
