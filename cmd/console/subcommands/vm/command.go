package vm

import (
	vm_action "github.com/opst/cloudconsole/cmd/console/subcommands/vm/action"
	vm_create "github.com/opst/cloudconsole/cmd/console/subcommands/vm/create"
	vm_list "github.com/opst/cloudconsole/cmd/console/subcommands/vm/list"
	vm_rm "github.com/opst/cloudconsole/cmd/console/subcommands/vm/rm"
	vm_show "github.com/opst/cloudconsole/cmd/console/subcommands/vm/show"
	vm_snapshot "github.com/opst/cloudconsole/cmd/console/subcommands/vm/snapshot"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := vm_list.New()
	if err != nil {
		return nil, err
	}
	show, err := vm_show.New()
	if err != nil {
		return nil, err
	}
	create, err := vm_create.New()
	if err != nil {
		return nil, err
	}
	rm, err := vm_rm.New()
	if err != nil {
		return nil, err
	}
	action, err := vm_action.New()
	if err != nil {
		return nil, err
	}
	snapshot, err := vm_snapshot.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Virtual Machines.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("action", action),
		flarc.WithSubcommand("snapshot", snapshot),
	)
}
