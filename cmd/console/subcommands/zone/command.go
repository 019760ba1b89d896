package zone

import (
	zone_list "github.com/opst/cloudconsole/cmd/console/subcommands/zone/list"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := zone_list.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect Zones.",
		struct{}{},
		flarc.WithSubcommand("list", list),
	)
}
