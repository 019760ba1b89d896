package version

import (
	"context"
	"fmt"

	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/buildtime"
	"github.com/youta-t/flarc"
)

type Flags struct {
	JSON bool `flag:"json" help:"print as JSON"`
}

type Info struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show version of this command.",
		Flags{},
		flarc.Args{},
		Task,
	)
}

func Task(ctx context.Context, cl flarc.Commandline[Flags], _ []any) error {
	if cl.Flags().JSON {
		return common.Dump(cl.Stdout(), Info{Version: buildtime.Version(), Revision: buildtime.Revision()})
	}
	_, err := fmt.Fprintln(cl.Stdout(), buildtime.VersionString())
	return err
}
