package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	subdeployment "github.com/opst/cloudconsole/cmd/console/subcommands/deployment"
	subgpu "github.com/opst/cloudconsole/cmd/console/subcommands/gpu"
	subinit "github.com/opst/cloudconsole/cmd/console/subcommands/init"
	subjob "github.com/opst/cloudconsole/cmd/console/subcommands/job"
	"github.com/opst/cloudconsole/cmd/console/subcommands/logger"
	subnotification "github.com/opst/cloudconsole/cmd/console/subcommands/notification"
	subserve "github.com/opst/cloudconsole/cmd/console/subcommands/serve"
	subteam "github.com/opst/cloudconsole/cmd/console/subcommands/team"
	subver "github.com/opst/cloudconsole/cmd/console/subcommands/version"
	subvm "github.com/opst/cloudconsole/cmd/console/subcommands/vm"
	subwatch "github.com/opst/cloudconsole/cmd/console/subcommands/watch"
	subzone "github.com/opst/cloudconsole/cmd/console/subcommands/zone"
	"github.com/opst/cloudconsole/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	vm := try.To(subvm.New()).OrFatal(logger)
	deployment := try.To(subdeployment.New()).OrFatal(logger)
	job := try.To(subjob.New()).OrFatal(logger)
	notification := try.To(subnotification.New()).OrFatal(logger)
	team := try.To(subteam.New()).OrFatal(logger)
	gpu := try.To(subgpu.New()).OrFatal(logger)
	zone := try.To(subzone.New()).OrFatal(logger)
	watch := try.To(subwatch.New()).OrFatal(logger)
	serve := try.To(subserve.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	console := try.To(
		flarc.NewCommandGroup(
			"Cloud console commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("vm", vm),
			flarc.WithSubcommand("deployment", deployment),
			flarc.WithSubcommand("job", job),
			flarc.WithSubcommand("notification", notification),
			flarc.WithSubcommand("team", team),
			flarc.WithSubcommand("gpu", gpu),
			flarc.WithSubcommand("zone", zone),
			flarc.WithSubcommand("watch", watch),
			flarc.WithSubcommand("serve", serve),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, console, flarc.WithHelp(true)))
}
