package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Admin                 bool          `flag:"admin" help:"load resources of all users (admin only)"`
	Legacy                bool          `flag:"legacy" help:"load VMs of the v1 API too"`
	ImpersonateVM         string        `flag:"impersonate-vm" metavar:"VM_ID" help:"look up the VM in addition"`
	ImpersonateDeployment string        `flag:"impersonate-deployment" metavar:"DEPLOYMENT_ID" help:"look up the Deployment in addition"`
	CycleTimeout          time.Duration `flag:"cycle-timeout" metavar:"DURATION" help:"time limit of each refresh. 0 means no limit"`
	NoReload              bool          `flag:"no-reload" help:"do not reconnect when the profile store or env file is modified"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Watch your cloud resources.",
		Flags{CycleTimeout: 30 * time.Second},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Keep loading your cloud resources, and print events as JSON lines.

Each line is one of:

- {"type": "refresh", ...}: a refresh is done. It tells counts of resources and when the next refresh comes.
- {"type": "notice", ...}: a message from failed refreshes or finished Jobs.

When the profile store or the env file is modified, it reconnects with the new profile.
It runs until interrupted.
`),
	)
}

// Connector builds a client and a session. They may hold resources bound to ctx.
type Connector func(ctx context.Context, logger *log.Logger, cf common.CommonFlags) (rest.Client, auth.Session, error)

func Task() common.TaskWithCommonFlag[Flags] {
	return TaskWith(common.Connect)
}

// TaskWith is Task connecting with connect.
//
// Each connection gets its own context, which is canceled before reconnecting.
func TaskWith(connect Connector) common.TaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		mode, err := common.Mode(flags.Admin, flags.Legacy, flags.ImpersonateVM, flags.ImpersonateDeployment)
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		conf := console.Config{Mode: mode, CycleTimeout: flags.CycleTimeout, Logger: logger}
		out := NewPrinter(cl.Stdout())

		for {
			connCtx, disconnect := context.WithCancel(ctx)
			client, session, err := connect(connCtx, logger, cf)
			if err != nil {
				disconnect()
				return err
			}

			runCtx, cancel := connCtx, func() {}
			if targets := existing(cf.ProfileStore, cf.Env); !flags.NoReload && 0 < len(targets) {
				runCtx, cancel, err = filewatch.UntilModifyContext(connCtx, targets...)
				if err != nil {
					disconnect()
					return fmt.Errorf("cannot watch %v: %w", targets, err)
				}
			}

			err = Watch(runCtx, client, session, conf, out)
			cancel()
			disconnect()
			if ctx.Err() != nil {
				return nil
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Println("profile is modified. reconnecting...")
		}
	}
}

func existing(paths ...string) []string {
	ret := []string{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			ret = append(ret, p)
		}
	}
	return ret
}
