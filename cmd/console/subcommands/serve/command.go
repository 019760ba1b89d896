package serve

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/utils/echoutil"
	"github.com/youta-t/flarc"
	"go.uber.org/fx"
)

type Flags struct {
	Addr                  string        `flag:"addr" metavar:"HOST:PORT" help:"address to listen"`
	LogLevel              string        `flag:"loglevel" metavar:"LEVEL" help:"log level of the server: debug, info, warn, error or off"`
	Admin                 bool          `flag:"admin" help:"load resources of all users (admin only)"`
	Legacy                bool          `flag:"legacy" help:"load VMs of the v1 API too"`
	ImpersonateVM         string        `flag:"impersonate-vm" metavar:"VM_ID" help:"look up the VM in addition"`
	ImpersonateDeployment string        `flag:"impersonate-deployment" metavar:"DEPLOYMENT_ID" help:"look up the Deployment in addition"`
	CycleTimeout          time.Duration `flag:"cycle-timeout" metavar:"DURATION" help:"time limit of each refresh. 0 means no limit"`
}

// ShutdownTimeout is how long stopping the server waits requests in flight.
const ShutdownTimeout = 15 * time.Second

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Serve the state of your cloud resources over HTTP.",
		Flags{
			Addr:         "127.0.0.1:8090",
			LogLevel:     "warn",
			CycleTimeout: 30 * time.Second,
		},
		flarc.Args{},
		common.NewSessionTask(Task()),
		flarc.WithDescription(`
Keep loading your cloud resources, and serve them over HTTP as JSON.

Endpoints:

  GET  /api/resources      VMs and Deployments. Query: filter=TEXT, kind=vm,vmv1,deployment
  GET  /api/notifications  Notifications and the unread count. Query: unread=true
  GET  /api/status         the refresh schedule and connection state
  GET  /api/jobs           Jobs being tracked
  POST /api/jobs           start tracking a Job. Body: {"jobId": "...", "id": "...", "kind": "vm"}
  GET  /api/notices        recent messages from refreshes and Jobs

It runs until interrupted.
`),
	)
}

func Task() common.SessionTask[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.Client,
		session auth.Session,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		mode, err := common.Mode(flags.Admin, flags.Legacy, flags.ImpersonateVM, flags.ImpersonateDeployment)
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		if _, ok := echoutil.ParseLevel(flags.LogLevel); !ok {
			return fmt.Errorf("%w: unknown loglevel: %s", flarc.ErrUsage, flags.LogLevel)
		}

		app := fx.New(
			fx.NopLogger,
			App(
				client, session,
				console.Config{Mode: mode, CycleTimeout: flags.CycleTimeout, Logger: logger},
				ServerConfig{Addr: flags.Addr, LogLevel: flags.LogLevel, Logger: logger},
			),
		)
		if err := app.Start(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
		case sig := <-app.Wait():
			logger.Printf("shutting down (exit code: %d)", sig.ExitCode)
		}

		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		return app.Stop(stopCtx)
	}
}
