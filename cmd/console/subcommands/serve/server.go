package serve

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/cloudconsole/cmd/console/subcommands/serve/handlers"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/utils/echoutil"
	"go.uber.org/fx"
)

type ServerConfig struct {
	// Addr to listen, like ":8090".
	Addr string

	// LogLevel of the server. See echoutil.SetLevel.
	LogLevel string

	Logger *log.Logger
}

// App composes the console service and the status server.
func App(client rest.Client, session auth.Session, conf console.Config, server ServerConfig) fx.Option {
	return fx.Options(
		fx.Provide(
			func() rest.Client { return client },
			func() auth.Session { return session },
		),
		fx.Supply(conf, server),
		console.Module,
		fx.Provide(NewServer),
		fx.Invoke(Listen),
	)
}

func NewServer(service *console.Service, conf ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if conf.Logger != nil {
		e.Logger.SetOutput(conf.Logger.Writer())
	}
	echoutil.SetLevel(e, conf.LogLevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	handlers.Route(e, service)
	return e
}

// Listen starts e in the lifecycle.
//
// The listener is opened on start, so that addresses in use are reported at once.
func Listen(lc fx.Lifecycle, sd fx.Shutdowner, e *echo.Echo, conf ServerConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l, err := net.Listen("tcp", conf.Addr)
			if err != nil {
				return err
			}
			e.Listener = l
			if conf.Logger != nil {
				conf.Logger.Printf("listening on %s", l.Addr())
			}

			go func() {
				if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
					e.Logger.Error(err)
					sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
