package console_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/users"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/rest/mock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func newClient(t *testing.T) *mock.MockClient {
	client := mock.New(t)
	client.Impl.GetUser = func(ctx context.Context, id string) (users.User, error) {
		return users.User{ID: "user-1"}, nil
	}
	client.Impl.GetVMs = func(ctx context.Context, scope rest.Scope) ([]vms.VM, error) {
		return []vms.VM{{ID: "vm-1", Name: "web-1"}}, nil
	}
	client.Impl.GetDeployments = func(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error) {
		return []deployments.Deployment{}, nil
	}
	client.Impl.GetTeams = func(ctx context.Context, scope rest.Scope) ([]teams.Team, error) {
		return []teams.Team{}, nil
	}
	client.Impl.GetNotifications = func(ctx context.Context, scope rest.Scope) ([]notifications.Notification, error) {
		return []notifications.Notification{}, nil
	}
	client.Impl.GetZones = func(ctx context.Context) ([]zones.Zone, error) {
		return []zones.Zone{}, nil
	}
	client.Impl.GetJob = func(ctx context.Context, jobID string) (apijobs.Job, error) {
		return apijobs.Job{JobID: jobID, ID: "vm-1", Status: apijobs.Finished}, nil
	}
	return client
}

func eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestService(t *testing.T) {
	t.Run("queued job is tracked to the end, and it is noticed", func(t *testing.T) {
		client := newClient(t)
		testee := console.New(client, auth.NewSession(auth.StaticToken("token")), console.Config{})

		ctx := context.Background()
		if err := testee.Start(ctx); err != nil {
			t.Fatal(err)
		}
		if err := testee.Start(ctx); !errors.Is(err, console.ErrAlreadyStarted) {
			t.Errorf("unexpected error: %v", err)
		}

		ok := eventually(t, 3*time.Second, func() bool { return testee.Poller.Status().Enabled })
		if !ok {
			t.Fatal("poller does not load")
		}

		if !testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "job-1"}, resource.KindVM) {
			t.Fatal("job is not queued")
		}

		waitCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		got, err := testee.Tracker.Wait(waitCtx, "job-1")
		if err != nil {
			t.Fatal(err)
		}
		if got[0].Name != "web-1" {
			t.Errorf("name is not resolved: %+v", got[0])
		}

		noticed := eventually(t, 3*time.Second, func() bool {
			for _, n := range testee.Recorder.List() {
				if n.Level == notice.Info && strings.Contains(n.Message, "job-1") {
					return true
				}
			}
			return false
		})
		if !noticed {
			t.Errorf("finished job is not noticed: %+v", testee.Recorder.List())
		}

		stopCtx, stopCancel := context.WithTimeout(ctx, 3*time.Second)
		defer stopCancel()
		if err := testee.Stop(stopCtx); err != nil {
			t.Fatal(err)
		}
		if err := testee.Stop(stopCtx); !errors.Is(err, console.ErrNotStarted) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it keeps running after the context for Start is done", func(t *testing.T) {
		client := newClient(t)
		testee := console.New(client, auth.NewSession(auth.StaticToken("token")), console.Config{})

		ctx, cancel := context.WithCancel(context.Background())
		if err := testee.Start(ctx); err != nil {
			t.Fatal(err)
		}
		cancel()

		testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "job-1"}, resource.KindVM)
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer waitCancel()
		if _, err := testee.Tracker.Wait(waitCtx, "job-1"); err != nil {
			t.Errorf("tracker is stopped: %v", err)
		}

		if err := testee.Stop(context.Background()); err != nil {
			t.Fatal(err)
		}
	})
}

func TestModule(t *testing.T) {
	client := newClient(t)

	var service *console.Service
	app := fxtest.New(
		t,
		fx.Provide(func() rest.Client { return client }),
		fx.Provide(func() auth.Session { return auth.NewSession(auth.StaticToken("token")) }),
		fx.Supply(console.Config{}),
		console.Module,
		fx.Populate(&service),
	)
	app.RequireStart()

	if service == nil {
		t.Fatal("service is not provided")
	}
	if !eventually(t, 3*time.Second, func() bool { return service.Poller.Status().Enabled }) {
		t.Error("service is not started")
	}

	app.RequireStop()
}
