package poller_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/status"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/users"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/poller"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/rest/mock"
	clocktesting "k8s.io/utils/clock/testing"
)

type notices struct {
	mu  sync.Mutex
	got []notice.Notice
}

func (n *notices) Notify(x notice.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func (n *notices) list() []notice.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notice.Notice{}, n.got...)
}

func session() auth.Session {
	return auth.NewSession(auth.StaticToken("opaque-token"))
}

// baseline sets up the mock to answer the calls which every cycle makes.
func baseline(client *mock.MockClient) {
	client.Impl.GetUser = func(ctx context.Context, id string) (users.User, error) {
		return users.User{ID: "user-1", Username: "alice"}, nil
	}
	client.Impl.GetVMs = func(ctx context.Context, scope rest.Scope) ([]vms.VM, error) {
		return []vms.VM{{ID: "vm-1", Name: "web-1", Status: status.Running}}, nil
	}
	client.Impl.GetDeployments = func(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error) {
		return []deployments.Deployment{{ID: "dep-1", Name: "web-2", Status: status.Running}}, nil
	}
	client.Impl.GetTeams = func(ctx context.Context, scope rest.Scope) ([]teams.Team, error) {
		return []teams.Team{{ID: "team-1", Name: "dev"}}, nil
	}
	client.Impl.GetNotifications = func(ctx context.Context, scope rest.Scope) ([]notifications.Notification, error) {
		read := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		return []notifications.Notification{{ID: "n1"}, {ID: "n2", ReadAt: &read}, {ID: "n3"}}, nil
	}
	client.Impl.GetZones = func(ctx context.Context) ([]zones.Zone, error) {
		return []zones.Zone{{Name: "se-flem"}}, nil
	}
}

func kinds(rs []resource.Resource) []resource.Kind {
	ret := make([]resource.Kind, 0, len(rs))
	for _, r := range rs {
		ret = append(ret, r.Kind)
	}
	return ret
}

func TestCycle(t *testing.T) {
	t.Run("it loads resources in parallel, and merges them in the order of calls", func(t *testing.T) {
		client := mock.New(t)
		baseline(client)
		client.Impl.GetVMs = func(ctx context.Context, scope rest.Scope) ([]vms.VM, error) {
			time.Sleep(50 * time.Millisecond)
			return []vms.VM{{ID: "vm-1", Name: "web-1"}}, nil
		}
		client.Impl.GetDeployments = func(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error) {
			time.Sleep(200 * time.Millisecond)
			return []deployments.Deployment{{ID: "dep-1", Name: "web-2"}}, nil
		}

		var refreshed []poller.Snapshot
		testee := poller.New(client, session(), poller.WithOnRefresh(func(s poller.Snapshot) {
			refreshed = append(refreshed, s)
		}))

		begin := time.Now()
		schedule := testee.Cycle(context.Background())
		elapsed := time.Since(begin)

		if 400*time.Millisecond <= elapsed {
			t.Errorf("calls are not parallel: %s", elapsed)
		}

		st := testee.Status()
		if st.LastRefreshRTT < 200*time.Millisecond {
			t.Errorf("rtt is too short: %s", st.LastRefreshRTT)
		}
		if !st.Enabled || st.ConnectionError {
			t.Errorf("unexpected status: %+v", st)
		}
		if schedule.Phase != poller.Polling || schedule.Interval != poller.Floor {
			t.Errorf("unexpected schedule: %+v", schedule)
		}

		snapshot := testee.Snapshot()
		got := kinds(snapshot.Resources)
		if len(got) != 2 || got[0] != resource.KindVM || got[1] != resource.KindDeployment {
			t.Errorf("unexpected resources: %v", got)
		}
		if snapshot.Resources[0].ID() != "vm-1" || snapshot.Resources[1].ID() != "dep-1" {
			t.Errorf("unexpected resources: %+v", snapshot.Resources)
		}
		if snapshot.User == nil || snapshot.User.ID != "user-1" {
			t.Errorf("unexpected user: %+v", snapshot.User)
		}
		if snapshot.Unread != 2 {
			t.Errorf("unexpected unread count: %d", snapshot.Unread)
		}
		if len(refreshed) != 1 || len(refreshed[0].Resources) != 2 {
			t.Errorf("unexpected refresh callbacks: %+v", refreshed)
		}

		if len(client.Calls.GetVMs) != 1 || client.Calls.GetVMs[0] != (rest.Scope{}) {
			t.Errorf("unexpected scope of VMs: %+v", client.Calls.GetVMs)
		}
		if len(client.Calls.GetUsers) != 0 || len(client.Calls.GetJobs) != 0 {
			t.Error("admin only resources are loaded")
		}
	})

	t.Run("a failed call is notified, and the others and the previous result survive", func(t *testing.T) {
		client := mock.New(t)
		baseline(client)
		ns := &notices{}
		testee := poller.New(client, session(), poller.WithNotifier(ns))
		ctx := context.Background()

		testee.Cycle(ctx)

		client.Impl.GetDeployments = func(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error) {
			return nil, &rest.APIError{StatusCode: 500, Raw: []byte("deployments are down")}
		}
		client.Impl.GetVMs = func(ctx context.Context, scope rest.Scope) ([]vms.VM, error) {
			return []vms.VM{{ID: "vm-1", Name: "web-1"}, {ID: "vm-2", Name: "web-3"}}, nil
		}
		schedule := testee.Cycle(ctx)

		if schedule.Phase != poller.Polling {
			t.Errorf("partial failure makes it backoff: %+v", schedule)
		}

		snapshot := testee.Snapshot()
		got := kinds(snapshot.Resources)
		expected := []resource.Kind{resource.KindVM, resource.KindVM, resource.KindDeployment}
		if len(got) != len(expected) {
			t.Fatalf("unexpected resources: %v", got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("unexpected resources: %v", got)
			}
		}

		n := ns.list()
		if len(n) != 1 {
			t.Fatalf("unexpected notices: %+v", n)
		}
		if n[0].Level != notice.Error || !strings.Contains(n[0].Message, "deployments are down") {
			t.Errorf("unexpected notice: %+v", n[0])
		}
	})

	t.Run("when the user cannot be loaded, it backs off and keeps the snapshot", func(t *testing.T) {
		client := mock.New(t)
		baseline(client)
		clk := clocktesting.NewFakeClock(time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
		ns := &notices{}
		testee := poller.New(client, session(), poller.WithClock(clk), poller.WithNotifier(ns))
		ctx := context.Background()

		testee.Cycle(ctx)
		vmCalls := len(client.Calls.GetVMs)

		client.Impl.GetUser = func(ctx context.Context, id string) (users.User, error) {
			return users.User{}, errors.New("connection refused")
		}
		clk.Step(poller.Floor)
		first := testee.Cycle(ctx)
		if first.Phase != poller.Backoff || first.Interval != 2*poller.Floor {
			t.Errorf("unexpected schedule: %+v", first)
		}
		clk.Step(first.Interval)
		second := testee.Cycle(ctx)
		if second.Interval != 4*poller.Floor {
			t.Errorf("unexpected schedule: %+v", second)
		}

		if len(client.Calls.GetVMs) != vmCalls {
			t.Error("resources are loaded without user")
		}
		if st := testee.Status(); !st.ConnectionError {
			t.Errorf("connection error is not flagged: %+v", st)
		}
		if len(testee.Snapshot().Resources) != 2 {
			t.Error("snapshot is lost")
		}
		if len(ns.list()) != 2 {
			t.Errorf("unexpected notices: %+v", ns.list())
		}

		client.Impl.GetUser = func(ctx context.Context, id string) (users.User, error) {
			return users.User{ID: "user-1"}, nil
		}
		clk.Step(second.Interval)
		recovered := testee.Cycle(ctx)
		if recovered.Phase != poller.Polling || recovered.Interval != 4*poller.Floor-poller.Step {
			t.Errorf("unexpected schedule: %+v", recovered)
		}
		if st := testee.Status(); st.ConnectionError {
			t.Errorf("connection error remains: %+v", st)
		}
	})

	t.Run("when not authenticated, it loads nothing and gets idle", func(t *testing.T) {
		client := mock.New(t)
		testee := poller.New(client, auth.NewSession(auth.StaticToken("")))

		schedule := testee.Cycle(context.Background())
		if schedule.Phase != poller.Idle {
			t.Errorf("unexpected schedule: %+v", schedule)
		}
		if len(client.Calls.GetUser) != 0 {
			t.Error("user is loaded without authentication")
		}
		if testee.Status().Enabled {
			t.Error("polling is enabled")
		}
	})

	t.Run("admin mode loads everything of all users, and impersonated resources", func(t *testing.T) {
		client := mock.New(t)
		baseline(client)
		client.Impl.GetUsers = func(ctx context.Context) ([]users.User, error) {
			return []users.User{{ID: "user-1"}, {ID: "user-2"}}, nil
		}
		client.Impl.GetGPULeases = func(ctx context.Context, scope rest.Scope) ([]gpu.Lease, error) {
			return []gpu.Lease{{ID: "lease-1"}}, nil
		}
		client.Impl.GetGPUGroups = func(ctx context.Context) ([]gpu.Group, error) {
			return []gpu.Group{{ID: "group-1"}}, nil
		}
		client.Impl.GetJobs = func(ctx context.Context) ([]apijobs.Job, error) {
			return []apijobs.Job{{JobID: "job-1"}}, nil
		}
		client.Impl.GetVMsV1 = func(ctx context.Context, scope rest.Scope) ([]vms.VMv1, error) {
			return []vms.VMv1{{ID: "old-1", Name: "legacy"}}, nil
		}
		client.Impl.GetVM = func(ctx context.Context, id string) (vms.VM, error) {
			return vms.VM{ID: id, Name: "someones-vm"}, nil
		}
		client.Impl.GetDeployment = func(ctx context.Context, id string) (deployments.Deployment, error) {
			return deployments.Deployment{ID: id, Name: "someones-deployment"}, nil
		}

		testee := poller.New(client, session(), poller.WithMode(poller.Mode{
			Admin:                 true,
			LegacyVMs:             true,
			ImpersonateVM:         "vm-9",
			ImpersonateDeployment: "dep-9",
		}))
		testee.Cycle(context.Background())

		snapshot := testee.Snapshot()
		got := kinds(snapshot.Resources)
		expected := []resource.Kind{
			resource.KindVM, resource.KindVMv1, resource.KindDeployment,
			resource.KindVM, resource.KindDeployment,
		}
		if len(got) != len(expected) {
			t.Fatalf("unexpected resources: %v", got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("unexpected resources: %v", got)
			}
		}
		if snapshot.Resources[3].ID() != "vm-9" || snapshot.Resources[4].ID() != "dep-9" {
			t.Errorf("impersonated resources are not at the tail: %+v", snapshot.Resources)
		}
		if len(snapshot.Users) != 2 || len(snapshot.GPULeases) != 1 || len(snapshot.GPUGroups) != 1 || len(snapshot.Jobs) != 1 {
			t.Errorf("admin resources are not loaded: %+v", snapshot)
		}
		for _, s := range client.Calls.GetVMs {
			if !s.All {
				t.Errorf("VMs are not loaded for all users: %+v", s)
			}
		}
	})
}

func TestResolveDisplayName(t *testing.T) {
	client := mock.New(t)
	baseline(client)
	testee := poller.New(client, session())

	if _, ok := testee.ResolveDisplayName("vm-1"); ok {
		t.Error("name is resolved before loading")
	}

	testee.Cycle(context.Background())

	if name, ok := testee.ResolveDisplayName("vm-1"); !ok || name != "web-1" {
		t.Errorf("unexpected name: %s, %v", name, ok)
	}
	if name, ok := testee.ResolveDisplayName("dep-1"); !ok || name != "web-2" {
		t.Errorf("unexpected name: %s, %v", name, ok)
	}
	if _, ok := testee.ResolveDisplayName("nothing"); ok {
		t.Error("unknown resource is resolved")
	}
}

func TestRun(t *testing.T) {
	t.Run("fast load wakes the loop up", func(t *testing.T) {
		client := mock.New(t)
		baseline(client)

		cycles := make(chan poller.Snapshot, 8)
		testee := poller.New(client, session(), poller.WithOnRefresh(func(s poller.Snapshot) {
			cycles <- s
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- testee.Run(ctx) }()

		select {
		case <-cycles:
		case <-time.After(2 * time.Second):
			t.Fatal("the first cycle does not come")
		}

		testee.BeginFastLoad()

		select {
		case <-cycles:
		case <-time.After(2 * time.Second):
			t.Fatal("fast load does not come")
		}

		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
