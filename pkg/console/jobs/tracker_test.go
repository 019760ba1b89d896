package jobs_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	apierr "github.com/opst/cloudconsole/pkg/api/types/errors"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/console/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	clocktesting "k8s.io/utils/clock/testing"
)

type fakeGetter struct {
	mu     sync.Mutex
	jobs   map[string]apijobs.Job
	errs   map[string]error
	called map[string]int
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{
		jobs:   map[string]apijobs.Job{},
		errs:   map[string]error{},
		called: map[string]int{},
	}
}

func (f *fakeGetter) set(j apijobs.Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[j.JobID] = j
}

func (f *fakeGetter) fail(jobID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[jobID] = err
}

func (f *fakeGetter) calls(jobID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.called[jobID]
}

func (f *fakeGetter) GetJob(_ context.Context, jobID string) (apijobs.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called[jobID] += 1
	if err, ok := f.errs[jobID]; ok {
		return apijobs.Job{}, err
	}
	if j, ok := f.jobs[jobID]; ok {
		return j, nil
	}
	return apijobs.Job{JobID: jobID, Status: apijobs.Pending}, nil
}

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

func TestQueue(t *testing.T) {
	t.Run("it ignores jobs without id and duplicated ones", func(t *testing.T) {
		testee := jobs.New(newFakeGetter())

		if testee.Queue(apijobs.Ref{ID: "vm-1"}, resource.KindVM) {
			t.Error("job without id is queued")
		}
		if !testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM) {
			t.Error("job is not queued")
		}
		if testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM) {
			t.Error("duplicated job is queued")
		}

		got := testee.Jobs()
		if len(got) != 1 {
			t.Fatalf("unexpected jobs: %+v", got)
		}
		if got[0].JobID != "abc" || got[0].ResourceID != "vm-1" || got[0].ResourceKind != resource.KindVM || got[0].Status != apijobs.Pending {
			t.Errorf("unexpected job: %+v", got[0])
		}
	})

	t.Run("it names the resource and calls back", func(t *testing.T) {
		var queued []jobs.Tracked
		testee := jobs.New(
			newFakeGetter(),
			jobs.WithResolver(jobs.ResolverFunc(func(id string) (string, bool) {
				return "name-of-" + id, true
			})),
			jobs.WithOnQueue(func(j jobs.Tracked) { queued = append(queued, j) }),
		)

		testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM)

		if len(queued) != 1 || queued[0].Name != "name-of-vm-1" {
			t.Errorf("unexpected callback: %+v", queued)
		}
	})
}

func TestTick(t *testing.T) {
	begin := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("a finished job stays for 5 seconds, then it is removed", func(t *testing.T) {
		clk := clocktesting.NewFakeClock(begin)
		getter := newFakeGetter()

		var finished []jobs.Tracked
		testee := jobs.New(
			getter,
			jobs.WithClock(clk),
			jobs.WithOnFinish(func(j jobs.Tracked) { finished = append(finished, j) }),
		)
		ctx := context.Background()

		testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM)
		testee.Tick(ctx)
		if got, _ := testee.Get("abc"); got.Status != apijobs.Pending {
			t.Errorf("unexpected status: %s", got.Status)
		}

		getter.set(apijobs.Job{JobID: "abc", ID: "vm-1", Type: "createVm", Status: apijobs.Finished})
		clk.Step(500 * time.Millisecond)
		testee.Tick(ctx)

		got, ok := testee.Get("abc")
		if !ok {
			t.Fatal("job is removed too early")
		}
		if got.Status != apijobs.Finished || got.JobType != "createVm" {
			t.Errorf("job is not updated: %+v", got)
		}
		if got.TerminalAt == nil || !got.TerminalAt.Equal(begin.Add(500*time.Millisecond)) {
			t.Errorf("unexpected TerminalAt: %v", got.TerminalAt)
		}
		if len(finished) != 1 || finished[0].JobID != "abc" {
			t.Errorf("unexpected finish callbacks: %+v", finished)
		}

		calls := getter.calls("abc")
		clk.Step(jobs.RemovalDelay - time.Millisecond)
		testee.Tick(ctx)
		if _, ok := testee.Get("abc"); !ok {
			t.Error("job is removed before 5 seconds pass")
		}
		if getter.calls("abc") != calls {
			t.Error("terminal job is fetched again")
		}

		clk.Step(time.Millisecond)
		testee.Tick(ctx)
		if _, ok := testee.Get("abc"); ok {
			t.Error("job is not removed after 5 seconds")
		}
		if len(finished) != 1 {
			t.Errorf("finish callback is called again: %+v", finished)
		}
	})

	t.Run("a failed job is not terminal", func(t *testing.T) {
		clk := clocktesting.NewFakeClock(begin)
		getter := newFakeGetter()
		testee := jobs.New(getter, jobs.WithClock(clk))
		ctx := context.Background()

		testee.Queue(apijobs.Ref{JobID: "abc"}, resource.KindDeployment)
		getter.set(apijobs.Job{JobID: "abc", ID: "dep-1", Status: apijobs.Failed, LastError: "no capacity"})
		testee.Tick(ctx)

		got, _ := testee.Get("abc")
		if got.Terminal() || got.TerminalAt != nil {
			t.Errorf("failed job is terminal: %+v", got)
		}
		if got.LastError != "no capacity" || got.ResourceID != "dep-1" {
			t.Errorf("unexpected job: %+v", got)
		}

		clk.Step(time.Minute)
		testee.Tick(ctx)
		if _, ok := testee.Get("abc"); !ok {
			t.Error("failed job is removed")
		}
	})

	t.Run("a fetch failure is notified and it does not block other jobs", func(t *testing.T) {
		clk := clocktesting.NewFakeClock(begin)
		getter := newFakeGetter()
		ns := &notices{}
		testee := jobs.New(getter, jobs.WithClock(clk), jobs.WithNotifier(ns))
		ctx := context.Background()

		testee.Queue(apijobs.Ref{JobID: "broken"}, resource.KindVM)
		testee.Queue(apijobs.Ref{JobID: "fine"}, resource.KindVM)
		getter.fail("broken", errors.New("connection refused"))
		getter.set(apijobs.Job{JobID: "fine", Status: apijobs.Running})

		testee.Tick(ctx)

		if got, _ := testee.Get("fine"); got.Status != apijobs.Running {
			t.Errorf("other job is not updated: %+v", got)
		}
		if got, _ := testee.Get("broken"); got.Status != apijobs.Pending {
			t.Errorf("failed job is changed: %+v", got)
		}

		got := ns.list()
		if len(got) != 1 {
			t.Fatalf("unexpected notices: %+v", got)
		}
		if got[0].Level != notice.Error || !strings.Contains(got[0].Message, "connection refused") {
			t.Errorf("unexpected notice: %+v", got[0])
		}
	})

	t.Run("a job unknown to the backend gets terminated", func(t *testing.T) {
		clk := clocktesting.NewFakeClock(begin)
		getter := newFakeGetter()
		ns := &notices{}
		var finished []jobs.Tracked
		testee := jobs.New(
			getter,
			jobs.WithClock(clk),
			jobs.WithNotifier(ns),
			jobs.WithOnFinish(func(j jobs.Tracked) { finished = append(finished, j) }),
		)
		ctx := context.Background()

		testee.Queue(apijobs.Ref{JobID: "gone"}, resource.KindVM)
		testee.Queue(apijobs.Ref{JobID: "fine"}, resource.KindVM)
		getter.fail("gone", &rest.APIError{
			StatusCode: http.StatusNotFound, Method: http.MethodGet, Path: "/jobs/gone",
			Body: &apierr.ErrorResponse{Errors: []apierr.ErrorItem{{Msg: "job not found"}}},
		})
		getter.set(apijobs.Job{JobID: "fine", Status: apijobs.Running})

		testee.Tick(ctx)

		got, ok := testee.Get("gone")
		if !ok {
			t.Fatal("job is removed at once")
		}
		if got.Status != apijobs.Terminated || got.TerminalAt == nil {
			t.Errorf("job is not terminated: %+v", got)
		}
		if !strings.Contains(got.LastError, "job not found") {
			t.Errorf("unexpected lastError: %s", got.LastError)
		}
		if len(finished) != 1 || finished[0].JobID != "gone" {
			t.Errorf("unexpected finish callbacks: %+v", finished)
		}
		if other, _ := testee.Get("fine"); other.Status != apijobs.Running {
			t.Errorf("other job is not updated: %+v", other)
		}
		if len(ns.list()) != 1 {
			t.Errorf("unexpected notices: %+v", ns.list())
		}

		calls := getter.calls("gone")
		clk.Step(jobs.RemovalDelay)
		testee.Tick(ctx)
		if getter.calls("gone") != calls {
			t.Error("terminated job is fetched again")
		}
		if _, ok := testee.Get("gone"); ok {
			t.Error("terminated job is not removed")
		}
	})

	t.Run("it keeps the name when the resolver does not know the resource", func(t *testing.T) {
		getter := newFakeGetter()
		known := true
		testee := jobs.New(getter, jobs.WithResolver(jobs.ResolverFunc(func(id string) (string, bool) {
			if !known {
				return "", false
			}
			return "my-vm", true
		})))
		ctx := context.Background()

		testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM)
		known = false
		testee.Tick(ctx)

		if got, _ := testee.Get("abc"); got.Name != "my-vm" {
			t.Errorf("name is lost: %+v", got)
		}
	})

	t.Run("a panicking resolver does not break ticks", func(t *testing.T) {
		getter := newFakeGetter()
		panics := false
		testee := jobs.New(getter, jobs.WithResolver(jobs.ResolverFunc(func(id string) (string, bool) {
			if panics {
				panic("boom")
			}
			return "my-vm", true
		})))
		ctx := context.Background()

		testee.Queue(apijobs.Ref{ID: "vm-1", JobID: "abc"}, resource.KindVM)
		panics = true
		getter.set(apijobs.Job{JobID: "abc", Status: apijobs.Running})
		testee.Tick(ctx)

		if got, _ := testee.Get("abc"); got.Status != apijobs.Running || got.Name != "my-vm" {
			t.Errorf("unexpected job: %+v", got)
		}
	})
}

func TestWait(t *testing.T) {
	t.Run("it returns when all jobs get terminal", func(t *testing.T) {
		getter := newFakeGetter()
		testee := jobs.New(getter)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		testee.Queue(apijobs.Ref{JobID: "j1"}, resource.KindVM)
		testee.Queue(apijobs.Ref{JobID: "j2"}, resource.KindVM)

		go func() {
			getter.set(apijobs.Job{JobID: "j1", Status: apijobs.Finished})
			testee.Tick(ctx)
			getter.set(apijobs.Job{JobID: "j2", Status: apijobs.Terminated})
			testee.Tick(ctx)
		}()

		got, err := testee.Wait(ctx, "j1", "j2")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Status != apijobs.Finished || got[1].Status != apijobs.Terminated {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("it fails for jobs not tracked", func(t *testing.T) {
		testee := jobs.New(newFakeGetter())
		_, err := testee.Wait(context.Background(), "nothing")
		if !errors.Is(err, jobs.ErrNotTracked) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it gives up when context is done", func(t *testing.T) {
		testee := jobs.New(newFakeGetter())
		testee.Queue(apijobs.Ref{JobID: "j1"}, resource.KindVM)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := testee.Wait(ctx, "j1")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestRun(t *testing.T) {
	getter := newFakeGetter()
	testee := jobs.New(getter)
	testee.Queue(apijobs.Ref{JobID: "j1"}, resource.KindVM)
	getter.set(apijobs.Job{JobID: "j1", Status: apijobs.Finished})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- testee.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	if _, err := testee.Wait(waitCtx, "j1"); err != nil {
		t.Fatal(err)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
