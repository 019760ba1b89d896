package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/loop"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/sourcegraph/conc"
	"k8s.io/utils/clock"
)

const (
	// Interval between status fetches.
	Interval = 500 * time.Millisecond

	// RemovalDelay is how long a job is kept after it is observed to be terminal.
	RemovalDelay = 5 * time.Second
)

// ErrNotTracked is returned by Wait for a job which is not tracked.
var ErrNotTracked = errors.New("job is not tracked")

type JobGetter interface {
	GetJob(ctx context.Context, jobID string) (apijobs.Job, error)
}

// NameResolver looks up display names of resources.
type NameResolver interface {
	ResolveDisplayName(resourceID string) (string, bool)
}

type ResolverFunc func(resourceID string) (string, bool)

func (f ResolverFunc) ResolveDisplayName(resourceID string) (string, bool) {
	return f(resourceID)
}

// Tracked is a job in the tracker.
type Tracked struct {
	JobID        string         `json:"jobId"`
	ResourceID   string         `json:"id,omitempty"`
	ResourceKind resource.Kind  `json:"kind,omitempty"`
	JobType      string         `json:"type,omitempty"`
	Status       apijobs.Status `json:"status"`
	LastError    string         `json:"lastError,omitempty"`

	// Name is the display name of the resource, if it is known.
	Name string `json:"name,omitempty"`

	QueuedAt time.Time `json:"queuedAt"`

	// TerminalAt is when the terminal status is observed first.
	TerminalAt *time.Time `json:"terminalAt,omitempty"`
}

func (t Tracked) Terminal() bool {
	return t.Status.Terminal()
}

// Tracker polls statuses of jobs until they are terminal.
type Tracker struct {
	client   JobGetter
	clock    clock.PassiveClock
	notifier notice.Notifier
	resolver NameResolver
	logger   *log.Logger
	onQueue  func(Tracked)
	onFinish func(Tracked)

	mu      sync.RWMutex
	jobs    []Tracked
	changed chan struct{}
}

type Option func(*Tracker) *Tracker

func WithClock(c clock.PassiveClock) Option {
	return func(t *Tracker) *Tracker {
		t.clock = c
		return t
	}
}

// WithNotifier sets where failures of status fetches are notified.
func WithNotifier(n notice.Notifier) Option {
	return func(t *Tracker) *Tracker {
		t.notifier = n
		return t
	}
}

// WithResolver sets how to name resources of jobs.
func WithResolver(r NameResolver) Option {
	return func(t *Tracker) *Tracker {
		t.resolver = r
		return t
	}
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) *Tracker {
		t.logger = l
		return t
	}
}

// WithOnQueue sets a callback invoked each time a job is queued.
func WithOnQueue(f func(Tracked)) Option {
	return func(t *Tracker) *Tracker {
		t.onQueue = f
		return t
	}
}

// WithOnFinish sets a callback invoked once for each job getting terminal.
func WithOnFinish(f func(Tracked)) Option {
	return func(t *Tracker) *Tracker {
		t.onFinish = f
		return t
	}
}

func New(client JobGetter, options ...Option) *Tracker {
	t := &Tracker{
		client:   client,
		clock:    clock.RealClock{},
		notifier: notice.Discard,
		logger:   log.New(io.Discard, "", 0),
		changed:  make(chan struct{}),
	}
	for _, opt := range options {
		t = opt(t)
	}
	return t
}

// Queue starts tracking the job which works on a resource of kind.
//
// Jobs without job id, or already tracked, are ignored.
//
// # Returns
//
// - bool: true if the job is queued.
func (t *Tracker) Queue(ref apijobs.Ref, kind resource.Kind) bool {
	if ref.JobID == "" {
		return false
	}

	t.mu.Lock()
	for _, j := range t.jobs {
		if j.JobID == ref.JobID {
			t.mu.Unlock()
			return false
		}
	}
	tracked := Tracked{
		JobID:        ref.JobID,
		ResourceID:   ref.ID,
		ResourceKind: kind,
		Status:       apijobs.Pending,
		QueuedAt:     t.clock.Now(),
	}
	if t.resolver != nil && ref.ID != "" {
		if name, ok := t.resolver.ResolveDisplayName(ref.ID); ok {
			tracked.Name = name
		}
	}
	t.jobs = append(t.jobs, tracked)
	t.broadcast()
	t.mu.Unlock()

	if t.onQueue != nil {
		t.onQueue(tracked)
	}
	return true
}

// Jobs returns tracked jobs in the queued order.
func (t *Tracker) Jobs() []Tracked {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ret := make([]Tracked, len(t.jobs))
	copy(ret, t.jobs)
	return ret
}

// Get a tracked job.
func (t *Tracker) Get(jobID string) (Tracked, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, j := range t.jobs {
		if j.JobID == jobID {
			return j, true
		}
	}
	return Tracked{}, false
}

// Tick runs one cycle of tracking.
//
// It removes jobs which have been terminal for RemovalDelay,
// then fetches statuses of the other non-terminal jobs concurrently.
func (t *Tracker) Tick(ctx context.Context) {
	pending := t.sweep(t.clock.Now())
	if len(pending) == 0 {
		return
	}

	type result struct {
		job apijobs.Job
		err error
	}
	results := make([]result, len(pending))

	wg := conc.NewWaitGroup()
	for nth, jobID := range pending {
		wg.Go(func() {
			job, err := t.client.GetJob(ctx, jobID)
			results[nth] = result{job: job, err: err}
		})
	}
	wg.Wait()

	now := t.clock.Now()
	finished := make([]Tracked, 0, len(pending))

	t.mu.Lock()
	for nth, jobID := range pending {
		r := results[nth]
		if r.err != nil {
			if ctx.Err() != nil {
				continue
			}
			t.logger.Printf("failed to fetch job %s: %s", jobID, r.err)
			notice.Err(t.notifier, r.err, fmt.Sprintf("fetching status of job %s", jobID))
			if !rest.IsNotFound(r.err) {
				continue
			}
			// the backend does not know the job. it never resolves.
			r.job = apijobs.Job{JobID: jobID, Status: apijobs.Terminated, LastError: r.err.Error()}
		}
		for i := range t.jobs {
			j := &t.jobs[i]
			if j.JobID != jobID || j.Terminal() {
				continue
			}
			t.merge(j, r.job)
			if j.Terminal() {
				at := now
				j.TerminalAt = &at
				finished = append(finished, *j)
			}
		}
	}
	t.broadcast()
	t.mu.Unlock()

	if t.onFinish != nil {
		for _, j := range finished {
			t.onFinish(j)
		}
	}
}

// merge fetched job into tracked one. t.mu should be locked.
func (t *Tracker) merge(tracked *Tracked, fetched apijobs.Job) {
	if fetched.Type != "" {
		tracked.JobType = fetched.Type
	}
	if fetched.Status != "" {
		tracked.Status = fetched.Status
	}
	tracked.LastError = fetched.LastError
	if tracked.ResourceID == "" {
		tracked.ResourceID = fetched.ID
	}

	if t.resolver == nil || tracked.ResourceID == "" {
		return
	}
	name, ok := t.resolveName(tracked.ResourceID)
	if ok {
		tracked.Name = name
	}
}

func (t *Tracker) resolveName(resourceID string) (name string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Printf("failed to resolve name of %s: %v", resourceID, r)
			name, ok = "", false
		}
	}()
	return t.resolver.ResolveDisplayName(resourceID)
}

// sweep removes jobs terminal for RemovalDelay, and returns ids of non-terminal jobs.
func (t *Tracker) sweep(now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.jobs[:0]
	pending := []string{}
	removed := false
	for _, j := range t.jobs {
		if j.TerminalAt != nil && !now.Before(j.TerminalAt.Add(RemovalDelay)) {
			removed = true
			continue
		}
		kept = append(kept, j)
		if !j.Terminal() {
			pending = append(pending, j.JobID)
		}
	}
	for i := len(kept); i < len(t.jobs); i++ {
		t.jobs[i] = Tracked{}
	}
	t.jobs = kept
	if removed {
		t.broadcast()
	}
	return pending
}

// wake up waiters. t.mu should be locked.
func (t *Tracker) broadcast() {
	close(t.changed)
	t.changed = make(chan struct{})
}

// Run ticks every Interval until ctx is done.
func (t *Tracker) Run(ctx context.Context) error {
	_, err := loop.Start(ctx, struct{}{}, func(ctx context.Context, u struct{}) (struct{}, loop.Next) {
		t.Tick(ctx)
		return u, loop.Continue(Interval)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Wait blocks until all of the jobs are observed to be terminal.
//
// The tracker should be running (see Run) while waiting.
//
// # Returns
//
// - []Tracked: the jobs at the time they get terminal, in the order of jobIDs.
//
// - error: ErrNotTracked if one of jobs is not tracked, or ctx.Err().
func (t *Tracker) Wait(ctx context.Context, jobIDs ...string) ([]Tracked, error) {
	done := map[string]Tracked{}
	for {
		t.mu.RLock()
		changed := t.changed
		for _, id := range jobIDs {
			if _, ok := done[id]; ok {
				continue
			}
			found := false
			for _, j := range t.jobs {
				if j.JobID != id {
					continue
				}
				found = true
				if j.Terminal() {
					done[id] = j
				}
				break
			}
			if !found {
				t.mu.RUnlock()
				return nil, fmt.Errorf("%w: %s", ErrNotTracked, id)
			}
		}
		t.mu.RUnlock()

		if len(done) == len(jobIDs) {
			ret := make([]Tracked, 0, len(jobIDs))
			for _, id := range jobIDs {
				ret = append(ret, done[id])
			}
			return ret, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-changed:
		}
	}
}
