package poller

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/users"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console/inbox"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/loop"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/sourcegraph/conc"
	"k8s.io/utils/clock"
)

// Mode tells which resources the poller loads.
type Mode struct {
	// Admin loads resources of all users, and users, GPU state and jobs.
	Admin bool

	// ImpersonateVM is an id of a VM to be looked up in addition.
	ImpersonateVM string

	// ImpersonateDeployment is an id of a deployment to be looked up in addition.
	ImpersonateDeployment string

	// LegacyVMs loads VMs of the v1 API.
	LegacyVMs bool
}

// Snapshot is the view state loaded by a cycle.
type Snapshot struct {
	// Resources merged in the order of VMs, v1 VMs, deployments, and impersonated ones.
	Resources []resource.Resource `json:"resources"`

	User          *users.User                  `json:"user,omitempty"`
	Teams         []teams.Team                 `json:"teams"`
	Notifications []notifications.Notification `json:"notifications"`
	Unread        int                          `json:"unread"`
	Zones         []zones.Zone                 `json:"zones"`

	// admin only

	Users     []users.User  `json:"users,omitempty"`
	GPULeases []gpu.Lease   `json:"gpuLeases,omitempty"`
	GPUGroups []gpu.Group   `json:"gpuGroups,omitempty"`
	Jobs      []apijobs.Job `json:"jobs,omitempty"`
}

// Status of the poller.
type Status struct {
	Schedule Schedule `json:"schedule"`

	// Enabled is true after the first successful cycle, while authenticated.
	Enabled bool `json:"enabled"`

	LastRefresh    time.Time     `json:"lastRefresh"`
	LastRefreshRTT time.Duration `json:"lastRefreshRtt"`

	// ConnectionError is true when the last cycle failed to load the user.
	ConnectionError bool `json:"connectionError"`
}

// Poller loads resources repeatedly with an adaptive interval.
type Poller struct {
	client    rest.Client
	session   auth.Session
	mode      Mode
	clock     clock.PassiveClock
	notifier  notice.Notifier
	logger    *log.Logger
	onRefresh func(Snapshot)
	timeout   time.Duration

	wakeup chan time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	batches  [batchCount][]resource.Resource
	status   Status
}

// slots of resource batches, in the merge order.
const (
	batchVMs = iota
	batchVMsV1
	batchDeployments
	batchImpersonatedVM
	batchImpersonatedDeployment
	batchCount
)

type Option func(*Poller) *Poller

func WithMode(m Mode) Option {
	return func(p *Poller) *Poller {
		p.mode = m
		return p
	}
}

func WithClock(c clock.PassiveClock) Option {
	return func(p *Poller) *Poller {
		p.clock = c
		return p
	}
}

// WithNotifier sets where failures of loading are notified.
func WithNotifier(n notice.Notifier) Option {
	return func(p *Poller) *Poller {
		p.notifier = n
		return p
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Poller) *Poller {
		p.logger = l
		return p
	}
}

// WithOnRefresh sets a callback invoked with each new snapshot.
func WithOnRefresh(f func(Snapshot)) Option {
	return func(p *Poller) *Poller {
		p.onRefresh = f
		return p
	}
}

// WithCycleTimeout limits time of each cycle in Run. Zero means no limit.
func WithCycleTimeout(d time.Duration) Option {
	return func(p *Poller) *Poller {
		p.timeout = d
		return p
	}
}

func New(client rest.Client, session auth.Session, options ...Option) *Poller {
	p := &Poller{
		client:   client,
		session:  session,
		clock:    clock.RealClock{},
		notifier: notice.Discard,
		logger:   log.New(io.Discard, "", 0),
		wakeup:   make(chan time.Duration, 1),
	}
	for _, opt := range options {
		p = opt(p)
	}
	p.status.Schedule = Initial(p.clock.Now())
	return p
}

// Snapshot returns the latest view state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// ResolveDisplayName finds the name of the resource in the latest snapshot.
func (p *Poller) ResolveDisplayName(resourceID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, r := range p.snapshot.Resources {
		if r.ID() != resourceID {
			continue
		}
		if name := r.Name(); name != "" {
			return name, true
		}
		return "", false
	}
	return "", false
}

// BeginFastLoad makes the next cycle come after the last round trip time (+ FastLoadMargin).
//
// It has no effect while the poller is idle or backing off.
func (p *Poller) BeginFastLoad() {
	p.mu.Lock()
	before := p.status.Schedule
	after := before.FastLoad(p.status.LastRefreshRTT, p.clock.Now())
	p.status.Schedule = after
	p.mu.Unlock()

	if after == before {
		return
	}
	select {
	case p.wakeup <- after.Interval:
	default:
	}
}

// fetch is a call in a cycle.
type fetch struct {
	what string
	run  func(context.Context) error
}

// Cycle loads resources once.
//
// When the session is not authenticated, it loads nothing and the schedule gets Idle.
// Failures of each call are notified, and the previous result of the call is kept.
// A failure of loading the user makes the schedule backoff.
func (p *Poller) Cycle(ctx context.Context) Schedule {
	if !p.session.Authenticated(ctx) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.status.Schedule.Phase != Idle {
			p.logger.Println("not authenticated. polling is disabled")
		}
		p.status.Schedule = p.status.Schedule.Disable()
		p.status.Enabled = false
		return p.status.Schedule
	}

	begin := p.clock.Now()

	user, err := p.client.GetUser(ctx, "")
	if err != nil {
		p.logger.Printf("failed to load user: %s", err)
		notice.Err(p.notifier, err, "loading user")

		p.mu.Lock()
		defer p.mu.Unlock()
		p.status.ConnectionError = true
		p.status.Schedule = p.status.Schedule.Fail(p.clock.Now())
		return p.status.Schedule
	}

	p.mu.RLock()
	next := p.snapshot
	batches := p.batches
	p.mu.RUnlock()
	next.User = &user

	scope := rest.Scope{All: p.mode.Admin}
	fetches := []fetch{
		{
			what: "loading VMs",
			run: func(ctx context.Context) error {
				items, err := p.client.GetVMs(ctx, scope)
				if err != nil {
					return err
				}
				batches[batchVMs] = resource.FromVMs(items)
				return nil
			},
		},
		{
			what: "loading deployments",
			run: func(ctx context.Context) error {
				items, err := p.client.GetDeployments(ctx, scope)
				if err != nil {
					return err
				}
				batches[batchDeployments] = resource.FromDeployments(items)
				return nil
			},
		},
		{
			what: "loading teams",
			run: func(ctx context.Context) (err error) {
				next.Teams, err = keep(next.Teams)(p.client.GetTeams(ctx, scope))
				return
			},
		},
		{
			what: "loading notifications",
			run: func(ctx context.Context) (err error) {
				next.Notifications, err = keep(next.Notifications)(p.client.GetNotifications(ctx, rest.Scope{}))
				return
			},
		},
		{
			what: "loading zones",
			run: func(ctx context.Context) (err error) {
				next.Zones, err = keep(next.Zones)(p.client.GetZones(ctx))
				return
			},
		},
	}

	if p.mode.LegacyVMs {
		fetches = append(fetches, fetch{
			what: "loading VMs (v1)",
			run: func(ctx context.Context) error {
				items, err := p.client.GetVMsV1(ctx, scope)
				if err != nil {
					return err
				}
				batches[batchVMsV1] = resource.FromVMsV1(items)
				return nil
			},
		})
	} else {
		batches[batchVMsV1] = nil
	}

	if p.mode.Admin {
		fetches = append(
			fetches,
			fetch{
				what: "loading users",
				run: func(ctx context.Context) (err error) {
					next.Users, err = keep(next.Users)(p.client.GetUsers(ctx))
					return
				},
			},
			fetch{
				what: "loading GPU leases",
				run: func(ctx context.Context) (err error) {
					next.GPULeases, err = keep(next.GPULeases)(p.client.GetGPULeases(ctx, scope))
					return
				},
			},
			fetch{
				what: "loading GPU groups",
				run: func(ctx context.Context) (err error) {
					next.GPUGroups, err = keep(next.GPUGroups)(p.client.GetGPUGroups(ctx))
					return
				},
			},
			fetch{
				what: "loading jobs",
				run: func(ctx context.Context) (err error) {
					next.Jobs, err = keep(next.Jobs)(p.client.GetJobs(ctx))
					return
				},
			},
		)
	} else {
		next.Users, next.GPULeases, next.GPUGroups, next.Jobs = nil, nil, nil, nil
	}

	if id := p.mode.ImpersonateVM; id != "" {
		fetches = append(fetches, fetch{
			what: "looking up VM " + id,
			run: func(ctx context.Context) error {
				vm, err := p.client.GetVM(ctx, id)
				if err != nil {
					return err
				}
				batches[batchImpersonatedVM] = resource.FromVMs([]vms.VM{vm})
				return nil
			},
		})
	} else {
		batches[batchImpersonatedVM] = nil
	}

	if id := p.mode.ImpersonateDeployment; id != "" {
		fetches = append(fetches, fetch{
			what: "looking up deployment " + id,
			run: func(ctx context.Context) error {
				d, err := p.client.GetDeployment(ctx, id)
				if err != nil {
					return err
				}
				batches[batchImpersonatedDeployment] = resource.FromDeployments([]deployments.Deployment{d})
				return nil
			},
		})
	} else {
		batches[batchImpersonatedDeployment] = nil
	}

	// each fetch writes its own fields only.
	wg := conc.NewWaitGroup()
	for _, f := range fetches {
		wg.Go(func() {
			if err := f.run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				p.logger.Printf("failed %s: %s", f.what, err)
				notice.Err(p.notifier, err, f.what)
			}
		})
	}
	wg.Wait()

	now := p.clock.Now()
	next.Resources = resource.Merge(batches[:]...)
	next.Unread = inbox.Unread(next.Notifications)

	p.mu.Lock()
	p.snapshot = next
	p.batches = batches
	p.status.Enabled = true
	p.status.ConnectionError = false
	p.status.LastRefresh = now
	p.status.LastRefreshRTT = now.Sub(begin)
	p.status.Schedule = p.status.Schedule.Succeed(now)
	schedule := p.status.Schedule
	p.mu.Unlock()

	if p.onRefresh != nil {
		p.onRefresh(next)
	}
	return schedule
}

// keep returns a function passing values through, but prev on error.
func keep[T any](prev T) func(T, error) (T, error) {
	return func(v T, err error) (T, error) {
		if err != nil {
			return prev, err
		}
		return v, nil
	}
}

// Run cycles until ctx is done.
//
// While idle, the poller checks authentication every Floor.
func (p *Poller) Run(ctx context.Context) error {
	options := []loop.LoopOption{loop.WithWakeup(p.wakeup)}
	if 0 < p.timeout {
		options = append(options, loop.WithTimeout(p.timeout))
	}

	_, err := loop.Start(
		ctx, p.Status().Schedule,
		loop.Monitor(p.logger, func(ctx context.Context, _ Schedule) (Schedule, loop.Next) {
			s := p.Cycle(ctx)
			return s, loop.Continue(s.Interval)
		}),
		options...,
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
