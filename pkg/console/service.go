package console

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/poller"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/sourcegraph/conc"
	"k8s.io/utils/clock"
)

var (
	ErrAlreadyStarted = errors.New("service has been started already")
	ErrNotStarted     = errors.New("service is not started")
)

type Config struct {
	Mode poller.Mode

	// CycleTimeout limits each poller cycle. Zero means no limit.
	CycleTimeout time.Duration

	// NoticeHistory is how many notices are kept in the Recorder.
	NoticeHistory int

	// OnRefresh is called with a new snapshot after each successful cycle.
	OnRefresh func(poller.Snapshot)

	Logger *log.Logger
	Clock  clock.PassiveClock
}

// Service composes a poller, a job tracker and a notice bus over one client.
type Service struct {
	Poller   *poller.Poller
	Tracker  *jobs.Tracker
	Notices  *notice.Bus
	Recorder *notice.Recorder

	logger *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     *conc.WaitGroup
}

func New(client rest.Client, session auth.Session, conf Config) *Service {
	logger := conf.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	clk := conf.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	history := conf.NoticeHistory
	if history <= 0 {
		history = 50
	}

	s := &Service{
		Notices:  notice.NewBus(notice.WithClock(clk)),
		Recorder: notice.NewRecorder(history),
		logger:   logger,
	}
	s.Notices.Subscribe(s.Recorder.Record)

	s.Poller = poller.New(
		client, session,
		poller.WithMode(conf.Mode),
		poller.WithClock(clk),
		poller.WithNotifier(s.Notices),
		poller.WithLogger(prefixed(logger, "[poller] ")),
		poller.WithCycleTimeout(conf.CycleTimeout),
		poller.WithOnRefresh(conf.OnRefresh),
	)
	s.Tracker = jobs.New(
		client,
		jobs.WithClock(clk),
		jobs.WithNotifier(s.Notices),
		jobs.WithResolver(s.Poller),
		jobs.WithLogger(prefixed(logger, "[jobs] ")),
		jobs.WithOnQueue(func(jobs.Tracked) { s.Poller.BeginFastLoad() }),
		jobs.WithOnFinish(s.finished),
	)
	return s
}

func prefixed(l *log.Logger, prefix string) *log.Logger {
	return log.New(l.Writer(), l.Prefix()+prefix, l.Flags())
}

func (s *Service) finished(j jobs.Tracked) {
	name := j.Name
	if name == "" {
		name = j.ResourceID
	}
	switch {
	case j.Status == apijobs.Terminated:
		notice.Infof(s.Notices, "job %s (%s) is terminated", j.JobID, name)
	case j.LastError != "":
		notice.Infof(s.Notices, "job %s (%s) is finished: %s", j.JobID, name, j.LastError)
	default:
		notice.Infof(s.Notices, "job %s (%s) is finished", j.JobID, name)
	}
	s.Poller.BeginFastLoad()
}

// Start launches the poller, the tracker and the notice dispatcher, and returns.
//
// They keep running after ctx is done, until Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	wg := conc.NewWaitGroup()
	wg.Go(func() { s.Notices.Start(ctx) })
	wg.Go(func() {
		if err := s.Poller.Run(ctx); err != nil {
			s.logger.Printf("poller stopped: %s", err)
		}
	})
	wg.Go(func() {
		if err := s.Tracker.Run(ctx); err != nil {
			s.logger.Printf("job tracker stopped: %s", err)
		}
	})

	s.cancel = cancel
	s.wg = wg
	return nil
}

// Stop cancels the service and waits for it to stop, or ctx to be done.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, wg := s.cancel, s.wg
	s.cancel, s.wg = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Queue tracks a job of a mutation on a resource, and makes the poller load soon.
func (s *Service) Queue(ref apijobs.Ref, kind resource.Kind) bool {
	return s.Tracker.Queue(ref, kind)
}

// Jobs being tracked.
func (s *Service) Jobs() []jobs.Tracked {
	return s.Tracker.Jobs()
}
