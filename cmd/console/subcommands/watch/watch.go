package watch

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/console"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/poller"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
)

// StopTimeout is how long Watch waits for the service to stop.
const StopTimeout = 5 * time.Second

type EventType string

const (
	RefreshEvent EventType = "refresh"
	NoticeEvent  EventType = "notice"
)

type Event struct {
	Type    EventType      `json:"type"`
	Refresh *Refresh       `json:"refresh,omitempty"`
	Notice  *notice.Notice `json:"notice,omitempty"`
}

// Refresh is a summary of a snapshot.
type Refresh struct {
	VMs           int `json:"vms"`
	LegacyVMs     int `json:"legacyVms,omitempty"`
	Deployments   int `json:"deployments"`
	Notifications int `json:"notifications"`
	Unread        int `json:"unread"`

	Phase      poller.Phase  `json:"phase"`
	RTT        time.Duration `json:"rtt"`
	NextLoadAt time.Time     `json:"nextLoadAt"`
}

func Summarize(snapshot poller.Snapshot, status poller.Status) Refresh {
	r := Refresh{
		Notifications: len(snapshot.Notifications),
		Unread:        snapshot.Unread,
		Phase:         status.Schedule.Phase,
		RTT:           status.LastRefreshRTT,
		NextLoadAt:    status.Schedule.NextLoadAt,
	}
	for _, res := range snapshot.Resources {
		switch res.Kind {
		case resource.KindVM:
			r.VMs += 1
		case resource.KindVMv1:
			r.LegacyVMs += 1
		case resource.KindDeployment:
			r.Deployments += 1
		}
	}
	return r
}

// Printer writes events as JSON lines. It is safe for concurrent use.
type Printer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{enc: json.NewEncoder(w)}
}

func (p *Printer) Print(ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(ev)
}

// Watch runs the console service until ctx is done, printing events.
func Watch(
	ctx context.Context,
	client rest.Client,
	session auth.Session,
	conf console.Config,
	out *Printer,
) error {
	var service *console.Service
	conf.OnRefresh = func(s poller.Snapshot) {
		r := Summarize(s, service.Poller.Status())
		out.Print(Event{Type: RefreshEvent, Refresh: &r})
	}
	service = console.New(client, session, conf)

	unsubscribe := service.Notices.Subscribe(func(_ context.Context, n notice.Notice) {
		out.Print(Event{Type: NoticeEvent, Notice: &n})
	})
	defer unsubscribe()

	if err := service.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), StopTimeout)
	defer cancel()
	if err := service.Stop(stopCtx); err != nil {
		return err
	}
	return ctx.Err()
}
