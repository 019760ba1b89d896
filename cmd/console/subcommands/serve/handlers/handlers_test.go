package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/cloudconsole/cmd/console/subcommands/serve/handlers"
	httptestutil "github.com/opst/cloudconsole/internal/testutils/http"
	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/console/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/poller"
	"github.com/opst/cloudconsole/pkg/console/resource"
)

type source struct {
	snapshot poller.Snapshot
	status   poller.Status
}

func (s *source) Snapshot() poller.Snapshot { return s.snapshot }
func (s *source) Status() poller.Status     { return s.status }

type queue struct {
	jobs   []jobs.Tracked
	queued []apijobs.Ref
}

func (q *queue) Jobs() []jobs.Tracked { return q.jobs }

func (q *queue) Queue(ref apijobs.Ref, kind resource.Kind) bool {
	q.queued = append(q.queued, ref)
	for _, j := range q.jobs {
		if j.JobID == ref.JobID {
			return false
		}
	}
	q.jobs = append(q.jobs, jobs.Tracked{
		JobID: ref.JobID, ResourceID: ref.ID, ResourceKind: kind, Status: apijobs.Pending,
	})
	return true
}

func snapshot() poller.Snapshot {
	readAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return poller.Snapshot{
		Resources: resource.Merge(
			resource.FromVMs([]vms.VM{{ID: "vm-1", Name: "web-1"}, {ID: "vm-2", Name: "db"}}),
			resource.FromDeployments([]deployments.Deployment{{ID: "dep-1", Name: "web-front"}}),
		),
		Notifications: []notifications.Notification{
			{ID: "n-1"}, {ID: "n-2", ReadAt: &readAt},
		},
		Unread: 1,
	}
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	httperr := new(echo.HTTPError)
	if !errors.As(err, &httperr) {
		t.Fatalf("error is not echo.HTTPError: %+v", err)
	}
	return httperr.Code
}

func TestGetResourcesHandler(t *testing.T) {
	type then struct {
		ids        []string
		statusCode int
	}

	theory := func(target string, then then) func(*testing.T) {
		return func(t *testing.T) {
			e := echo.New()
			c, respRec := httptestutil.Get(e, target)

			err := handlers.GetResourcesHandler(&source{snapshot: snapshot()})(c)
			if then.statusCode != http.StatusOK {
				if code := statusCodeOf(t, err); code != then.statusCode {
					t.Errorf("status code: (actual, expected) = (%d, %d)", code, then.statusCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			actual := []resource.Resource{}
			if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
				t.Fatal(err)
			}
			ids := []string{}
			for _, r := range actual {
				ids = append(ids, r.ID())
			}
			if strings.Join(ids, ",") != strings.Join(then.ids, ",") {
				t.Errorf("(actual, expected) = (%v, %v)", ids, then.ids)
			}
		}
	}

	t.Run("all", theory("/api/resources", then{
		ids: []string{"vm-1", "vm-2", "dep-1"}, statusCode: http.StatusOK,
	}))
	t.Run("filtered", theory("/api/resources?filter=WEB", then{
		ids: []string{"vm-1", "dep-1"}, statusCode: http.StatusOK,
	}))
	t.Run("by kind", theory("/api/resources?kind=deployment", then{
		ids: []string{"dep-1"}, statusCode: http.StatusOK,
	}))
	t.Run("unknown kind", theory("/api/resources?kind=bucket", then{
		statusCode: http.StatusBadRequest,
	}))
}

func TestGetNotificationsHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		target string
		ids    []string
	}{
		"all":    {target: "/api/notifications", ids: []string{"n-1", "n-2"}},
		"unread": {target: "/api/notifications?unread=true", ids: []string{"n-1"}},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			c, respRec := httptestutil.Get(e, testcase.target)
			if err := handlers.GetNotificationsHandler(&source{snapshot: snapshot()})(c); err != nil {
				t.Fatal(err)
			}

			actual := handlers.NotificationsResponse{}
			if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
				t.Fatal(err)
			}
			if actual.Unread != 1 {
				t.Errorf("unread: %d", actual.Unread)
			}
			ids := []string{}
			for _, n := range actual.Notifications {
				ids = append(ids, n.ID)
			}
			if strings.Join(ids, ",") != strings.Join(testcase.ids, ",") {
				t.Errorf("(actual, expected) = (%v, %v)", ids, testcase.ids)
			}
		})
	}
}

func TestQueueJobHandler(t *testing.T) {
	t.Run("a new job is accepted", func(t *testing.T) {
		q := &queue{}
		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/jobs",
			httptestutil.JSON(handlers.QueueRequest{JobID: "job-1", ID: "vm-1", Kind: resource.KindVM}),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.QueueJobHandler(q)(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusAccepted {
			t.Errorf("status code: %d", respRec.Code)
		}
		actual := jobs.Tracked{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.JobID != "job-1" || actual.ResourceID != "vm-1" || actual.ResourceKind != resource.KindVM {
			t.Errorf("unexpected response: %+v", actual)
		}
	})

	t.Run("a tracked job is OK", func(t *testing.T) {
		q := &queue{jobs: []jobs.Tracked{{JobID: "job-1", Status: apijobs.Running}}}
		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/jobs",
			strings.NewReader(`{"jobId": "job-1", "kind": "deployment"}`),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.QueueJobHandler(q)(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Errorf("status code: %d", respRec.Code)
		}
		if len(q.jobs) != 1 {
			t.Errorf("job is duplicated: %+v", q.jobs)
		}
	})

	for name, body := range map[string]string{
		"without jobId": `{"id": "vm-1", "kind": "vm"}`,
		"unknown kind":  `{"jobId": "job-1", "kind": "bucket"}`,
		"broken json":   `{"jobId": `,
	} {
		t.Run(name+", it is bad request", func(t *testing.T) {
			q := &queue{}
			e := echo.New()
			c, _ := httptestutil.Post(
				e, "/api/jobs", strings.NewReader(body),
				httptestutil.ContentType("application/json"),
			)

			err := handlers.QueueJobHandler(q)(c)
			if code := statusCodeOf(t, err); code != http.StatusBadRequest {
				t.Errorf("status code: %d", code)
			}
			if len(q.queued) != 0 {
				t.Errorf("job is queued: %+v", q.queued)
			}
		})
	}
}

func TestGetNoticesHandler(t *testing.T) {
	rec := notice.NewRecorder(10)
	e := echo.New()
	c, respRec := httptestutil.Get(e, "/api/notices")
	if err := handlers.GetNoticesHandler(rec)(c); err != nil {
		t.Fatal(err)
	}
	if body := strings.TrimSpace(respRec.Body.String()); body != "[]" {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestQueueJobHandler_Routed(t *testing.T) {
	q := &queue{}
	e := echo.New()
	e.POST("/api/jobs", handlers.QueueJobHandler(q))

	respRec := httptestutil.Serve(
		e, http.MethodPost, "/api/jobs",
		strings.NewReader(`{"kind": "vm"}`),
		httptestutil.ContentType("application/json"),
	)
	if respRec.Code != http.StatusBadRequest {
		t.Errorf("status code: %d", respRec.Code)
	}

	respRec = httptestutil.Serve(e, http.MethodGet, "/api/jobs", nil)
	if respRec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status code: %d", respRec.Code)
	}
}
