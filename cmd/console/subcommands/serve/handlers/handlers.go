package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/cloudconsole/pkg/api/types/errors"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/console/inbox"
	"github.com/opst/cloudconsole/pkg/console/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/poller"
	"github.com/opst/cloudconsole/pkg/console/resource"
)

type SnapshotSource interface {
	Snapshot() poller.Snapshot
	Status() poller.Status
}

type JobQueue interface {
	Jobs() []jobs.Tracked
	Queue(ref apijobs.Ref, kind resource.Kind) bool
}

type NoticeHistory interface {
	List() []notice.Notice
}

// GetResourcesHandler responses resources in the last snapshot.
//
// Query "filter" narrows resources by name, and "kind" by kinds (comma separated).
func GetResourcesHandler(src SnapshotSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		kinds := map[resource.Kind]bool{}
		for _, k := range splitIfNotEmpty(c.QueryParam("kind"), ",") {
			kind, ok := parseKind(k)
			if !ok {
				return apierr.BadRequest(`"kind" should be one of "vm", "vmv1" and "deployment"`, nil)
			}
			kinds[kind] = true
		}

		found := resource.Filter(src.Snapshot().Resources, c.QueryParam("filter"), resource.NameOf)
		resp := make([]resource.Resource, 0, len(found))
		for _, r := range found {
			if 0 < len(kinds) && !kinds[r.Kind] {
				continue
			}
			resp = append(resp, r)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

type NotificationsResponse struct {
	Unread        int                          `json:"unread"`
	Notifications []notifications.Notification `json:"notifications"`
}

// GetNotificationsHandler responses notifications in the last snapshot.
//
// With query "unread=true", only unread ones are responded.
func GetNotificationsHandler(src SnapshotSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		snapshot := src.Snapshot()
		ns := snapshot.Notifications
		if c.QueryParam("unread") == "true" {
			ns = inbox.OnlyUnread(ns)
		}
		if ns == nil {
			ns = []notifications.Notification{}
		}
		return c.JSON(http.StatusOK, NotificationsResponse{
			Unread:        snapshot.Unread,
			Notifications: ns,
		})
	}
}

func GetStatusHandler(src SnapshotSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, src.Status())
	}
}

func GetJobsHandler(q JobQueue) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, q.Jobs())
	}
}

type QueueRequest struct {
	JobID string        `json:"jobId"`
	ID    string        `json:"id"`
	Kind  resource.Kind `json:"kind"`
}

// QueueJobHandler starts tracking a job.
//
// It responses 202 Accepted with the tracked job for a new job,
// and 200 OK for jobs already tracked.
func QueueJobHandler(q JobQueue) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(QueueRequest)
		if err := c.Bind(req); err != nil {
			return apierr.BadRequest("request body should be json", err)
		}
		if req.JobID == "" {
			return apierr.BadRequest(`"jobId" is required`, nil)
		}
		kind, ok := parseKind(string(req.Kind))
		if !ok {
			return apierr.BadRequest(`"kind" should be one of "vm", "vmv1" and "deployment"`, nil)
		}

		code := http.StatusOK
		if q.Queue(apijobs.Ref{JobID: req.JobID, ID: req.ID}, kind) {
			code = http.StatusAccepted
		}
		for _, j := range q.Jobs() {
			if j.JobID == req.JobID {
				return c.JSON(code, j)
			}
		}
		// removed just after queued.
		return apierr.NotFound()
	}
}

func GetNoticesHandler(h NoticeHistory) echo.HandlerFunc {
	return func(c echo.Context) error {
		ns := h.List()
		if ns == nil {
			ns = []notice.Notice{}
		}
		return c.JSON(http.StatusOK, ns)
	}
}

func parseKind(s string) (resource.Kind, bool) {
	switch k := resource.Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case resource.KindVM, resource.KindVMv1, resource.KindDeployment:
		return k, true
	default:
		return "", false
	}
}

func splitIfNotEmpty(s string, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
