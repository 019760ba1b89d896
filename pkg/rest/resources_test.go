package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/rest"
)

func deploymentSpec() deployments.Create {
	return deployments.Create{Name: "web", Image: "nginx:1.27", Zone: "tokyo"}
}

func TestEndpoints(t *testing.T) {
	type when struct {
		status int
		body   string
		call   func(context.Context, rest.Client) error
	}
	type then struct {
		method string
		path   string
		query  string
		body   map[string]any
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			server, rec := respond(t, when.status, when.body)
			testee := newClient(t, server)

			if err := when.call(context.Background(), testee); err != nil {
				t.Fatal(err)
			}

			req, body := rec.last(t)
			if req.Method != then.method {
				t.Errorf("method: (actual, expected) = (%s, %s)", req.Method, then.method)
			}
			if req.URL.Path != then.path {
				t.Errorf("path: (actual, expected) = (%s, %s)", req.URL.Path, then.path)
			}
			if req.URL.RawQuery != then.query {
				t.Errorf("query: (actual, expected) = (%s, %s)", req.URL.RawQuery, then.query)
			}
			if then.body != nil {
				sent := map[string]any{}
				if err := json.Unmarshal(body, &sent); err != nil {
					t.Fatal(err)
				}
				for k, v := range then.body {
					if sent[k] != v {
						t.Errorf("body[%s]: (actual, expected) = (%v, %v)", k, sent[k], v)
					}
				}
			}
		}
	}

	t.Run("GetUser of the token user", theory(
		when{
			status: http.StatusOK, body: `{"id": "user-1", "username": "alice"}`,
			call: func(ctx context.Context, c rest.Client) error {
				u, err := c.GetUser(ctx, "")
				if err == nil && u.Username != "alice" {
					t.Errorf("unexpected user: %+v", u)
				}
				return err
			},
		},
		then{method: http.MethodGet, path: "/api/v2/users/me"},
	))

	t.Run("DoVMAction", theory(
		when{
			status: http.StatusAccepted, body: `{"jobId": "j"}`,
			call: func(ctx context.Context, c rest.Client) error {
				_, err := c.DoVMAction(ctx, "vm-1", vms.Restart)
				return err
			},
		},
		then{
			method: http.MethodPost, path: "/api/v2/vms/vm-1/actions",
			body: map[string]any{"action": "reboot"},
		},
	))

	t.Run("CreateSnapshot", theory(
		when{
			status: http.StatusAccepted, body: `{"jobId": "j"}`,
			call: func(ctx context.Context, c rest.Client) error {
				_, err := c.CreateSnapshot(ctx, "vm-1", vms.CreateSnapshot{Name: "before-upgrade"})
				return err
			},
		},
		then{
			method: http.MethodPost, path: "/api/v2/vms/vm-1/snapshots",
			body: map[string]any{"name": "before-upgrade"},
		},
	))

	t.Run("MarkNotificationRead", theory(
		when{
			status: http.StatusOK, body: `{"id": "n-1", "type": "teamInvite", "readAt": "2024-01-01T00:00:00Z"}`,
			call: func(ctx context.Context, c rest.Client) error {
				n, err := c.MarkNotificationRead(ctx, "n-1")
				if err == nil && !n.Read() {
					t.Errorf("notification is not read")
				}
				return err
			},
		},
		then{
			method: http.MethodPatch, path: "/api/v2/notifications/n-1",
			body: map[string]any{"read": true},
		},
	))

	t.Run("DeleteNotification with no content", theory(
		when{
			status: http.StatusNoContent, body: ``,
			call: func(ctx context.Context, c rest.Client) error {
				return c.DeleteNotification(ctx, "n-1")
			},
		},
		then{method: http.MethodDelete, path: "/api/v2/notifications/n-1"},
	))

	t.Run("JoinTeam", theory(
		when{
			status: http.StatusOK, body: `{"id": "team-1", "name": "infra"}`,
			call: func(ctx context.Context, c rest.Client) error {
				_, err := c.JoinTeam(ctx, "team-1", teams.Join{InvitationCode: "code"})
				return err
			},
		},
		then{
			method: http.MethodPost, path: "/api/v2/teams/team-1/join",
			body: map[string]any{"invitationCode": "code"},
		},
	))

	t.Run("GetGPULeases of all users", theory(
		when{
			status: http.StatusOK, body: `[{"id": "lease-1", "gpuGroupId": "a100", "queuePosition": 0}]`,
			call: func(ctx context.Context, c rest.Client) error {
				_, err := c.GetGPULeases(ctx, rest.Scope{All: true})
				return err
			},
		},
		then{method: http.MethodGet, path: "/api/v2/gpu-leases", query: "all=true"},
	))

	t.Run("GetUserData of a user", theory(
		when{
			status: http.StatusOK, body: `[{"id": "ud-1", "data": {"packages": ["git"]}}]`,
			call: func(ctx context.Context, c rest.Client) error {
				got, err := c.GetUserData(ctx, rest.Scope{UserID: "user-2"})
				if err == nil && string(got[0].Data) != `{"packages": ["git"]}` {
					t.Errorf("unexpected data: %s", got[0].Data)
				}
				return err
			},
		},
		then{method: http.MethodGet, path: "/api/v2/user-data", query: "userId=user-2"},
	))
}
