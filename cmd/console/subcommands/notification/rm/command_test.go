package rm_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/opst/cloudconsole/cmd/console/subcommands/internal/commandline"
	"github.com/opst/cloudconsole/cmd/console/subcommands/logger"
	notification_rm "github.com/opst/cloudconsole/cmd/console/subcommands/notification/rm"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/opst/cloudconsole/pkg/rest/mock"
)

func TestTask(t *testing.T) {
	t.Run("not found is ignored", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.DeleteNotification = func(ctx context.Context, id string) error {
			if id == "n-2" {
				return &rest.APIError{StatusCode: http.StatusNotFound}
			}
			return nil
		}

		cl, _, _ := commandline.New(
			"console notification rm", notification_rm.Flags{},
			map[string][]string{notification_rm.ARG_NOTIFICATION_ID: {"n-1", "n-2", "n-3"}},
		)
		if err := notification_rm.Task()(context.Background(), logger.Null(), client, cl, []any{}); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(client.Calls.DeleteNotification, []string{"n-1", "n-2", "n-3"}) {
			t.Errorf("unexpected calls: %v", client.Calls.DeleteNotification)
		}
	})

	t.Run("other errors stop deletion", func(t *testing.T) {
		client := mock.New(t)
		expectedErr := &rest.APIError{StatusCode: http.StatusInternalServerError}
		client.Impl.DeleteNotification = func(ctx context.Context, id string) error {
			return expectedErr
		}

		cl, _, _ := commandline.New(
			"console notification rm", notification_rm.Flags{},
			map[string][]string{notification_rm.ARG_NOTIFICATION_ID: {"n-1", "n-2"}},
		)
		err := notification_rm.Task()(context.Background(), logger.Null(), client, cl, []any{})
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if !slices.Equal(client.Calls.DeleteNotification, []string{"n-1"}) {
			t.Errorf("unexpected calls: %v", client.Calls.DeleteNotification)
		}
	})
}
