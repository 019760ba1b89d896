package action_test

import (
	"context"
	"errors"
	"testing"

	"github.com/opst/cloudconsole/cmd/console/subcommands/internal/commandline"
	"github.com/opst/cloudconsole/cmd/console/subcommands/logger"
	vm_action "github.com/opst/cloudconsole/cmd/console/subcommands/vm/action"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/rest/mock"
	"github.com/youta-t/flarc"
)

const vmID = "6f1e2c1a-7c43-4a53-9a0e-3f1c9d2b8e11"

func TestTask(t *testing.T) {
	type when struct {
		vmID   string
		action string
	}
	type then struct {
		action vms.Action
		usage  bool
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.DoVMAction = func(ctx context.Context, id string, action vms.Action) (apijobs.Ref, error) {
				return apijobs.Ref{JobID: "job-1"}, nil
			}

			cl, _, _ := commandline.New(
				"console vm action", vm_action.Flags{},
				map[string][]string{
					vm_action.ARG_VM_ID:  {when.vmID},
					vm_action.ARG_ACTION: {when.action},
				},
			)
			err := vm_action.Task()(context.Background(), logger.Null(), client, cl, []any{})

			if then.usage {
				if !errors.Is(err, flarc.ErrUsage) {
					t.Errorf("expected usage error, but: %v", err)
				}
				if len(client.Calls.DoVMAction) != 0 {
					t.Errorf("action is requested: %+v", client.Calls.DoVMAction)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(client.Calls.DoVMAction) != 1 {
				t.Fatalf("unexpected calls: %+v", client.Calls.DoVMAction)
			}
			if c := client.Calls.DoVMAction[0]; c.ID != vmID || c.Action != then.action {
				t.Errorf("unexpected call: %+v", c)
			}
		}
	}

	t.Run("start", theory(when{vmID: vmID, action: "start"}, then{action: vms.Start}))
	t.Run("restart is reboot", theory(when{vmID: vmID, action: "restart"}, then{action: vms.Restart}))
	t.Run("uppercase id is canonicalized", theory(
		when{vmID: "6F1E2C1A-7C43-4A53-9A0E-3F1C9D2B8E11", action: "stop"},
		then{action: vms.Stop},
	))
	t.Run("unknown action", theory(when{vmID: vmID, action: "explode"}, then{usage: true}))
	t.Run("malformed id", theory(when{vmID: "vm-1", action: "start"}, then{usage: true}))
}
