package create_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/opst/cloudconsole/cmd/console/subcommands/internal/commandline"
	"github.com/opst/cloudconsole/cmd/console/subcommands/logger"
	team_create "github.com/opst/cloudconsole/cmd/console/subcommands/team/create"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/rest/mock"
	"github.com/youta-t/flarc"
)

func TestTask(t *testing.T) {
	t.Run("it creates a team", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.CreateTeam = func(ctx context.Context, spec teams.Create) (teams.Team, error) {
			return teams.Team{ID: "team-1", Name: spec.Name, Description: spec.Description}, nil
		}

		cl, stdout, _ := commandline.New(
			"console team create", team_create.Flags{Description: "ml researchers"},
			map[string][]string{team_create.ARG_NAME: {" research "}},
		)
		if err := team_create.Task()(context.Background(), logger.Null(), client, cl, []any{}); err != nil {
			t.Fatal(err)
		}

		if len(client.Calls.CreateTeam) != 1 ||
			client.Calls.CreateTeam[0] != (teams.Create{Name: "research", Description: "ml researchers"}) {
			t.Errorf("unexpected calls: %+v", client.Calls.CreateTeam)
		}
		actual := teams.Team{}
		if err := json.Unmarshal(stdout.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.ID != "team-1" {
			t.Errorf("unexpected output: %s", stdout.String())
		}
	})

	t.Run("blank name is usage error", func(t *testing.T) {
		client := mock.New(t)
		cl, _, _ := commandline.New(
			"console team create", team_create.Flags{},
			map[string][]string{team_create.ARG_NAME: {"  "}},
		)
		err := team_create.Task()(context.Background(), logger.Null(), client, cl, []any{})
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
