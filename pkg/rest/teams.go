package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/teams"
)

func (c *client) GetTeams(ctx context.Context, scope Scope) ([]teams.Team, error) {
	return list[teams.Team](ctx, c, scope.with(c.apipath("teams")), listing("teams"))
}

func (c *client) GetTeam(ctx context.Context, id string) (teams.Team, error) {
	return call[teams.Team](ctx, c, http.MethodGet, c.apipath("teams", id), nil, notFound("team", id))
}

func (c *client) CreateTeam(ctx context.Context, spec teams.Create) (teams.Team, error) {
	return call[teams.Team](ctx, c, http.MethodPost, c.apipath("teams"), spec, invalidRequest("creating team"))
}

func (c *client) UpdateTeam(ctx context.Context, id string, change teams.Update) (teams.Team, error) {
	return call[teams.Team](ctx, c, http.MethodPatch, c.apipath("teams", id), change, notFound("team", id))
}

func (c *client) DeleteTeam(ctx context.Context, id string) error {
	return send(ctx, c, http.MethodDelete, c.apipath("teams", id), nil, notFound("team", id))
}

func (c *client) JoinTeam(ctx context.Context, id string, join teams.Join) (teams.Team, error) {
	return call[teams.Team](
		ctx, c, http.MethodPost, c.apipath("teams", id, "join"), join, notFound("team", id),
	)
}
