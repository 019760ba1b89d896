package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/users"
)

func (c *client) GetUser(ctx context.Context, id string) (users.User, error) {
	if id == "" {
		id = "me"
	}
	return call[users.User](ctx, c, http.MethodGet, c.apipath("users", id), nil, notFound("user", id))
}

func (c *client) GetUsers(ctx context.Context) ([]users.User, error) {
	return list[users.User](ctx, c, c.apipath("users"), listing("users"))
}

func (c *client) UpdateUser(ctx context.Context, id string, change users.Update) (users.User, error) {
	return call[users.User](ctx, c, http.MethodPatch, c.apipath("users", id), change, notFound("user", id))
}

func (c *client) GetUserData(ctx context.Context, scope Scope) ([]users.UserData, error) {
	return list[users.UserData](ctx, c, scope.with(c.apipath("user-data")), listing("user data"))
}

func (c *client) CreateUserData(ctx context.Context, spec users.CreateUserData) (users.UserData, error) {
	return call[users.UserData](
		ctx, c, http.MethodPost, c.apipath("user-data"), spec, invalidRequest("creating user data"),
	)
}

func (c *client) DeleteUserData(ctx context.Context, id string) error {
	return send(ctx, c, http.MethodDelete, c.apipath("user-data", id), nil, notFound("user data", id))
}
