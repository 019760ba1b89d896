package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/jobs"
)

func (c *client) GetDeployments(ctx context.Context, scope Scope) ([]deployments.Deployment, error) {
	return list[deployments.Deployment](ctx, c, scope.with(c.apipath("deployments")), listing("deployments"))
}

func (c *client) GetDeployment(ctx context.Context, id string) (deployments.Deployment, error) {
	return call[deployments.Deployment](
		ctx, c, http.MethodGet, c.apipath("deployments", id), nil, notFound("deployment", id),
	)
}

func (c *client) CreateDeployment(ctx context.Context, spec deployments.Create) (jobs.Ref, error) {
	return call[jobs.Ref](
		ctx, c, http.MethodPost, c.apipath("deployments"), spec, invalidRequest("creating deployment"),
	)
}

func (c *client) UpdateDeployment(ctx context.Context, id string, change deployments.Update) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](
		ctx, c, http.MethodPatch, c.apipath("deployments", id), change, notFound("deployment", id),
	)
	return withResourceID(ref, err, id)
}

func (c *client) DeleteDeployment(ctx context.Context, id string) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](
		ctx, c, http.MethodDelete, c.apipath("deployments", id), nil, notFound("deployment", id),
	)
	return withResourceID(ref, err, id)
}
