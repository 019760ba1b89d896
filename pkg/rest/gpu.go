package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
)

func (c *client) GetGPULeases(ctx context.Context, scope Scope) ([]gpu.Lease, error) {
	return list[gpu.Lease](ctx, c, scope.with(c.apipath("gpu-leases")), listing("gpu leases"))
}

func (c *client) CreateGPULease(ctx context.Context, spec gpu.CreateLease) (gpu.Lease, error) {
	return call[gpu.Lease](ctx, c, http.MethodPost, c.apipath("gpu-leases"), spec, invalidRequest("leasing gpu"))
}

func (c *client) DeleteGPULease(ctx context.Context, id string) error {
	return send(ctx, c, http.MethodDelete, c.apipath("gpu-leases", id), nil, notFound("gpu lease", id))
}

func (c *client) GetGPUGroups(ctx context.Context) ([]gpu.Group, error) {
	return list[gpu.Group](ctx, c, c.apipath("gpu-groups"), listing("gpu groups"))
}

func (c *client) GetZones(ctx context.Context) ([]zones.Zone, error) {
	return list[zones.Zone](ctx, c, c.apipath("zones"), listing("zones"))
}
