package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
)

func (c *client) GetVMs(ctx context.Context, scope Scope) ([]vms.VM, error) {
	return list[vms.VM](ctx, c, scope.with(c.apipath("vms")), listing("vms"))
}

func (c *client) GetVM(ctx context.Context, id string) (vms.VM, error) {
	return call[vms.VM](ctx, c, http.MethodGet, c.apipath("vms", id), nil, notFound("vm", id))
}

func (c *client) CreateVM(ctx context.Context, spec vms.Create) (jobs.Ref, error) {
	return call[jobs.Ref](ctx, c, http.MethodPost, c.apipath("vms"), spec, invalidRequest("creating vm"))
}

func (c *client) UpdateVM(ctx context.Context, id string, change vms.Update) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](ctx, c, http.MethodPatch, c.apipath("vms", id), change, notFound("vm", id))
	return withResourceID(ref, err, id)
}

func (c *client) DeleteVM(ctx context.Context, id string) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](ctx, c, http.MethodDelete, c.apipath("vms", id), nil, notFound("vm", id))
	return withResourceID(ref, err, id)
}

func (c *client) DoVMAction(ctx context.Context, id string, action vms.Action) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](
		ctx, c, http.MethodPost, c.apipath("vms", id, "actions"),
		struct {
			Action vms.Action `json:"action"`
		}{Action: action},
		notFound("vm", id),
	)
	return withResourceID(ref, err, id)
}

func (c *client) GetVMsV1(ctx context.Context, scope Scope) ([]vms.VMv1, error) {
	u, err := c.apipathV1("vms")
	if err != nil {
		return nil, err
	}
	return list[vms.VMv1](ctx, c, scope.with(u), listing("vms (v1)"))
}

func (c *client) GetVMV1(ctx context.Context, id string) (vms.VMv1, error) {
	u, err := c.apipathV1("vms", id)
	if err != nil {
		return vms.VMv1{}, err
	}
	return call[vms.VMv1](ctx, c, http.MethodGet, u, nil, notFound("vm (v1)", id))
}

func (c *client) DeleteVMV1(ctx context.Context, id string) (jobs.Ref, error) {
	u, err := c.apipathV1("vms", id)
	if err != nil {
		return jobs.Ref{}, err
	}
	ref, err := call[jobs.Ref](ctx, c, http.MethodDelete, u, nil, notFound("vm (v1)", id))
	return withResourceID(ref, err, id)
}

func (c *client) GetSnapshots(ctx context.Context, vmID string) ([]vms.Snapshot, error) {
	return list[vms.Snapshot](ctx, c, c.apipath("vms", vmID, "snapshots"), listing("snapshots"))
}

func (c *client) CreateSnapshot(ctx context.Context, vmID string, spec vms.CreateSnapshot) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](
		ctx, c, http.MethodPost, c.apipath("vms", vmID, "snapshots"), spec, notFound("vm", vmID),
	)
	return withResourceID(ref, err, vmID)
}

func (c *client) DeleteSnapshot(ctx context.Context, vmID string, snapshotID string) (jobs.Ref, error) {
	ref, err := call[jobs.Ref](
		ctx, c, http.MethodDelete, c.apipath("vms", vmID, "snapshots", snapshotID), nil,
		notFound("snapshot", snapshotID),
	)
	return withResourceID(ref, err, vmID)
}

// fill resource id of job reference, if the backend omits it.
func withResourceID(ref jobs.Ref, err error, id string) (jobs.Ref, error) {
	if err != nil {
		return jobs.Ref{}, err
	}
	if ref.ID == "" {
		ref.ID = id
	}
	return ref, nil
}
