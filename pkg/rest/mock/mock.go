package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	"github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/users"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/rest"
)

type UpdateVMArgs struct {
	ID     string
	Change vms.Update
}

type DoVMActionArgs struct {
	ID     string
	Action vms.Action
}

type CreateSnapshotArgs struct {
	VMID string
	Spec vms.CreateSnapshot
}

type DeleteSnapshotArgs struct {
	VMID       string
	SnapshotID string
}

type UpdateDeploymentArgs struct {
	ID     string
	Change deployments.Update
}

type UpdateJobArgs struct {
	JobID  string
	Change jobs.Update
}

type UpdateUserArgs struct {
	ID     string
	Change users.Update
}

type UpdateTeamArgs struct {
	ID     string
	Change teams.Update
}

type JoinTeamArgs struct {
	ID   string
	Join teams.Join
}

// ErrNotReady is returned (and the test is marked failed) when a method without Impl is called.
var ErrNotReady = errors.New("mock: not ready to be called")

// MockClient is rest.Client for tests.
//
// Set functions to Impl for methods to be called. Calling a method without Impl marks the test failed.
// Arguments of each call are recorded in Calls.
type MockClient struct {
	t  *testing.T
	mu sync.Mutex

	Impl struct {
		GetVMs               func(ctx context.Context, scope rest.Scope) ([]vms.VM, error)
		GetVM                func(ctx context.Context, id string) (vms.VM, error)
		CreateVM             func(ctx context.Context, spec vms.Create) (jobs.Ref, error)
		UpdateVM             func(ctx context.Context, id string, change vms.Update) (jobs.Ref, error)
		DeleteVM             func(ctx context.Context, id string) (jobs.Ref, error)
		DoVMAction           func(ctx context.Context, id string, action vms.Action) (jobs.Ref, error)
		GetVMsV1             func(ctx context.Context, scope rest.Scope) ([]vms.VMv1, error)
		GetVMV1              func(ctx context.Context, id string) (vms.VMv1, error)
		DeleteVMV1           func(ctx context.Context, id string) (jobs.Ref, error)
		GetSnapshots         func(ctx context.Context, vmID string) ([]vms.Snapshot, error)
		CreateSnapshot       func(ctx context.Context, vmID string, spec vms.CreateSnapshot) (jobs.Ref, error)
		DeleteSnapshot       func(ctx context.Context, vmID string, snapshotID string) (jobs.Ref, error)
		GetDeployments       func(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error)
		GetDeployment        func(ctx context.Context, id string) (deployments.Deployment, error)
		CreateDeployment     func(ctx context.Context, spec deployments.Create) (jobs.Ref, error)
		UpdateDeployment     func(ctx context.Context, id string, change deployments.Update) (jobs.Ref, error)
		DeleteDeployment     func(ctx context.Context, id string) (jobs.Ref, error)
		GetJob               func(ctx context.Context, jobID string) (jobs.Job, error)
		GetJobs              func(ctx context.Context) ([]jobs.Job, error)
		UpdateJob            func(ctx context.Context, jobID string, change jobs.Update) (jobs.Job, error)
		GetUser              func(ctx context.Context, id string) (users.User, error)
		GetUsers             func(ctx context.Context) ([]users.User, error)
		UpdateUser           func(ctx context.Context, id string, change users.Update) (users.User, error)
		GetTeams             func(ctx context.Context, scope rest.Scope) ([]teams.Team, error)
		GetTeam              func(ctx context.Context, id string) (teams.Team, error)
		CreateTeam           func(ctx context.Context, spec teams.Create) (teams.Team, error)
		UpdateTeam           func(ctx context.Context, id string, change teams.Update) (teams.Team, error)
		DeleteTeam           func(ctx context.Context, id string) error
		JoinTeam             func(ctx context.Context, id string, join teams.Join) (teams.Team, error)
		GetNotifications     func(ctx context.Context, scope rest.Scope) ([]notifications.Notification, error)
		MarkNotificationRead func(ctx context.Context, id string) (notifications.Notification, error)
		DeleteNotification   func(ctx context.Context, id string) error
		GetGPULeases         func(ctx context.Context, scope rest.Scope) ([]gpu.Lease, error)
		CreateGPULease       func(ctx context.Context, spec gpu.CreateLease) (gpu.Lease, error)
		DeleteGPULease       func(ctx context.Context, id string) error
		GetGPUGroups         func(ctx context.Context) ([]gpu.Group, error)
		GetZones             func(ctx context.Context) ([]zones.Zone, error)
		GetUserData          func(ctx context.Context, scope rest.Scope) ([]users.UserData, error)
		CreateUserData       func(ctx context.Context, spec users.CreateUserData) (users.UserData, error)
		DeleteUserData       func(ctx context.Context, id string) error
	}

	Calls struct {
		GetVMs               []rest.Scope
		GetVM                []string
		CreateVM             []vms.Create
		UpdateVM             []UpdateVMArgs
		DeleteVM             []string
		DoVMAction           []DoVMActionArgs
		GetVMsV1             []rest.Scope
		GetVMV1              []string
		DeleteVMV1           []string
		GetSnapshots         []string
		CreateSnapshot       []CreateSnapshotArgs
		DeleteSnapshot       []DeleteSnapshotArgs
		GetDeployments       []rest.Scope
		GetDeployment        []string
		CreateDeployment     []deployments.Create
		UpdateDeployment     []UpdateDeploymentArgs
		DeleteDeployment     []string
		GetJob               []string
		GetJobs              []struct{}
		UpdateJob            []UpdateJobArgs
		GetUser              []string
		GetUsers             []struct{}
		UpdateUser           []UpdateUserArgs
		GetTeams             []rest.Scope
		GetTeam              []string
		CreateTeam           []teams.Create
		UpdateTeam           []UpdateTeamArgs
		DeleteTeam           []string
		JoinTeam             []JoinTeamArgs
		GetNotifications     []rest.Scope
		MarkNotificationRead []string
		DeleteNotification   []string
		GetGPULeases         []rest.Scope
		CreateGPULease       []gpu.CreateLease
		DeleteGPULease       []string
		GetGPUGroups         []struct{}
		GetZones             []struct{}
		GetUserData          []rest.Scope
		CreateUserData       []users.CreateUserData
		DeleteUserData       []string
	}
}

var _ rest.Client = &MockClient{}

func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

func (m *MockClient) GetVMs(ctx context.Context, scope rest.Scope) ([]vms.VM, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetVMs = append(m.Calls.GetVMs, scope)
	m.mu.Unlock()
	if m.Impl.GetVMs == nil {
		m.t.Errorf("GetVMs is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetVMs(ctx, scope)
}

func (m *MockClient) GetVM(ctx context.Context, id string) (vms.VM, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetVM = append(m.Calls.GetVM, id)
	m.mu.Unlock()
	if m.Impl.GetVM == nil {
		m.t.Errorf("GetVM is not ready to be called")
		return *new(vms.VM), ErrNotReady
	}
	return m.Impl.GetVM(ctx, id)
}

func (m *MockClient) CreateVM(ctx context.Context, spec vms.Create) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateVM = append(m.Calls.CreateVM, spec)
	m.mu.Unlock()
	if m.Impl.CreateVM == nil {
		m.t.Errorf("CreateVM is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.CreateVM(ctx, spec)
}

func (m *MockClient) UpdateVM(ctx context.Context, id string, change vms.Update) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateVM = append(m.Calls.UpdateVM, UpdateVMArgs{ID: id, Change: change})
	m.mu.Unlock()
	if m.Impl.UpdateVM == nil {
		m.t.Errorf("UpdateVM is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.UpdateVM(ctx, id, change)
}

func (m *MockClient) DeleteVM(ctx context.Context, id string) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteVM = append(m.Calls.DeleteVM, id)
	m.mu.Unlock()
	if m.Impl.DeleteVM == nil {
		m.t.Errorf("DeleteVM is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.DeleteVM(ctx, id)
}

func (m *MockClient) DoVMAction(ctx context.Context, id string, action vms.Action) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DoVMAction = append(m.Calls.DoVMAction, DoVMActionArgs{ID: id, Action: action})
	m.mu.Unlock()
	if m.Impl.DoVMAction == nil {
		m.t.Errorf("DoVMAction is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.DoVMAction(ctx, id, action)
}

func (m *MockClient) GetVMsV1(ctx context.Context, scope rest.Scope) ([]vms.VMv1, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetVMsV1 = append(m.Calls.GetVMsV1, scope)
	m.mu.Unlock()
	if m.Impl.GetVMsV1 == nil {
		m.t.Errorf("GetVMsV1 is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetVMsV1(ctx, scope)
}

func (m *MockClient) GetVMV1(ctx context.Context, id string) (vms.VMv1, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetVMV1 = append(m.Calls.GetVMV1, id)
	m.mu.Unlock()
	if m.Impl.GetVMV1 == nil {
		m.t.Errorf("GetVMV1 is not ready to be called")
		return *new(vms.VMv1), ErrNotReady
	}
	return m.Impl.GetVMV1(ctx, id)
}

func (m *MockClient) DeleteVMV1(ctx context.Context, id string) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteVMV1 = append(m.Calls.DeleteVMV1, id)
	m.mu.Unlock()
	if m.Impl.DeleteVMV1 == nil {
		m.t.Errorf("DeleteVMV1 is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.DeleteVMV1(ctx, id)
}

func (m *MockClient) GetSnapshots(ctx context.Context, vmID string) ([]vms.Snapshot, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetSnapshots = append(m.Calls.GetSnapshots, vmID)
	m.mu.Unlock()
	if m.Impl.GetSnapshots == nil {
		m.t.Errorf("GetSnapshots is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetSnapshots(ctx, vmID)
}

func (m *MockClient) CreateSnapshot(ctx context.Context, vmID string, spec vms.CreateSnapshot) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateSnapshot = append(m.Calls.CreateSnapshot, CreateSnapshotArgs{VMID: vmID, Spec: spec})
	m.mu.Unlock()
	if m.Impl.CreateSnapshot == nil {
		m.t.Errorf("CreateSnapshot is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.CreateSnapshot(ctx, vmID, spec)
}

func (m *MockClient) DeleteSnapshot(ctx context.Context, vmID string, snapshotID string) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteSnapshot = append(m.Calls.DeleteSnapshot, DeleteSnapshotArgs{VMID: vmID, SnapshotID: snapshotID})
	m.mu.Unlock()
	if m.Impl.DeleteSnapshot == nil {
		m.t.Errorf("DeleteSnapshot is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.DeleteSnapshot(ctx, vmID, snapshotID)
}

func (m *MockClient) GetDeployments(ctx context.Context, scope rest.Scope) ([]deployments.Deployment, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetDeployments = append(m.Calls.GetDeployments, scope)
	m.mu.Unlock()
	if m.Impl.GetDeployments == nil {
		m.t.Errorf("GetDeployments is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetDeployments(ctx, scope)
}

func (m *MockClient) GetDeployment(ctx context.Context, id string) (deployments.Deployment, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetDeployment = append(m.Calls.GetDeployment, id)
	m.mu.Unlock()
	if m.Impl.GetDeployment == nil {
		m.t.Errorf("GetDeployment is not ready to be called")
		return *new(deployments.Deployment), ErrNotReady
	}
	return m.Impl.GetDeployment(ctx, id)
}

func (m *MockClient) CreateDeployment(ctx context.Context, spec deployments.Create) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateDeployment = append(m.Calls.CreateDeployment, spec)
	m.mu.Unlock()
	if m.Impl.CreateDeployment == nil {
		m.t.Errorf("CreateDeployment is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.CreateDeployment(ctx, spec)
}

func (m *MockClient) UpdateDeployment(ctx context.Context, id string, change deployments.Update) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateDeployment = append(m.Calls.UpdateDeployment, UpdateDeploymentArgs{ID: id, Change: change})
	m.mu.Unlock()
	if m.Impl.UpdateDeployment == nil {
		m.t.Errorf("UpdateDeployment is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.UpdateDeployment(ctx, id, change)
}

func (m *MockClient) DeleteDeployment(ctx context.Context, id string) (jobs.Ref, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteDeployment = append(m.Calls.DeleteDeployment, id)
	m.mu.Unlock()
	if m.Impl.DeleteDeployment == nil {
		m.t.Errorf("DeleteDeployment is not ready to be called")
		return *new(jobs.Ref), ErrNotReady
	}
	return m.Impl.DeleteDeployment(ctx, id)
}

func (m *MockClient) GetJob(ctx context.Context, jobID string) (jobs.Job, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetJob = append(m.Calls.GetJob, jobID)
	m.mu.Unlock()
	if m.Impl.GetJob == nil {
		m.t.Errorf("GetJob is not ready to be called")
		return *new(jobs.Job), ErrNotReady
	}
	return m.Impl.GetJob(ctx, jobID)
}

func (m *MockClient) GetJobs(ctx context.Context) ([]jobs.Job, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetJobs = append(m.Calls.GetJobs, struct{}{})
	m.mu.Unlock()
	if m.Impl.GetJobs == nil {
		m.t.Errorf("GetJobs is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetJobs(ctx)
}

func (m *MockClient) UpdateJob(ctx context.Context, jobID string, change jobs.Update) (jobs.Job, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateJob = append(m.Calls.UpdateJob, UpdateJobArgs{JobID: jobID, Change: change})
	m.mu.Unlock()
	if m.Impl.UpdateJob == nil {
		m.t.Errorf("UpdateJob is not ready to be called")
		return *new(jobs.Job), ErrNotReady
	}
	return m.Impl.UpdateJob(ctx, jobID, change)
}

func (m *MockClient) GetUser(ctx context.Context, id string) (users.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUser = append(m.Calls.GetUser, id)
	m.mu.Unlock()
	if m.Impl.GetUser == nil {
		m.t.Errorf("GetUser is not ready to be called")
		return *new(users.User), ErrNotReady
	}
	return m.Impl.GetUser(ctx, id)
}

func (m *MockClient) GetUsers(ctx context.Context) ([]users.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUsers = append(m.Calls.GetUsers, struct{}{})
	m.mu.Unlock()
	if m.Impl.GetUsers == nil {
		m.t.Errorf("GetUsers is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetUsers(ctx)
}

func (m *MockClient) UpdateUser(ctx context.Context, id string, change users.Update) (users.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateUser = append(m.Calls.UpdateUser, UpdateUserArgs{ID: id, Change: change})
	m.mu.Unlock()
	if m.Impl.UpdateUser == nil {
		m.t.Errorf("UpdateUser is not ready to be called")
		return *new(users.User), ErrNotReady
	}
	return m.Impl.UpdateUser(ctx, id, change)
}

func (m *MockClient) GetTeams(ctx context.Context, scope rest.Scope) ([]teams.Team, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetTeams = append(m.Calls.GetTeams, scope)
	m.mu.Unlock()
	if m.Impl.GetTeams == nil {
		m.t.Errorf("GetTeams is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetTeams(ctx, scope)
}

func (m *MockClient) GetTeam(ctx context.Context, id string) (teams.Team, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetTeam = append(m.Calls.GetTeam, id)
	m.mu.Unlock()
	if m.Impl.GetTeam == nil {
		m.t.Errorf("GetTeam is not ready to be called")
		return *new(teams.Team), ErrNotReady
	}
	return m.Impl.GetTeam(ctx, id)
}

func (m *MockClient) CreateTeam(ctx context.Context, spec teams.Create) (teams.Team, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateTeam = append(m.Calls.CreateTeam, spec)
	m.mu.Unlock()
	if m.Impl.CreateTeam == nil {
		m.t.Errorf("CreateTeam is not ready to be called")
		return *new(teams.Team), ErrNotReady
	}
	return m.Impl.CreateTeam(ctx, spec)
}

func (m *MockClient) UpdateTeam(ctx context.Context, id string, change teams.Update) (teams.Team, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateTeam = append(m.Calls.UpdateTeam, UpdateTeamArgs{ID: id, Change: change})
	m.mu.Unlock()
	if m.Impl.UpdateTeam == nil {
		m.t.Errorf("UpdateTeam is not ready to be called")
		return *new(teams.Team), ErrNotReady
	}
	return m.Impl.UpdateTeam(ctx, id, change)
}

func (m *MockClient) DeleteTeam(ctx context.Context, id string) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteTeam = append(m.Calls.DeleteTeam, id)
	m.mu.Unlock()
	if m.Impl.DeleteTeam == nil {
		m.t.Errorf("DeleteTeam is not ready to be called")
		return ErrNotReady
	}
	return m.Impl.DeleteTeam(ctx, id)
}

func (m *MockClient) JoinTeam(ctx context.Context, id string, join teams.Join) (teams.Team, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.JoinTeam = append(m.Calls.JoinTeam, JoinTeamArgs{ID: id, Join: join})
	m.mu.Unlock()
	if m.Impl.JoinTeam == nil {
		m.t.Errorf("JoinTeam is not ready to be called")
		return *new(teams.Team), ErrNotReady
	}
	return m.Impl.JoinTeam(ctx, id, join)
}

func (m *MockClient) GetNotifications(ctx context.Context, scope rest.Scope) ([]notifications.Notification, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetNotifications = append(m.Calls.GetNotifications, scope)
	m.mu.Unlock()
	if m.Impl.GetNotifications == nil {
		m.t.Errorf("GetNotifications is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetNotifications(ctx, scope)
}

func (m *MockClient) MarkNotificationRead(ctx context.Context, id string) (notifications.Notification, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.MarkNotificationRead = append(m.Calls.MarkNotificationRead, id)
	m.mu.Unlock()
	if m.Impl.MarkNotificationRead == nil {
		m.t.Errorf("MarkNotificationRead is not ready to be called")
		return *new(notifications.Notification), ErrNotReady
	}
	return m.Impl.MarkNotificationRead(ctx, id)
}

func (m *MockClient) DeleteNotification(ctx context.Context, id string) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteNotification = append(m.Calls.DeleteNotification, id)
	m.mu.Unlock()
	if m.Impl.DeleteNotification == nil {
		m.t.Errorf("DeleteNotification is not ready to be called")
		return ErrNotReady
	}
	return m.Impl.DeleteNotification(ctx, id)
}

func (m *MockClient) GetGPULeases(ctx context.Context, scope rest.Scope) ([]gpu.Lease, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetGPULeases = append(m.Calls.GetGPULeases, scope)
	m.mu.Unlock()
	if m.Impl.GetGPULeases == nil {
		m.t.Errorf("GetGPULeases is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetGPULeases(ctx, scope)
}

func (m *MockClient) CreateGPULease(ctx context.Context, spec gpu.CreateLease) (gpu.Lease, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateGPULease = append(m.Calls.CreateGPULease, spec)
	m.mu.Unlock()
	if m.Impl.CreateGPULease == nil {
		m.t.Errorf("CreateGPULease is not ready to be called")
		return *new(gpu.Lease), ErrNotReady
	}
	return m.Impl.CreateGPULease(ctx, spec)
}

func (m *MockClient) DeleteGPULease(ctx context.Context, id string) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteGPULease = append(m.Calls.DeleteGPULease, id)
	m.mu.Unlock()
	if m.Impl.DeleteGPULease == nil {
		m.t.Errorf("DeleteGPULease is not ready to be called")
		return ErrNotReady
	}
	return m.Impl.DeleteGPULease(ctx, id)
}

func (m *MockClient) GetGPUGroups(ctx context.Context) ([]gpu.Group, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetGPUGroups = append(m.Calls.GetGPUGroups, struct{}{})
	m.mu.Unlock()
	if m.Impl.GetGPUGroups == nil {
		m.t.Errorf("GetGPUGroups is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetGPUGroups(ctx)
}

func (m *MockClient) GetZones(ctx context.Context) ([]zones.Zone, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetZones = append(m.Calls.GetZones, struct{}{})
	m.mu.Unlock()
	if m.Impl.GetZones == nil {
		m.t.Errorf("GetZones is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetZones(ctx)
}

func (m *MockClient) GetUserData(ctx context.Context, scope rest.Scope) ([]users.UserData, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUserData = append(m.Calls.GetUserData, scope)
	m.mu.Unlock()
	if m.Impl.GetUserData == nil {
		m.t.Errorf("GetUserData is not ready to be called")
		return nil, ErrNotReady
	}
	return m.Impl.GetUserData(ctx, scope)
}

func (m *MockClient) CreateUserData(ctx context.Context, spec users.CreateUserData) (users.UserData, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.CreateUserData = append(m.Calls.CreateUserData, spec)
	m.mu.Unlock()
	if m.Impl.CreateUserData == nil {
		m.t.Errorf("CreateUserData is not ready to be called")
		return *new(users.UserData), ErrNotReady
	}
	return m.Impl.CreateUserData(ctx, spec)
}

func (m *MockClient) DeleteUserData(ctx context.Context, id string) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.DeleteUserData = append(m.Calls.DeleteUserData, id)
	m.mu.Unlock()
	if m.Impl.DeleteUserData == nil {
		m.t.Errorf("DeleteUserData is not ready to be called")
		return ErrNotReady
	}
	return m.Impl.DeleteUserData(ctx, id)
}
