package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/opst/cloudconsole/pkg/api/types/deployments"
	"github.com/opst/cloudconsole/pkg/api/types/gpu"
	"github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
	"github.com/opst/cloudconsole/pkg/api/types/teams"
	"github.com/opst/cloudconsole/pkg/api/types/users"
	"github.com/opst/cloudconsole/pkg/api/types/vms"
	"github.com/opst/cloudconsole/pkg/api/types/zones"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/buildtime"
)

var ErrConfigInvalid = errors.New("client config is invalid")

// ErrLegacyUnavailable is returned by v1 operations when the client has no v1 API root.
var ErrLegacyUnavailable = errors.New("legacy (v1) api is not configured")

// Client of the cloud platform backend.
//
// Each method sends exactly one HTTP request with the bearer token,
// and never retries. Errors responded by the backend are returned as *APIError.
type Client interface {
	// GetVMs lists VMs visible in the scope.
	GetVMs(ctx context.Context, scope Scope) ([]vms.VM, error)

	GetVM(ctx context.Context, id string) (vms.VM, error)

	// CreateVM requests to create a VM.
	//
	// Returns
	//
	// - jobs.Ref: the job creating the VM. Track it to know when the VM is ready.
	//
	// - error
	CreateVM(ctx context.Context, spec vms.Create) (jobs.Ref, error)

	UpdateVM(ctx context.Context, id string, change vms.Update) (jobs.Ref, error)

	DeleteVM(ctx context.Context, id string) (jobs.Ref, error)

	// DoVMAction requests an action (start, stop, ...) to the VM.
	DoVMAction(ctx context.Context, id string, action vms.Action) (jobs.Ref, error)

	// GetVMsV1 lists VMs managed by the legacy v1 API.
	//
	// It returns ErrLegacyUnavailable when the v1 API root is not configured.
	GetVMsV1(ctx context.Context, scope Scope) ([]vms.VMv1, error)

	GetVMV1(ctx context.Context, id string) (vms.VMv1, error)

	DeleteVMV1(ctx context.Context, id string) (jobs.Ref, error)

	GetSnapshots(ctx context.Context, vmID string) ([]vms.Snapshot, error)

	CreateSnapshot(ctx context.Context, vmID string, spec vms.CreateSnapshot) (jobs.Ref, error)

	DeleteSnapshot(ctx context.Context, vmID string, snapshotID string) (jobs.Ref, error)

	GetDeployments(ctx context.Context, scope Scope) ([]deployments.Deployment, error)

	GetDeployment(ctx context.Context, id string) (deployments.Deployment, error)

	CreateDeployment(ctx context.Context, spec deployments.Create) (jobs.Ref, error)

	UpdateDeployment(ctx context.Context, id string, change deployments.Update) (jobs.Ref, error)

	DeleteDeployment(ctx context.Context, id string) (jobs.Ref, error)

	// GetJob fetches the current status of the job.
	GetJob(ctx context.Context, jobID string) (jobs.Job, error)

	// GetJobs lists all jobs. Admin only.
	GetJobs(ctx context.Context) ([]jobs.Job, error)

	// UpdateJob changes the job. Admin only.
	UpdateJob(ctx context.Context, jobID string, change jobs.Update) (jobs.Job, error)

	// GetUser fetches the user. Empty id means the user of the token.
	GetUser(ctx context.Context, id string) (users.User, error)

	// GetUsers lists all users. Admin only.
	GetUsers(ctx context.Context) ([]users.User, error)

	UpdateUser(ctx context.Context, id string, change users.Update) (users.User, error)

	GetTeams(ctx context.Context, scope Scope) ([]teams.Team, error)

	GetTeam(ctx context.Context, id string) (teams.Team, error)

	CreateTeam(ctx context.Context, spec teams.Create) (teams.Team, error)

	UpdateTeam(ctx context.Context, id string, change teams.Update) (teams.Team, error)

	DeleteTeam(ctx context.Context, id string) error

	// JoinTeam accepts an invitation to the team.
	JoinTeam(ctx context.Context, id string, join teams.Join) (teams.Team, error)

	GetNotifications(ctx context.Context, scope Scope) ([]notifications.Notification, error)

	MarkNotificationRead(ctx context.Context, id string) (notifications.Notification, error)

	DeleteNotification(ctx context.Context, id string) error

	GetGPULeases(ctx context.Context, scope Scope) ([]gpu.Lease, error)

	CreateGPULease(ctx context.Context, spec gpu.CreateLease) (gpu.Lease, error)

	DeleteGPULease(ctx context.Context, id string) error

	GetGPUGroups(ctx context.Context) ([]gpu.Group, error)

	GetZones(ctx context.Context) ([]zones.Zone, error)

	GetUserData(ctx context.Context, scope Scope) ([]users.UserData, error)

	CreateUserData(ctx context.Context, spec users.CreateUserData) (users.UserData, error)

	DeleteUserData(ctx context.Context, id string) error
}

// Config of Client.
type Config struct {
	// ApiRoot is the base URL of the v2 API. Required.
	ApiRoot string

	// ApiRootV1 is the base URL of the legacy v1 API. Optional.
	ApiRootV1 string

	// Token provides bearer tokens. Required.
	Token auth.TokenSource

	// CA is a base64 encoded PEM certificate to be trusted additionally. Optional.
	CA string

	// HTTPClient to send requests. If nil, a new http.Client is used.
	HTTPClient *http.Client

	// UserAgent header. If empty, buildtime.UserAgent() is used.
	UserAgent string
}

type client struct {
	httpclient *http.Client
	api        string
	apiv1      string
	token      auth.TokenSource
	userAgent  string
}

// create new client for the config
//
// # Return
//
// - Client: created client
//
// - error: If given config is invalid, ErrConfigInvalid is returned.
func NewClient(conf Config) (Client, error) {
	if !verifyUrl(conf.ApiRoot) {
		return nil, fmt.Errorf("%w: api root is not URL: %q", ErrConfigInvalid, conf.ApiRoot)
	}
	if conf.ApiRootV1 != "" && !verifyUrl(conf.ApiRootV1) {
		return nil, fmt.Errorf("%w: v1 api root is not URL: %q", ErrConfigInvalid, conf.ApiRootV1)
	}
	if conf.Token == nil {
		return nil, fmt.Errorf("%w: no token source", ErrConfigInvalid)
	}

	httpclient := conf.HTTPClient
	if httpclient == nil {
		httpclient = new(http.Client)
	}

	if conf.CA != "" {
		hc, err := trustCa(httpclient, []string{conf.CA})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
		httpclient = hc
	}

	ua := conf.UserAgent
	if ua == "" {
		ua = buildtime.UserAgent()
	}

	return &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(conf.ApiRoot, "/"),
		apiv1:      strings.TrimSuffix(conf.ApiRootV1, "/"),
		token:      conf.Token,
		userAgent:  ua,
	}, nil
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// build URL of v2 api with path
func (c *client) apipath(path ...string) string {
	return join(c.api, path...)
}

// build URL of v1 api with path
func (c *client) apipathV1(path ...string) (string, error) {
	if c.apiv1 == "" {
		return "", ErrLegacyUnavailable
	}
	return join(c.apiv1, path...), nil
}

func join(root string, path ...string) string {
	elems := make([]string, 0, len(path)+1)
	elems = append(elems, root)
	for _, p := range path {
		elems = append(elems, url.PathEscape(strings.Trim(p, "/")))
	}
	return strings.Join(elems, "/")
}

// send a request with the bearer token.
//
// When body is not nil, it is sent as JSON.
func (c *client) do(ctx context.Context, method string, u string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	token, err := c.token.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpclient.Do(req)
}

// send a request, and decode its JSON response.
func call[T any](ctx context.Context, c *client, method string, u string, body any, messageFor MessageFor) (T, error) {
	var ret T
	resp, err := c.do(ctx, method, u, body)
	if err != nil {
		return ret, err
	}
	defer resp.Body.Close()

	if err := unmarshalJsonResponse(resp, &ret, messageFor); err != nil {
		return *new(T), err
	}
	return ret, nil
}

// send a GET request, and decode its response as a list.
func list[T any](ctx context.Context, c *client, u string, messageFor MessageFor) ([]T, error) {
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return unmarshalListResponse[T](resp, messageFor)
}

// send a request, and ignore its response body.
func send(ctx context.Context, c *client, method string, u string, body any, messageFor MessageFor) error {
	resp, err := c.do(ctx, method, u, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp, messageFor)
}

func notFound(what string, id string) MessageFor {
	return MessageFor{
		Status4xx: fmt.Sprintf("%s %s is not found or not accessible", what, id),
		Status5xx: "server error",
	}
}

func invalidRequest(what string) MessageFor {
	return MessageFor{
		Status4xx: fmt.Sprintf("invalid request for %s", what),
		Status5xx: "server error",
	}
}

func listing(what string) MessageFor {
	return MessageFor{
		Status4xx: fmt.Sprintf("cannot list %s", what),
		Status5xx: "server error",
	}
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	newhc := *hc
	hc = &newhc
	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		if pool, err := x509.SystemCertPool(); err == nil {
			rootcas = pool
		} else {
			rootcas = x509.NewCertPool()
		}
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
