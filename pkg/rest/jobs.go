package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/jobs"
)

func (c *client) GetJob(ctx context.Context, jobID string) (jobs.Job, error) {
	job, err := call[jobs.Job](ctx, c, http.MethodGet, c.apipath("jobs", jobID), nil, notFound("job", jobID))
	if err != nil {
		return jobs.Job{}, err
	}
	if job.JobID == "" {
		job.JobID = jobID
	}
	return job, nil
}

func (c *client) GetJobs(ctx context.Context) ([]jobs.Job, error) {
	return list[jobs.Job](ctx, c, c.apipath("jobs"), listing("jobs"))
}

func (c *client) UpdateJob(ctx context.Context, jobID string, change jobs.Update) (jobs.Job, error) {
	return call[jobs.Job](ctx, c, http.MethodPatch, c.apipath("jobs", jobID), change, notFound("job", jobID))
}
