package api

import (
	"context"
	"fmt"
	"strconv"
)

// JobListParams filters ListJobs.
type JobListParams struct {
	ListParams
	JobType  string
	Status   string
	TargetID string
}

// ListJobs retrieves enrichment jobs.
func (c *Client) ListJobs(ctx context.Context, params JobListParams) (*List[Job], error) {
	query := params.values()
	setString(query, "job_type", params.JobType)
	setString(query, "status", params.Status)
	setString(query, "target_id", params.TargetID)

	list, err := getJSON[List[Job]](ctx, c, "/jobs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return &list, nil
}

// GetJob retrieves one job by id.
func (c *Client) GetJob(ctx context.Context, id int64) (*Job, error) {
	job, err := getJSON[Job](ctx, c, "/jobs/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job %d: %w", id, err)
	}
	return &job, nil
}
