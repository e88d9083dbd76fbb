package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// SponsorDetectionJobListParams filters ListSponsorDetectionJobs.
type SponsorDetectionJobListParams struct {
	ListParams
	Status  string
	VideoID string
}

// CreateSponsorDetectionJobRequest is the payload for
// CreateSponsorDetectionJob.
type CreateSponsorDetectionJobRequest struct {
	VideoID string `json:"video_id" validate:"required"`
}

// ListSponsorDetectionJobs retrieves sponsor detection jobs.
func (c *Client) ListSponsorDetectionJobs(ctx context.Context, params SponsorDetectionJobListParams) (*List[SponsorDetectionJob], error) {
	query := params.values()
	setString(query, "status", params.Status)
	setString(query, "video_id", params.VideoID)

	list, err := getJSON[List[SponsorDetectionJob]](ctx, c, "/sponsor-detection-jobs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsor detection jobs: %w", err)
	}
	return &list, nil
}

// GetSponsorDetectionJob retrieves one detection job by id.
func (c *Client) GetSponsorDetectionJob(ctx context.Context, id int64) (*SponsorDetectionJob, error) {
	job, err := getJSON[SponsorDetectionJob](ctx, c, "/sponsor-detection-jobs/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sponsor detection job %d: %w", id, err)
	}
	return &job, nil
}

// CreateSponsorDetectionJob asks the server to scan one video for sponsor
// placements.
func (c *Client) CreateSponsorDetectionJob(ctx context.Context, req CreateSponsorDetectionJobRequest) (*SponsorDetectionJob, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	job, err := postJSON[SponsorDetectionJob](ctx, c, "/sponsor-detection-jobs", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create sponsor detection job: %w", err)
	}
	return &job, nil
}
