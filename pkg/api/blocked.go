package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// BlockedVideoListParams filters ListBlockedVideos.
type BlockedVideoListParams struct {
	ListParams
	VideoID string
}

// CreateBlockedVideoRequest is the payload for CreateBlockedVideo.
type CreateBlockedVideoRequest struct {
	VideoID   string `json:"video_id" validate:"required"`
	Reason    string `json:"reason"   validate:"required"`
	CreatedBy string `json:"created_by,omitempty"`
}

// ListBlockedVideos retrieves the videos whose events the pipeline rejects.
func (c *Client) ListBlockedVideos(ctx context.Context, params BlockedVideoListParams) (*List[BlockedVideo], error) {
	query := params.values()
	setString(query, "video_id", params.VideoID)

	list, err := getJSON[List[BlockedVideo]](ctx, c, "/blocked-videos", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked videos: %w", err)
	}
	return &list, nil
}

// CreateBlockedVideo adds a video to the block list.
func (c *Client) CreateBlockedVideo(ctx context.Context, req CreateBlockedVideoRequest) (*BlockedVideo, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	blocked, err := postJSON[BlockedVideo](ctx, c, "/blocked-videos", req)
	if err != nil {
		return nil, fmt.Errorf("failed to block video: %w", err)
	}
	return &blocked, nil
}

// DeleteBlockedVideo removes a block-list entry by id.
func (c *Client) DeleteBlockedVideo(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/blocked-videos/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to unblock video %d: %w", id, err)
	}
	return nil
}
