package api

import (
	"context"
	"fmt"
	"strconv"
)

// VideoUpdateListParams filters ListVideoUpdates.
type VideoUpdateListParams struct {
	ListParams
	VideoID string
	Field   string
}

// ListVideoUpdates retrieves audited field changes on videos.
func (c *Client) ListVideoUpdates(ctx context.Context, params VideoUpdateListParams) (*List[VideoUpdate], error) {
	query := params.values()
	setString(query, "video_id", params.VideoID)
	setString(query, "field", params.Field)

	list, err := getJSON[List[VideoUpdate]](ctx, c, "/video-updates", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list video updates: %w", err)
	}
	return &list, nil
}

// GetVideoUpdate retrieves one audited change by id.
func (c *Client) GetVideoUpdate(ctx context.Context, id int64) (*VideoUpdate, error) {
	update, err := getJSON[VideoUpdate](ctx, c, "/video-updates/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video update %d: %w", id, err)
	}
	return &update, nil
}
