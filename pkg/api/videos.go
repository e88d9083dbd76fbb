package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// VideoListParams filters ListVideos.
type VideoListParams struct {
	ListParams
	ChannelID      string
	Title          string
	PublishedAfter *time.Time
}

// ListVideos retrieves tracked videos.
func (c *Client) ListVideos(ctx context.Context, params VideoListParams) (*List[Video], error) {
	query := params.values()
	setString(query, "channel_id", params.ChannelID)
	setString(query, "title", params.Title)
	setTime(query, "published_after", params.PublishedAfter)

	list, err := getJSON[List[Video]](ctx, c, "/videos", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return &list, nil
}

// GetVideo retrieves one video by id.
func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	video, err := getJSON[Video](ctx, c, "/videos/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", id, err)
	}
	return &video, nil
}

// DeleteVideo removes one video by id.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	if err := c.del(ctx, "/videos/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete video %s: %w", id, err)
	}
	return nil
}

// GetVideoEnrichment retrieves the enrichment metadata stored for a video.
func (c *Client) GetVideoEnrichment(ctx context.Context, id string) (*VideoEnrichment, error) {
	enrichment, err := getJSON[VideoEnrichment](ctx, c, "/videos/"+url.PathEscape(id)+"/enrichment", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrichment for video %s: %w", id, err)
	}
	return &enrichment, nil
}

// EnqueueVideoEnrichment asks the server to schedule a fresh enrichment job
// for a video.
func (c *Client) EnqueueVideoEnrichment(ctx context.Context, id string) (*Job, error) {
	job, err := postJSON[Job](ctx, c, "/videos/"+url.PathEscape(id)+"/enrichment", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue enrichment for video %s: %w", id, err)
	}
	return &job, nil
}
