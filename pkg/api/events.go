package api

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// WebhookEventListParams filters ListWebhookEvents.
type WebhookEventListParams struct {
	ListParams
	ChannelID string
	VideoID   string
	EventType string
	Status    string
	Since     *time.Time
}

// ListWebhookEvents retrieves recorded webhook events.
func (c *Client) ListWebhookEvents(ctx context.Context, params WebhookEventListParams) (*List[WebhookEvent], error) {
	query := params.values()
	setString(query, "channel_id", params.ChannelID)
	setString(query, "video_id", params.VideoID)
	setString(query, "event_type", params.EventType)
	setString(query, "status", params.Status)
	setTime(query, "since", params.Since)

	list, err := getJSON[List[WebhookEvent]](ctx, c, "/webhook-events", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook events: %w", err)
	}
	return &list, nil
}

// GetWebhookEvent retrieves one webhook event by id.
func (c *Client) GetWebhookEvent(ctx context.Context, id int64) (*WebhookEvent, error) {
	event, err := getJSON[WebhookEvent](ctx, c, "/webhook-events/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch webhook event %d: %w", id, err)
	}
	return &event, nil
}

// DeleteWebhookEvent removes one webhook event by id.
func (c *Client) DeleteWebhookEvent(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/webhook-events/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete webhook event %d: %w", id, err)
	}
	return nil
}
