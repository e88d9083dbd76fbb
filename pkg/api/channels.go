package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// ChannelListParams filters ListChannels.
type ChannelListParams struct {
	ListParams
	Title      string
	ChannelID  string
	Subscribed *bool
}

// CreateChannelRequest is the payload for CreateChannel.
type CreateChannelRequest struct {
	ID    string `json:"id"    validate:"required"`
	Title string `json:"title" validate:"required"`
}

// CreateChannelFromURLRequest is the payload for CreateChannelFromURL. The
// server resolves the channel id and title from the page itself.
type CreateChannelFromURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// UpdateChannelRequest is the full-replacement payload for UpdateChannel.
type UpdateChannelRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Subscribed  bool    `json:"subscribed"`
}

// ListChannels retrieves tracked channels.
func (c *Client) ListChannels(ctx context.Context, params ChannelListParams) (*List[Channel], error) {
	query := params.values()
	setString(query, "title", params.Title)
	setString(query, "channel_id", params.ChannelID)
	setBool(query, "subscribed", params.Subscribed)

	list, err := getJSON[List[Channel]](ctx, c, "/channels", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return &list, nil
}

// GetChannel retrieves one channel by id.
func (c *Client) GetChannel(ctx context.Context, id string) (*Channel, error) {
	channel, err := getJSON[Channel](ctx, c, "/channels/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", id, err)
	}
	return &channel, nil
}

// CreateChannel registers a channel by id. The request is validated locally
// before anything is sent.
func (c *Client) CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	channel, err := postJSON[Channel](ctx, c, "/channels", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return &channel, nil
}

// CreateChannelFromURL registers a channel from a channel or video page URL.
func (c *Client) CreateChannelFromURL(ctx context.Context, req CreateChannelFromURLRequest) (*Channel, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	channel, err := postJSON[Channel](ctx, c, "/channels/from-url", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel from URL: %w", err)
	}
	return &channel, nil
}

// UpdateChannel replaces a channel's mutable fields.
func (c *Client) UpdateChannel(ctx context.Context, id string, req UpdateChannelRequest) (*Channel, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	channel, err := putJSON[Channel](ctx, c, "/channels/"+url.PathEscape(id), req)
	if err != nil {
		return nil, fmt.Errorf("failed to update channel %s: %w", id, err)
	}
	return &channel, nil
}

// SetChannelSubscribed flips only the subscribed flag, leaving the rest of
// the channel untouched.
func (c *Client) SetChannelSubscribed(ctx context.Context, id string, subscribed bool) (*Channel, error) {
	payload := map[string]bool{"subscribed": subscribed}
	channel, err := patchJSON[Channel](ctx, c, "/channels/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to update channel %s subscription flag: %w", id, err)
	}
	return &channel, nil
}

// DeleteChannel removes one channel by id.
func (c *Client) DeleteChannel(ctx context.Context, id string) error {
	if err := c.del(ctx, "/channels/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete channel %s: %w", id, err)
	}
	return nil
}

// GetChannelEnrichment retrieves the enrichment metadata stored for a channel.
func (c *Client) GetChannelEnrichment(ctx context.Context, id string) (*ChannelEnrichment, error) {
	enrichment, err := getJSON[ChannelEnrichment](ctx, c, "/channels/"+url.PathEscape(id)+"/enrichment", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrichment for channel %s: %w", id, err)
	}
	return &enrichment, nil
}

// EnqueueChannelEnrichment asks the server to schedule a fresh enrichment
// job for a channel.
func (c *Client) EnqueueChannelEnrichment(ctx context.Context, id string) (*Job, error) {
	job, err := postJSON[Job](ctx, c, "/channels/"+url.PathEscape(id)+"/enrichment", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue enrichment for channel %s: %w", id, err)
	}
	return &job, nil
}
