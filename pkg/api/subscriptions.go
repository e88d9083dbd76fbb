package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// SubscriptionListParams filters ListSubscriptions.
type SubscriptionListParams struct {
	ListParams
	Status    string
	ChannelID string
}

// CreateSubscriptionRequest is the payload for CreateSubscription. A zero
// LeaseSeconds lets the hub pick its default lease.
type CreateSubscriptionRequest struct {
	ChannelID    string `json:"channel_id" validate:"required"`
	LeaseSeconds int64  `json:"lease_seconds,omitempty" validate:"min=0"`
}

// ListSubscriptions retrieves push-hub leases.
func (c *Client) ListSubscriptions(ctx context.Context, params SubscriptionListParams) (*List[Subscription], error) {
	query := params.values()
	setString(query, "status", params.Status)
	setString(query, "channel_id", params.ChannelID)

	list, err := getJSON[List[Subscription]](ctx, c, "/subscriptions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return &list, nil
}

// GetSubscription retrieves one lease by id.
func (c *Client) GetSubscription(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := getJSON[Subscription](ctx, c, "/subscriptions/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription %d: %w", id, err)
	}
	return &sub, nil
}

// CreateSubscription asks the server to open a push-hub lease for a channel.
func (c *Client) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	sub, err := postJSON[Subscription](ctx, c, "/subscriptions", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &sub, nil
}

// DeleteSubscription cancels a lease by id. The server handles the hub
// unsubscribe handshake.
func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/subscriptions/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete subscription %d: %w", id, err)
	}
	return nil
}
