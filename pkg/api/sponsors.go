package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// SponsorListParams filters ListSponsors.
type SponsorListParams struct {
	ListParams
	Name string
}

// SponsorRequest is the payload for CreateSponsor and UpdateSponsor.
type SponsorRequest struct {
	Name     string   `json:"name" validate:"required"`
	Website  string   `json:"website,omitempty" validate:"omitempty,url"`
	Keywords []string `json:"keywords,omitempty"`
}

// ListSponsors retrieves known sponsors.
func (c *Client) ListSponsors(ctx context.Context, params SponsorListParams) (*List[Sponsor], error) {
	query := params.values()
	setString(query, "name", params.Name)

	list, err := getJSON[List[Sponsor]](ctx, c, "/sponsors", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	return &list, nil
}

// GetSponsor retrieves one sponsor by id.
func (c *Client) GetSponsor(ctx context.Context, id int64) (*Sponsor, error) {
	sponsor, err := getJSON[Sponsor](ctx, c, "/sponsors/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sponsor %d: %w", id, err)
	}
	return &sponsor, nil
}

// CreateSponsor registers a sponsor.
func (c *Client) CreateSponsor(ctx context.Context, req SponsorRequest) (*Sponsor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	sponsor, err := postJSON[Sponsor](ctx, c, "/sponsors", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create sponsor: %w", err)
	}
	return &sponsor, nil
}

// UpdateSponsor replaces a sponsor's fields.
func (c *Client) UpdateSponsor(ctx context.Context, id int64, req SponsorRequest) (*Sponsor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request: %v", err)}
	}
	sponsor, err := putJSON[Sponsor](ctx, c, "/sponsors/"+strconv.FormatInt(id, 10), req)
	if err != nil {
		return nil, fmt.Errorf("failed to update sponsor %d: %w", id, err)
	}
	return &sponsor, nil
}

// DeleteSponsor removes one sponsor by id.
func (c *Client) DeleteSponsor(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/sponsors/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete sponsor %d: %w", id, err)
	}
	return nil
}

// ListSponsorVideos retrieves the videos a sponsor was detected in.
func (c *Client) ListSponsorVideos(ctx context.Context, id int64, params ListParams) (*List[SponsorVideo], error) {
	list, err := getJSON[List[SponsorVideo]](ctx, c, "/sponsors/"+strconv.FormatInt(id, 10)+"/videos", params.values())
	if err != nil {
		return nil, fmt.Errorf("failed to list videos for sponsor %d: %w", id, err)
	}
	return &list, nil
}
