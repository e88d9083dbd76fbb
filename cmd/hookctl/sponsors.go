package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const (
	resourceSponsors      = "sponsors"
	resourceSponsorVideos = "sponsor-videos"
)

func sponsorColumns() []render.Column[api.Sponsor] {
	return []render.Column[api.Sponsor]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(s api.Sponsor) string { return formatInt64(s.ID) }},
		{ID: "name", Title: "Name", Sortable: true, Value: func(s api.Sponsor) string { return s.Name }},
		{ID: "website", Title: "Website", DefaultHidden: true, Value: func(s api.Sponsor) string { return formatStringPtr(s.Website) }},
		{ID: "keywords", Title: "Keywords", Value: func(s api.Sponsor) string { return formatKeywords(s.Keywords) }},
		{ID: "created", Title: "Created", DefaultHidden: true, Sortable: true, Value: func(s api.Sponsor) string { return formatTime(s.CreatedAt) }},
		{ID: "updated", Title: "Updated", DefaultHidden: true, Sortable: true, Value: func(s api.Sponsor) string { return formatTime(s.UpdatedAt) }},
	}
}

func sponsorVideoColumns() []render.Column[api.SponsorVideo] {
	return []render.Column[api.SponsorVideo]{
		{ID: "video", Title: "Video", Sortable: true, Value: func(v api.SponsorVideo) string { return v.VideoID }},
		{ID: "channel", Title: "Channel", Sortable: true, Value: func(v api.SponsorVideo) string { return v.ChannelID }},
		{ID: "title", Title: "Title", Sortable: true, Value: func(v api.SponsorVideo) string { return v.Title }},
		{ID: "confidence", Title: "Confidence", Sortable: true, Value: func(v api.SponsorVideo) string { return strconv.FormatFloat(v.Confidence, 'f', 2, 64) }},
		{ID: "detected", Title: "Detected", Sortable: true, Value: func(v api.SponsorVideo) string { return formatTime(v.DetectedAt) }},
	}
}

func sponsorFields(s *api.Sponsor) [][2]string {
	return [][2]string{
		{"ID", formatInt64(s.ID)},
		{"Name", s.Name},
		{"Website", formatStringPtr(s.Website)},
		{"Keywords", formatKeywords(s.Keywords)},
		{"Created", formatTime(s.CreatedAt)},
		{"Updated", formatTime(s.UpdatedAt)},
	}
}

func newSponsorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sponsors",
		Short: "Manage known sponsors and their detected placements",
	}
	cmd.AddCommand(newSponsorsListCmd(a))
	cmd.AddCommand(newSponsorsGetCmd(a))
	cmd.AddCommand(newSponsorsCreateCmd(a))
	cmd.AddCommand(newSponsorsUpdateCmd(a))
	cmd.AddCommand(newSponsorsDeleteCmd(a))
	cmd.AddCommand(newSponsorsVideosCmd(a))
	return cmd
}

func newSponsorsListCmd(a *app) *cobra.Command {
	var flags listFlags
	var name string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known sponsors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.SponsorListParams{
				ListParams: flags.listParams(),
				Name:       name,
			}
			page := &listPage[api.Sponsor]{
				app:   a,
				flags: &flags,
				table: render.Table[api.Sponsor]{
					Resource: resourceSponsors,
					Columns:  sponsorColumns(),
					RowID:    func(s api.Sponsor) string { return formatInt64(s.ID) },
					Detail: func(ctx context.Context, s api.Sponsor) (string, error) {
						videos, err := client.ListSponsorVideos(ctx, s.ID, api.ListParams{Limit: 1})
						if err != nil {
							return "", err
						}
						return fmt.Sprintf("detected in %d videos", videos.Total), nil
					},
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.Sponsor], error) {
					return client.ListSponsors(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	addExpandFlag(cmd, &flags)
	cmd.Flags().StringVar(&name, "name", "", "Filter by name substring")
	return cmd
}

func newSponsorsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one sponsor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sponsor id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceSponsors, map[string]int64{"id": id},
				func(ctx context.Context) (*api.Sponsor, error) {
					return client.GetSponsor(ctx, id)
				}, sponsorFields)
		},
	}
}

func sponsorRequestFlags(cmd *cobra.Command, req *api.SponsorRequest) {
	cmd.Flags().StringVar(&req.Name, "name", "", "Sponsor name (required)")
	cmd.Flags().StringVar(&req.Website, "website", "", "Sponsor website")
	cmd.Flags().StringSliceVar(&req.Keywords, "keywords", nil, "Detection keywords")
}

func newSponsorsCreateCmd(a *app) *cobra.Command {
	var req api.SponsorRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a sponsor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			sponsor, err := client.CreateSponsor(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.invalidate(resourceSponsors)
			return a.writeDetails(sponsor, sponsorFields(sponsor))
		},
	}
	sponsorRequestFlags(cmd, &req)
	return cmd
}

func newSponsorsUpdateCmd(a *app) *cobra.Command {
	var req api.SponsorRequest
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a sponsor's definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sponsor id %q", args[0])
			}
			sponsor, err := client.UpdateSponsor(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			a.invalidate(resourceSponsors)
			return a.writeDetails(sponsor, sponsorFields(sponsor))
		},
	}
	sponsorRequestFlags(cmd, &req)
	return cmd
}

func newSponsorsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a sponsor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sponsor id %q", args[0])
			}
			return a.runDelete(cmd.Context(), resourceSponsors, fmt.Sprintf("sponsor %d", id), yes,
				func(ctx context.Context) error {
					return client.DeleteSponsor(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newSponsorsVideosCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "videos <id>",
		Short: "List videos where a sponsor was detected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sponsor id %q", args[0])
			}
			params := struct {
				SponsorID int64
				api.ListParams
			}{SponsorID: id, ListParams: flags.listParams()}
			page := &listPage[api.SponsorVideo]{
				app:   a,
				flags: &flags,
				table: render.Table[api.SponsorVideo]{
					Resource: resourceSponsorVideos,
					Columns:  sponsorVideoColumns(),
					RowID:    func(v api.SponsorVideo) string { return v.VideoID },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.SponsorVideo], error) {
					return client.ListSponsorVideos(ctx, id, params.ListParams)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	return cmd
}
