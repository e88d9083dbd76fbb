package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceVideos = "videos"

func videoColumns() []render.Column[api.Video] {
	return []render.Column[api.Video]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(v api.Video) string { return v.ID }},
		{ID: "channel", Title: "Channel", Sortable: true, Value: func(v api.Video) string { return v.ChannelID }},
		{ID: "title", Title: "Title", Sortable: true, Value: func(v api.Video) string { return v.Title }},
		{ID: "published", Title: "Published", Sortable: true, Value: func(v api.Video) string { return formatTime(v.PublishedAt) }},
		{ID: "description", Title: "Description", DefaultHidden: true, Value: func(v api.Video) string { return formatStringPtr(v.Description) }},
		{ID: "created", Title: "Created", DefaultHidden: true, Sortable: true, Value: func(v api.Video) string { return formatTime(v.CreatedAt) }},
		{ID: "updated", Title: "Updated", DefaultHidden: true, Sortable: true, Value: func(v api.Video) string { return formatTime(v.UpdatedAt) }},
	}
}

func videoFields(v *api.Video) [][2]string {
	return [][2]string{
		{"ID", v.ID},
		{"Channel", v.ChannelID},
		{"Title", v.Title},
		{"Description", formatStringPtr(v.Description)},
		{"Published", formatTime(v.PublishedAt)},
		{"Created", formatTime(v.CreatedAt)},
		{"Updated", formatTime(v.UpdatedAt)},
	}
}

func videoEnrichmentFields(e *api.VideoEnrichment) [][2]string {
	return [][2]string{
		{"Video", e.VideoID},
		{"Duration", formatStringPtr(e.Duration)},
		{"Views", formatInt64(e.ViewCount)},
		{"Likes", formatInt64(e.LikeCount)},
		{"Comments", formatInt64(e.CommentCount)},
		{"Tags", formatKeywords(e.Tags)},
		{"Enriched", formatTime(e.EnrichedAt)},
	}
}

func newVideosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage tracked videos",
	}
	cmd.AddCommand(newVideosListCmd(a))
	cmd.AddCommand(newVideosGetCmd(a))
	cmd.AddCommand(newVideosDeleteCmd(a))
	cmd.AddCommand(newVideosEnrichmentCmd(a))
	cmd.AddCommand(newVideosEnrichCmd(a))
	return cmd
}

func newVideosListCmd(a *app) *cobra.Command {
	var flags listFlags
	var filter struct {
		channelID      string
		title          string
		publishedAfter time.Duration
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.VideoListParams{
				ListParams: flags.listParams(),
				ChannelID:  filter.channelID,
				Title:      filter.title,
			}
			if filter.publishedAfter > 0 {
				after := time.Now().Add(-filter.publishedAfter).UTC()
				params.PublishedAfter = &after
			}
			page := &listPage[api.Video]{
				app:   a,
				flags: &flags,
				table: render.Table[api.Video]{
					Resource: resourceVideos,
					Columns:  videoColumns(),
					RowID:    func(v api.Video) string { return v.ID },
					Detail: func(ctx context.Context, v api.Video) (string, error) {
						enrichment, err := client.GetVideoEnrichment(ctx, v.ID)
						if err != nil {
							return "", err
						}
						return fmt.Sprintf("views %s, likes %s, comments %s, duration %s",
							formatInt64(enrichment.ViewCount),
							formatInt64(enrichment.LikeCount),
							formatInt64(enrichment.CommentCount),
							formatStringPtr(enrichment.Duration)), nil
					},
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.Video], error) {
					return client.ListVideos(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	addExpandFlag(cmd, &flags)
	cmd.Flags().StringVar(&filter.channelID, "channel-id", "", "Filter by channel id")
	cmd.Flags().StringVar(&filter.title, "title", "", "Filter by title substring")
	cmd.Flags().DurationVar(&filter.publishedAfter, "published-within", 0, "Only videos published within this duration (e.g. 168h)")
	return cmd
}

func newVideosGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <video-id>",
		Short: "Show one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return runGet(cmd.Context(), a, resourceVideos, map[string]string{"id": id},
				func(ctx context.Context) (*api.Video, error) {
					return client.GetVideo(ctx, id)
				}, videoFields)
		},
	}
}

func newVideosDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <video-id>",
		Short: "Stop tracking a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return a.runDelete(cmd.Context(), resourceVideos, fmt.Sprintf("video %s", id), yes,
				func(ctx context.Context) error {
					return client.DeleteVideo(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newVideosEnrichmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enrichment <video-id>",
		Short: "Show the stored platform metadata for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return runGet(cmd.Context(), a, resourceVideos, map[string]string{"enrichment": id},
				func(ctx context.Context) (*api.VideoEnrichment, error) {
					return client.GetVideoEnrichment(ctx, id)
				}, videoEnrichmentFields)
		},
	}
}

func newVideosEnrichCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich <video-id>",
		Short: "Enqueue an enrichment job for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			job, err := client.EnqueueVideoEnrichment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.invalidate(resourceJobs)
			fmt.Fprintf(a.stdout, "Enqueued enrichment job %d for video %s.\n", job.ID, args[0])
			return nil
		},
	}
}
