package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceBlockedVideos = "blocked-videos"

func blockedVideoColumns() []render.Column[api.BlockedVideo] {
	return []render.Column[api.BlockedVideo]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(b api.BlockedVideo) string { return formatInt64(b.ID) }},
		{ID: "video", Title: "Video", Sortable: true, Value: func(b api.BlockedVideo) string { return b.VideoID }},
		{ID: "reason", Title: "Reason", Value: func(b api.BlockedVideo) string { return b.Reason }},
		{ID: "by", Title: "Blocked By", DefaultHidden: true, Value: func(b api.BlockedVideo) string { return formatStringPtr(b.CreatedBy) }},
		{ID: "created", Title: "Created", Sortable: true, Value: func(b api.BlockedVideo) string { return formatTime(b.CreatedAt) }},
	}
}

func blockedVideoFields(b *api.BlockedVideo) [][2]string {
	return [][2]string{
		{"ID", formatInt64(b.ID)},
		{"Video", b.VideoID},
		{"Reason", b.Reason},
		{"Blocked By", formatStringPtr(b.CreatedBy)},
		{"Created", formatTime(b.CreatedAt)},
	}
}

func newBlockedVideosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blocked-videos",
		Aliases: []string{"blocked"},
		Short:   "Manage the video blocklist",
	}
	cmd.AddCommand(newBlockedVideosListCmd(a))
	cmd.AddCommand(newBlockedVideosAddCmd(a))
	cmd.AddCommand(newBlockedVideosRemoveCmd(a))
	return cmd
}

func newBlockedVideosListCmd(a *app) *cobra.Command {
	var flags listFlags
	var videoID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocked videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.BlockedVideoListParams{
				ListParams: flags.listParams(),
				VideoID:    videoID,
			}
			page := &listPage[api.BlockedVideo]{
				app:   a,
				flags: &flags,
				table: render.Table[api.BlockedVideo]{
					Resource: resourceBlockedVideos,
					Columns:  blockedVideoColumns(),
					RowID:    func(b api.BlockedVideo) string { return formatInt64(b.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.BlockedVideo], error) {
					return client.ListBlockedVideos(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&videoID, "video-id", "", "Filter by video id")
	return cmd
}

func newBlockedVideosAddCmd(a *app) *cobra.Command {
	var req api.CreateBlockedVideoRequest
	cmd := &cobra.Command{
		Use:   "add <video-id>",
		Short: "Block a video's events from the ingestion pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			req.VideoID = args[0]
			blocked, err := client.CreateBlockedVideo(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.invalidate(resourceBlockedVideos)
			return a.writeDetails(blocked, blockedVideoFields(blocked))
		},
	}
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Why the video is blocked (required)")
	cmd.Flags().StringVar(&req.CreatedBy, "by", "", "Operator name recorded with the block")
	return cmd
}

func newBlockedVideosRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Unblock a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid blocked video id %q", args[0])
			}
			return a.runDelete(cmd.Context(), resourceBlockedVideos, fmt.Sprintf("blocked video %d", id), yes,
				func(ctx context.Context) error {
					return client.DeleteBlockedVideo(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
