package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceVideoUpdates = "video-updates"

func videoUpdateColumns() []render.Column[api.VideoUpdate] {
	return []render.Column[api.VideoUpdate]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(u api.VideoUpdate) string { return formatInt64(u.ID) }},
		{ID: "video", Title: "Video", Sortable: true, Value: func(u api.VideoUpdate) string { return u.VideoID }},
		{ID: "field", Title: "Field", Sortable: true, Value: func(u api.VideoUpdate) string { return u.Field }},
		{ID: "old", Title: "Old Value", DefaultHidden: true, Value: func(u api.VideoUpdate) string { return formatStringPtr(u.OldValue) }},
		{ID: "new", Title: "New Value", Value: func(u api.VideoUpdate) string { return formatStringPtr(u.NewValue) }},
		{ID: "updated", Title: "Updated", Sortable: true, Value: func(u api.VideoUpdate) string { return formatTime(u.UpdatedAt) }},
	}
}

func videoUpdateFields(u *api.VideoUpdate) [][2]string {
	return [][2]string{
		{"ID", formatInt64(u.ID)},
		{"Video", u.VideoID},
		{"Field", u.Field},
		{"Old Value", formatStringPtr(u.OldValue)},
		{"New Value", formatStringPtr(u.NewValue)},
		{"Updated", formatTime(u.UpdatedAt)},
	}
}

func newVideoUpdatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "video-updates",
		Aliases: []string{"updates"},
		Short:   "Inspect audited field changes on videos",
	}
	cmd.AddCommand(newVideoUpdatesListCmd(a))
	cmd.AddCommand(newVideoUpdatesGetCmd(a))
	return cmd
}

func newVideoUpdatesListCmd(a *app) *cobra.Command {
	var flags listFlags
	var filter struct {
		videoID string
		field   string
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded video field changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.VideoUpdateListParams{
				ListParams: flags.listParams(),
				VideoID:    filter.videoID,
				Field:      filter.field,
			}
			page := &listPage[api.VideoUpdate]{
				app:   a,
				flags: &flags,
				table: render.Table[api.VideoUpdate]{
					Resource: resourceVideoUpdates,
					Columns:  videoUpdateColumns(),
					RowID:    func(u api.VideoUpdate) string { return formatInt64(u.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.VideoUpdate], error) {
					return client.ListVideoUpdates(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&filter.videoID, "video-id", "", "Filter by video id")
	cmd.Flags().StringVar(&filter.field, "field", "", "Filter by changed field name")
	return cmd
}

func newVideoUpdatesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one recorded field change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid video update id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceVideoUpdates, map[string]int64{"id": id},
				func(ctx context.Context) (*api.VideoUpdate, error) {
					return client.GetVideoUpdate(ctx, id)
				}, videoUpdateFields)
		},
	}
}
