package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceEvents = "webhook-events"

func eventColumns() []render.Column[api.WebhookEvent] {
	return []render.Column[api.WebhookEvent]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(e api.WebhookEvent) string { return formatInt64(e.ID) }},
		{ID: "channel", Title: "Channel", Sortable: true, Value: func(e api.WebhookEvent) string { return e.ChannelID }},
		{ID: "video", Title: "Video", Sortable: true, Value: func(e api.WebhookEvent) string { return e.VideoID }},
		{ID: "type", Title: "Type", Sortable: true, Value: func(e api.WebhookEvent) string { return e.EventType }},
		{ID: "status", Title: "Status", Sortable: true, Value: func(e api.WebhookEvent) string { return e.Status }},
		{ID: "received", Title: "Received", Sortable: true, Value: func(e api.WebhookEvent) string { return formatTime(e.ReceivedAt) }},
		{ID: "processed", Title: "Processed", DefaultHidden: true, Value: func(e api.WebhookEvent) string { return formatTimePtr(e.ProcessedAt) }},
		{ID: "error", Title: "Error", DefaultHidden: true, Value: func(e api.WebhookEvent) string { return formatStringPtr(e.Error) }},
	}
}

func eventFields(e *api.WebhookEvent) [][2]string {
	return [][2]string{
		{"ID", formatInt64(e.ID)},
		{"Channel", e.ChannelID},
		{"Video", e.VideoID},
		{"Type", e.EventType},
		{"Status", e.Status},
		{"Error", formatStringPtr(e.Error)},
		{"Received", formatTime(e.ReceivedAt)},
		{"Processed", formatTimePtr(e.ProcessedAt)},
	}
}

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"webhook-events"},
		Short:   "Inspect received webhook notifications",
	}
	cmd.AddCommand(newEventsListCmd(a))
	cmd.AddCommand(newEventsGetCmd(a))
	cmd.AddCommand(newEventsDeleteCmd(a))
	return cmd
}

func newEventsListCmd(a *app) *cobra.Command {
	var flags listFlags
	var filter struct {
		channelID string
		videoID   string
		eventType string
		status    string
		since     time.Duration
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhook events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.WebhookEventListParams{
				ListParams: flags.listParams(),
				ChannelID:  filter.channelID,
				VideoID:    filter.videoID,
				EventType:  filter.eventType,
				Status:     filter.status,
			}
			if filter.since > 0 {
				since := time.Now().Add(-filter.since).UTC()
				params.Since = &since
			}
			page := &listPage[api.WebhookEvent]{
				app:   a,
				flags: &flags,
				table: render.Table[api.WebhookEvent]{
					Resource: resourceEvents,
					Columns:  eventColumns(),
					RowID:    func(e api.WebhookEvent) string { return formatInt64(e.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.WebhookEvent], error) {
					return client.ListWebhookEvents(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&filter.channelID, "channel-id", "", "Filter by channel id")
	cmd.Flags().StringVar(&filter.videoID, "video-id", "", "Filter by video id")
	cmd.Flags().StringVar(&filter.eventType, "event-type", "", "Filter by event type")
	cmd.Flags().StringVar(&filter.status, "status", "", "Filter by processing status")
	cmd.Flags().DurationVar(&filter.since, "since", 0, "Only events received within this duration (e.g. 24h)")
	return cmd
}

func newEventsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one webhook event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceEvents, map[string]int64{"id": id},
				func(ctx context.Context) (*api.WebhookEvent, error) {
					return client.GetWebhookEvent(ctx, id)
				}, eventFields)
		},
	}
}

func newEventsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one webhook event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			return a.runDelete(cmd.Context(), resourceEvents, fmt.Sprintf("webhook event %d", id), yes,
				func(ctx context.Context) error {
					return client.DeleteWebhookEvent(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
