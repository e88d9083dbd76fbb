package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceChannels = "channels"

func channelColumns() []render.Column[api.Channel] {
	return []render.Column[api.Channel]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(c api.Channel) string { return c.ID }},
		{ID: "title", Title: "Title", Sortable: true, Value: func(c api.Channel) string { return c.Title }},
		{ID: "subscribed", Title: "Subscribed", Sortable: true, Value: func(c api.Channel) string { return formatBool(c.Subscribed) }},
		{ID: "videos", Title: "Videos", Sortable: true, Value: func(c api.Channel) string { return formatInt64(c.VideoCount) }},
		{ID: "description", Title: "Description", DefaultHidden: true, Value: func(c api.Channel) string { return formatStringPtr(c.Description) }},
		{ID: "created", Title: "Created", DefaultHidden: true, Sortable: true, Value: func(c api.Channel) string { return formatTime(c.CreatedAt) }},
		{ID: "updated", Title: "Updated", DefaultHidden: true, Sortable: true, Value: func(c api.Channel) string { return formatTime(c.UpdatedAt) }},
	}
}

func channelFields(c *api.Channel) [][2]string {
	return [][2]string{
		{"ID", c.ID},
		{"Title", c.Title},
		{"Description", formatStringPtr(c.Description)},
		{"Subscribed", formatBool(c.Subscribed)},
		{"Videos", formatInt64(c.VideoCount)},
		{"Created", formatTime(c.CreatedAt)},
		{"Updated", formatTime(c.UpdatedAt)},
	}
}

func channelEnrichmentFields(e *api.ChannelEnrichment) [][2]string {
	return [][2]string{
		{"Channel", e.ChannelID},
		{"Subscribers", formatInt64(e.SubscriberCount)},
		{"Videos", formatInt64(e.VideoCount)},
		{"Views", formatInt64(e.ViewCount)},
		{"Country", formatStringPtr(e.Country)},
		{"Custom URL", formatStringPtr(e.CustomURL)},
		{"Enriched", formatTime(e.EnrichedAt)},
	}
}

func newChannelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Manage tracked channels",
	}
	cmd.AddCommand(newChannelsListCmd(a))
	cmd.AddCommand(newChannelsGetCmd(a))
	cmd.AddCommand(newChannelsCreateCmd(a))
	cmd.AddCommand(newChannelsImportCmd(a))
	cmd.AddCommand(newChannelsUpdateCmd(a))
	cmd.AddCommand(newChannelsSubscribeCmd(a, true))
	cmd.AddCommand(newChannelsSubscribeCmd(a, false))
	cmd.AddCommand(newChannelsDeleteCmd(a))
	cmd.AddCommand(newChannelsEnrichmentCmd(a))
	cmd.AddCommand(newChannelsEnrichCmd(a))
	return cmd
}

func newChannelsListCmd(a *app) *cobra.Command {
	var flags listFlags
	var filter struct {
		title        string
		channelID    string
		subscribed   bool
		unsubscribed bool
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			if filter.subscribed && filter.unsubscribed {
				return fmt.Errorf("--subscribed and --unsubscribed are mutually exclusive")
			}
			params := api.ChannelListParams{
				ListParams: flags.listParams(),
				Title:      filter.title,
				ChannelID:  filter.channelID,
			}
			if filter.subscribed {
				yes := true
				params.Subscribed = &yes
			}
			if filter.unsubscribed {
				no := false
				params.Subscribed = &no
			}
			page := &listPage[api.Channel]{
				app:   a,
				flags: &flags,
				table: render.Table[api.Channel]{
					Resource: resourceChannels,
					Columns:  channelColumns(),
					RowID:    func(c api.Channel) string { return c.ID },
					Detail: func(ctx context.Context, c api.Channel) (string, error) {
						enrichment, err := client.GetChannelEnrichment(ctx, c.ID)
						if err != nil {
							return "", err
						}
						return fmt.Sprintf("subscribers %s, videos %s, views %s, enriched %s",
							formatInt64(enrichment.SubscriberCount),
							formatInt64(enrichment.VideoCount),
							formatInt64(enrichment.ViewCount),
							formatTime(enrichment.EnrichedAt)), nil
					},
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.Channel], error) {
					return client.ListChannels(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	addExpandFlag(cmd, &flags)
	cmd.Flags().StringVar(&filter.title, "title", "", "Filter by title substring")
	cmd.Flags().StringVar(&filter.channelID, "channel-id", "", "Filter by channel id")
	cmd.Flags().BoolVar(&filter.subscribed, "subscribed", false, "Only channels with an active subscription")
	cmd.Flags().BoolVar(&filter.unsubscribed, "unsubscribed", false, "Only channels without an active subscription")
	return cmd
}

func newChannelsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <channel-id>",
		Short: "Show one channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return runGet(cmd.Context(), a, resourceChannels, map[string]string{"id": id},
				func(ctx context.Context) (*api.Channel, error) {
					return client.GetChannel(ctx, id)
				}, channelFields)
		},
	}
}

func newChannelsCreateCmd(a *app) *cobra.Command {
	var req api.CreateChannelRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Track a channel by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			channel, err := client.CreateChannel(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.invalidate(resourceChannels)
			return a.writeDetails(channel, channelFields(channel))
		},
	}
	cmd.Flags().StringVar(&req.ID, "id", "", "Channel id (required)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Channel title (required)")
	return cmd
}

func newChannelsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <url>",
		Short: "Track a channel by page URL; the server resolves id and title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			channel, err := client.CreateChannelFromURL(cmd.Context(), api.CreateChannelFromURLRequest{URL: args[0]})
			if err != nil {
				return err
			}
			a.invalidate(resourceChannels)
			return a.writeDetails(channel, channelFields(channel))
		},
	}
}

// newChannelsUpdateCmd reads the current channel and applies only the flags
// that were set, since the endpoint is a full replacement.
func newChannelsUpdateCmd(a *app) *cobra.Command {
	var edits struct {
		title       string
		description string
		subscribed  bool
	}
	cmd := &cobra.Command{
		Use:   "update <channel-id>",
		Short: "Update a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			current, err := client.GetChannel(cmd.Context(), id)
			if err != nil {
				return err
			}
			req := api.UpdateChannelRequest{
				Title:       current.Title,
				Description: current.Description,
				Subscribed:  current.Subscribed,
			}
			if cmd.Flags().Changed("title") {
				req.Title = edits.title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &edits.description
			}
			if cmd.Flags().Changed("subscribed") {
				req.Subscribed = edits.subscribed
			}
			channel, err := client.UpdateChannel(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			a.invalidate(resourceChannels)
			return a.writeDetails(channel, channelFields(channel))
		},
	}
	cmd.Flags().StringVar(&edits.title, "title", "", "New title")
	cmd.Flags().StringVar(&edits.description, "description", "", "New description")
	cmd.Flags().BoolVar(&edits.subscribed, "subscribed", false, "Desired subscription state")
	return cmd
}

func newChannelsSubscribeCmd(a *app, subscribe bool) *cobra.Command {
	use, short := "subscribe <channel-id>", "Mark a channel for push-hub subscription"
	if !subscribe {
		use, short = "unsubscribe <channel-id>", "Clear a channel's push-hub subscription"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			channel, err := client.SetChannelSubscribed(cmd.Context(), args[0], subscribe)
			if err != nil {
				return err
			}
			a.invalidate(resourceChannels)
			return a.writeDetails(channel, channelFields(channel))
		},
	}
}

func newChannelsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <channel-id>",
		Short: "Stop tracking a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return a.runDelete(cmd.Context(), resourceChannels, fmt.Sprintf("channel %s", id), yes,
				func(ctx context.Context) error {
					return client.DeleteChannel(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newChannelsEnrichmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enrichment <channel-id>",
		Short: "Show the stored platform metadata for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id := args[0]
			return runGet(cmd.Context(), a, resourceChannels, map[string]string{"enrichment": id},
				func(ctx context.Context) (*api.ChannelEnrichment, error) {
					return client.GetChannelEnrichment(ctx, id)
				}, channelEnrichmentFields)
		},
	}
}

func newChannelsEnrichCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich <channel-id>",
		Short: "Enqueue an enrichment job for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			job, err := client.EnqueueChannelEnrichment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.invalidate(resourceJobs)
			fmt.Fprintf(a.stdout, "Enqueued enrichment job %d for channel %s.\n", job.ID, args[0])
			return nil
		},
	}
}
