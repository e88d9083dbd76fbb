package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceSubscriptions = "subscriptions"

func subscriptionColumns() []render.Column[api.Subscription] {
	return []render.Column[api.Subscription]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(s api.Subscription) string { return formatInt64(s.ID) }},
		{ID: "channel", Title: "Channel", Sortable: true, Value: func(s api.Subscription) string { return s.ChannelID }},
		{ID: "status", Title: "Status", Sortable: true, Value: func(s api.Subscription) string { return string(s.Status) }},
		{ID: "lease", Title: "Lease (s)", Sortable: true, Value: func(s api.Subscription) string { return formatInt64(s.LeaseSeconds) }},
		{ID: "expires", Title: "Expires", Sortable: true, Value: func(s api.Subscription) string { return formatTimePtr(s.ExpiresAt) }},
		{ID: "created", Title: "Created", DefaultHidden: true, Sortable: true, Value: func(s api.Subscription) string { return formatTime(s.CreatedAt) }},
		{ID: "updated", Title: "Updated", DefaultHidden: true, Sortable: true, Value: func(s api.Subscription) string { return formatTime(s.UpdatedAt) }},
	}
}

func subscriptionFields(s *api.Subscription) [][2]string {
	return [][2]string{
		{"ID", formatInt64(s.ID)},
		{"Channel", s.ChannelID},
		{"Status", string(s.Status)},
		{"Lease (s)", formatInt64(s.LeaseSeconds)},
		{"Expires", formatTimePtr(s.ExpiresAt)},
		{"Created", formatTime(s.CreatedAt)},
		{"Updated", formatTime(s.UpdatedAt)},
	}
}

func newSubscriptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Manage push-hub leases",
	}
	cmd.AddCommand(newSubscriptionsListCmd(a))
	cmd.AddCommand(newSubscriptionsGetCmd(a))
	cmd.AddCommand(newSubscriptionsCreateCmd(a))
	cmd.AddCommand(newSubscriptionsDeleteCmd(a))
	return cmd
}

func newSubscriptionsListCmd(a *app) *cobra.Command {
	var flags listFlags
	var filter struct {
		status    string
		channelID string
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List push-hub leases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.SubscriptionListParams{
				ListParams: flags.listParams(),
				Status:     filter.status,
				ChannelID:  filter.channelID,
			}
			page := &listPage[api.Subscription]{
				app:   a,
				flags: &flags,
				table: render.Table[api.Subscription]{
					Resource: resourceSubscriptions,
					Columns:  subscriptionColumns(),
					RowID:    func(s api.Subscription) string { return formatInt64(s.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.Subscription], error) {
					return client.ListSubscriptions(ctx, params)
				},
			}
			return page.run(cmd.Context(), nil)
		},
	}
	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&filter.status, "status", "", "Filter by status (pending|active|expired|failed|unsubscribed)")
	cmd.Flags().StringVar(&filter.channelID, "channel-id", "", "Filter by channel id")
	return cmd
}

func newSubscriptionsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one push-hub lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceSubscriptions, map[string]int64{"id": id},
				func(ctx context.Context) (*api.Subscription, error) {
					return client.GetSubscription(ctx, id)
				}, subscriptionFields)
		},
	}
}

func newSubscriptionsCreateCmd(a *app) *cobra.Command {
	var req api.CreateSubscriptionRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a push-hub lease for a channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			sub, err := client.CreateSubscription(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.invalidate(resourceSubscriptions)
			return a.writeDetails(sub, subscriptionFields(sub))
		},
	}
	cmd.Flags().StringVar(&req.ChannelID, "channel-id", "", "Channel id (required)")
	cmd.Flags().Int64Var(&req.LeaseSeconds, "lease-seconds", 0, "Requested lease length; 0 lets the hub decide")
	return cmd
}

func newSubscriptionsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel a push-hub lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id %q", args[0])
			}
			return a.runDelete(cmd.Context(), resourceSubscriptions, fmt.Sprintf("subscription %d", id), yes,
				func(ctx context.Context) error {
					return client.DeleteSubscription(ctx, id)
				})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
