package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceDetection = "sponsor-detection-jobs"

func detectionJobColumns() []render.Column[api.SponsorDetectionJob] {
	return []render.Column[api.SponsorDetectionJob]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(j api.SponsorDetectionJob) string { return formatInt64(j.ID) }},
		{ID: "video", Title: "Video", Sortable: true, Value: func(j api.SponsorDetectionJob) string { return j.VideoID }},
		{ID: "status", Title: "Status", Sortable: true, Value: func(j api.SponsorDetectionJob) string { return string(j.Status) }},
		{ID: "found", Title: "Found", Sortable: true, Value: func(j api.SponsorDetectionJob) string { return formatIntPtr(j.SponsorsFound) }},
		{ID: "error", Title: "Error", DefaultHidden: true, Value: func(j api.SponsorDetectionJob) string { return formatStringPtr(j.Error) }},
		{ID: "created", Title: "Created", Sortable: true, Value: func(j api.SponsorDetectionJob) string { return formatTime(j.CreatedAt) }},
		{ID: "completed", Title: "Completed", DefaultHidden: true, Sortable: true, Value: func(j api.SponsorDetectionJob) string { return formatTimePtr(j.CompletedAt) }},
	}
}

func detectionJobFields(j *api.SponsorDetectionJob) [][2]string {
	return [][2]string{
		{"ID", formatInt64(j.ID)},
		{"Video", j.VideoID},
		{"Status", string(j.Status)},
		{"Sponsors found", formatIntPtr(j.SponsorsFound)},
		{"Error", formatStringPtr(j.Error)},
		{"Created", formatTime(j.CreatedAt)},
		{"Completed", formatTimePtr(j.CompletedAt)},
	}
}

func newDetectionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detection",
		Short: "Sponsor detection jobs",
	}
	cmd.AddCommand(newDetectionListCmd(a))
	cmd.AddCommand(newDetectionGetCmd(a))
	cmd.AddCommand(newDetectionStartCmd(a))
	return cmd
}

func newDetectionListCmd(a *app) *cobra.Command {
	var flags listFlags
	var watch watchFlags
	var params api.SponsorDetectionJobListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sponsor detection jobs",
		Long: strings.TrimSpace(`
List sponsor detection jobs, newest first.

With --watch the listing refreshes every --interval until every matching
job has reached a terminal status (completed or failed).`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params.ListParams = flags.listParams()
			page := &listPage[api.SponsorDetectionJob]{
				app:   a,
				flags: &flags,
				table: render.Table[api.SponsorDetectionJob]{
					Resource: resourceDetection,
					Columns:  detectionJobColumns(),
					RowID:    func(j api.SponsorDetectionJob) string { return formatInt64(j.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.SponsorDetectionJob], error) {
					return client.ListSponsorDetectionJobs(ctx, params)
				},
				active: func(j api.SponsorDetectionJob) bool { return !j.Status.Terminal() },
			}
			return page.run(cmd.Context(), &watch)
		},
	}
	addListFlags(cmd, &flags)
	addWatchFlags(cmd, &watch)
	cmd.Flags().StringVar(&params.Status, "status", "", "Filter by status (pending|running|completed|failed)")
	cmd.Flags().StringVar(&params.VideoID, "video-id", "", "Filter by video id")
	return cmd
}

func newDetectionGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one detection job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid detection job id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceDetection, map[string]int64{"id": id},
				func(ctx context.Context) (*api.SponsorDetectionJob, error) {
					return client.GetSponsorDetectionJob(ctx, id)
				}, detectionJobFields)
		},
	}
}

func newDetectionStartCmd(a *app) *cobra.Command {
	var videoID string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Queue a detection scan for a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			job, err := client.CreateSponsorDetectionJob(cmd.Context(), api.CreateSponsorDetectionJobRequest{VideoID: videoID})
			if err != nil {
				return err
			}
			a.invalidate(resourceDetection)
			fmt.Fprintf(a.stdout, "Queued detection job %d for video %s.\n", job.ID, job.VideoID)
			return nil
		},
	}
	cmd.Flags().StringVar(&videoID, "video-id", "", "Video to scan (required)")
	return cmd
}
