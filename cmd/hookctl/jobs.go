package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/render"
)

const resourceJobs = "jobs"

func jobColumns() []render.Column[api.Job] {
	return []render.Column[api.Job]{
		{ID: "id", Title: "ID", Sortable: true, Value: func(j api.Job) string { return formatInt64(j.ID) }},
		{ID: "type", Title: "Type", Sortable: true, Value: func(j api.Job) string { return j.JobType }},
		{ID: "target", Title: "Target", Sortable: true, Value: func(j api.Job) string { return j.TargetID }},
		{ID: "status", Title: "Status", Sortable: true, Value: func(j api.Job) string { return string(j.Status) }},
		{ID: "attempts", Title: "Attempts", Sortable: true, Value: func(j api.Job) string { return strconv.Itoa(j.Attempts) }},
		{ID: "error", Title: "Error", DefaultHidden: true, Value: func(j api.Job) string { return formatStringPtr(j.Error) }},
		{ID: "created", Title: "Created", Sortable: true, Value: func(j api.Job) string { return formatTime(j.CreatedAt) }},
		{ID: "started", Title: "Started", DefaultHidden: true, Value: func(j api.Job) string { return formatTimePtr(j.StartedAt) }},
		{ID: "completed", Title: "Completed", DefaultHidden: true, Value: func(j api.Job) string { return formatTimePtr(j.CompletedAt) }},
	}
}

func jobFields(j *api.Job) [][2]string {
	return [][2]string{
		{"ID", formatInt64(j.ID)},
		{"Type", j.JobType},
		{"Target", j.TargetID},
		{"Status", string(j.Status)},
		{"Attempts", strconv.Itoa(j.Attempts)},
		{"Error", formatStringPtr(j.Error)},
		{"Created", formatTime(j.CreatedAt)},
		{"Started", formatTimePtr(j.StartedAt)},
		{"Completed", formatTimePtr(j.CompletedAt)},
	}
}

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect asynchronous enrichment jobs",
	}
	cmd.AddCommand(newJobsListCmd(a))
	cmd.AddCommand(newJobsGetCmd(a))
	return cmd
}

func newJobsListCmd(a *app) *cobra.Command {
	var flags listFlags
	var watch watchFlags
	var filter struct {
		jobType  string
		status   string
		targetID string
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrichment jobs",
		Long: `List enrichment jobs. With --watch the listing refreshes until every
matching job has completed or failed; a filter that excludes pending and
running jobs therefore finishes after one fetch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			params := api.JobListParams{
				ListParams: flags.listParams(),
				JobType:    filter.jobType,
				Status:     filter.status,
				TargetID:   filter.targetID,
			}
			page := &listPage[api.Job]{
				app:   a,
				flags: &flags,
				table: render.Table[api.Job]{
					Resource: resourceJobs,
					Columns:  jobColumns(),
					RowID:    func(j api.Job) string { return formatInt64(j.ID) },
				},
				params: params,
				fetch: func(ctx context.Context) (*api.List[api.Job], error) {
					return client.ListJobs(ctx, params)
				},
				active: func(j api.Job) bool { return !j.Status.Terminal() },
			}
			return page.run(cmd.Context(), &watch)
		},
	}
	addListFlags(cmd, &flags)
	addWatchFlags(cmd, &watch)
	cmd.Flags().StringVar(&filter.jobType, "job-type", "", "Filter by job type")
	cmd.Flags().StringVar(&filter.status, "status", "", "Filter by status (pending|running|completed|failed)")
	cmd.Flags().StringVar(&filter.targetID, "target-id", "", "Filter by target channel or video id")
	return cmd
}

func newJobsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one enrichment job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.API()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return runGet(cmd.Context(), a, resourceJobs, map[string]int64{"id": id},
				func(ctx context.Context) (*api.Job, error) {
					return client.GetJob(ctx, id)
				}, jobFields)
		},
	}
}
