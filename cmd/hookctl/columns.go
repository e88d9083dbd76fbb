package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/render"
)

// columnInfo is the flag-independent description of one table column, used
// by the columns command to list and validate overrides.
type columnInfo struct {
	ID            string
	Title         string
	Sortable      bool
	DefaultHidden bool
}

func summarize[T any](cols []render.Column[T]) []columnInfo {
	out := make([]columnInfo, 0, len(cols))
	for _, c := range cols {
		out = append(out, columnInfo{
			ID:            c.ID,
			Title:         c.Title,
			Sortable:      c.Sortable,
			DefaultHidden: c.DefaultHidden,
		})
	}
	return out
}

// knownTables maps every table name to its column set. New resource commands
// register here so the columns command can validate table and column names.
func knownTables() map[string][]columnInfo {
	return map[string][]columnInfo{
		resourceEvents:        summarize(eventColumns()),
		resourceChannels:      summarize(channelColumns()),
		resourceVideos:        summarize(videoColumns()),
		resourceVideoUpdates:  summarize(videoUpdateColumns()),
		resourceSubscriptions: summarize(subscriptionColumns()),
		resourceBlockedVideos: summarize(blockedVideoColumns()),
		resourceJobs:          summarize(jobColumns()),
		resourceSponsors:      summarize(sponsorColumns()),
		resourceSponsorVideos: summarize(sponsorVideoColumns()),
		resourceDetection:     summarize(detectionJobColumns()),
	}
}

func tableNames() []string {
	tables := knownTables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupTable(name string) ([]columnInfo, error) {
	cols, ok := knownTables()[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q (have %s)", name, strings.Join(tableNames(), ", "))
	}
	return cols, nil
}

func lookupColumn(table string, column string) (columnInfo, error) {
	cols, err := lookupTable(table)
	if err != nil {
		return columnInfo{}, err
	}
	for _, c := range cols {
		if c.ID == column {
			return c, nil
		}
	}
	ids := make([]string, 0, len(cols))
	for _, c := range cols {
		ids = append(ids, c.ID)
	}
	return columnInfo{}, fmt.Errorf("unknown column %q for %s (have %s)", column, table, strings.Join(ids, ", "))
}

func newColumnsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Inspect and adjust per-table column visibility",
		Long: strings.TrimSpace(`
Each table has a default column set; show and hide record a persistent
override for one column, reset drops every override for a table. One-off
changes belong to the --columns and --wide flags on list commands.`),
	}
	cmd.AddCommand(newColumnsListCmd(a))
	cmd.AddCommand(newColumnsShowCmd(a))
	cmd.AddCommand(newColumnsHideCmd(a))
	cmd.AddCommand(newColumnsResetCmd(a))
	return cmd
}

func newColumnsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list [table]",
		Short:     "List tables, or the columns of one table",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: tableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range tableNames() {
					fmt.Fprintln(a.stdout, name)
				}
				return nil
			}

			table := args[0]
			cols, err := lookupTable(table)
			if err != nil {
				return err
			}
			overrides := a.state.TableColumns(table)

			type columnStatus struct {
				ID       string `json:"id" yaml:"id"`
				Title    string `json:"title" yaml:"title"`
				Visible  bool   `json:"visible" yaml:"visible"`
				Override bool   `json:"override" yaml:"override"`
				Sortable bool   `json:"sortable" yaml:"sortable"`
			}
			statuses := make([]columnStatus, 0, len(cols))
			for _, c := range cols {
				visible := !c.DefaultHidden
				override, overridden := overrides[c.ID]
				if overridden {
					visible = override
				}
				statuses = append(statuses, columnStatus{
					ID:       c.ID,
					Title:    c.Title,
					Visible:  visible,
					Override: overridden,
					Sortable: c.Sortable,
				})
			}

			return a.writeOutput(statuses, func(w io.Writer) error {
				for _, s := range statuses {
					marks := make([]string, 0, 2)
					if s.Visible {
						marks = append(marks, "shown")
					} else {
						marks = append(marks, "hidden")
					}
					if s.Override {
						marks = append(marks, "override")
					}
					fmt.Fprintf(w, "%-12s %-20s %s\n", s.ID, s.Title, strings.Join(marks, ", "))
				}
				return nil
			})
		},
	}
}

func newColumnsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <table> <column>",
		Short: "Persistently show a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setColumn(args[0], args[1], true)
		},
	}
}

func newColumnsHideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hide <table> <column>",
		Short: "Persistently hide a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setColumn(args[0], args[1], false)
		},
	}
}

func (a *app) setColumn(table, column string, visible bool) error {
	if _, err := lookupColumn(table, column); err != nil {
		return err
	}
	if err := a.state.SetColumn(table, column, visible); err != nil {
		return err
	}
	verb := "Hidden"
	if visible {
		verb = "Showing"
	}
	fmt.Fprintf(a.stdout, "%s column %s for %s.\n", verb, column, table)
	return nil
}

func newColumnsResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <table>",
		Short: "Drop every column override for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if _, err := lookupTable(table); err != nil {
				return err
			}
			if err := a.state.ResetTable(table); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Reset columns for %s.\n", table)
			return nil
		},
	}
}
