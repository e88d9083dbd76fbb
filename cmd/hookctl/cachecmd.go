package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the query cache",
	}
	cmd.AddCommand(newCacheStatsCmd(a))
	cmd.AddCommand(newCacheClearCmd(a))
	return cmd
}

func newCacheStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache counters and per-resource entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.cacheStore()
			stats, err := store.Stats()
			if err != nil {
				return err
			}
			counts, err := store.ResourceCounts()
			if err != nil {
				return err
			}

			payload := struct {
				Hits        int64          `json:"hits" yaml:"hits"`
				Misses      int64          `json:"misses" yaml:"misses"`
				Evictions   int64          `json:"evictions" yaml:"evictions"`
				MemoryKeys  int            `json:"memory_keys" yaml:"memory_keys"`
				DiskEntries int            `json:"disk_entries" yaml:"disk_entries"`
				Resources   map[string]int `json:"resources" yaml:"resources"`
			}{stats.Hits, stats.Misses, stats.Evictions, stats.MemoryKeys, stats.DiskEntries, counts}

			return a.writeOutput(payload, func(w io.Writer) error {
				tw := table.NewWriter()
				tw.SetOutputMirror(w)
				tw.SetStyle(table.StyleRounded)
				tw.Style().Options.SeparateRows = false
				tw.Style().Options.SeparateColumns = false
				tw.Style().Options.DrawBorder = true
				tw.AppendRow(table.Row{"Hits", strconv.FormatInt(stats.Hits, 10)})
				tw.AppendRow(table.Row{"Misses", strconv.FormatInt(stats.Misses, 10)})
				tw.AppendRow(table.Row{"Evictions", strconv.FormatInt(stats.Evictions, 10)})
				tw.AppendRow(table.Row{"Memory keys", strconv.Itoa(stats.MemoryKeys)})
				tw.AppendRow(table.Row{"Disk entries", strconv.Itoa(stats.DiskEntries)})

				resources := make([]string, 0, len(counts))
				for resource := range counts {
					resources = append(resources, resource)
				}
				sort.Strings(resources)
				for _, resource := range resources {
					tw.AppendRow(table.Row{"  " + resource, strconv.Itoa(counts[resource])})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func newCacheClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cacheStore().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Cache cleared.")
			return nil
		},
	}
}
