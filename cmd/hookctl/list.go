package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/cache"
	"github.com/ad-tracker/hookctl/pkg/render"
)

// listFlags are the presentation flags shared by every list command.
type listFlags struct {
	limit   int
	page    int
	sort    string
	columns []string
	wide    bool
	expand  bool
}

func addListFlags(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().IntVar(&f.limit, "limit", 20, "Rows per page")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number (1-based)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Client-side sort over the loaded page: column[:asc|desc]")
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "Show exactly these columns")
	cmd.Flags().BoolVar(&f.wide, "wide", false, "Show all columns")
}

func addExpandFlag(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().BoolVar(&f.expand, "expand", false, "Expand per-row detail")
}

// listParams converts page/limit into the offset-based wire form. A fresh
// search always lands on page 1, so its offset is zero.
func (f *listFlags) listParams() api.ListParams {
	limit := f.limit
	if limit <= 0 {
		limit = 20
	}
	page := f.page
	if page < 1 {
		page = 1
	}
	return api.ListParams{Limit: limit, Offset: (page - 1) * limit}
}

// watchFlags control auto-refresh on job listings.
type watchFlags struct {
	watch    bool
	interval time.Duration
}

func addWatchFlags(cmd *cobra.Command, f *watchFlags) {
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Refresh until every row reaches a terminal state")
	cmd.Flags().DurationVar(&f.interval, "interval", 10*time.Second, "Refresh interval for --watch")
}

// listPage wires one resource listing: its filters feed the cache key, the
// fetch goes through the query cache, and the result renders as a table or
// as raw json/yaml.
type listPage[T any] struct {
	app   *app
	flags *listFlags
	table render.Table[T]

	// params is the full filter struct. It becomes the cache key, so any
	// filter or pagination change is a distinct entry.
	params any
	fetch  func(context.Context) (*api.List[T], error)

	// active marks rows that keep a watch alive. Nil means the resource
	// does not support watching.
	active func(T) bool
}

func (p *listPage[T]) run(ctx context.Context, watch *watchFlags) error {
	if watch != nil && watch.watch {
		return p.runWatch(ctx, watch.interval)
	}
	_, err := p.renderOnce(ctx, render.NewDetailCache(), p.app.cacheOptions())
	return err
}

// renderOnce fetches through the cache and renders one page. A failed
// refresh that still has a cached payload renders the stale rows and keeps
// going; the failure is only logged.
func (p *listPage[T]) renderOnce(ctx context.Context, details *render.DetailCache, opts cache.Options) (*api.List[T], error) {
	result := cache.Fetch(ctx, p.app.cacheStore(), p.table.Resource, p.params, opts, p.fetch)
	if result.Err != nil {
		if !result.Stale {
			return nil, result.Err
		}
		p.app.logger.Warn("refresh failed, showing cached results",
			"resource", p.table.Resource, "error", result.Err)
	}
	list := result.Data
	if list == nil {
		return nil, result.Err
	}

	renderer, err := p.renderer(details)
	if err != nil {
		return nil, err
	}
	page := &render.PageInfo{Total: list.Total, Limit: list.Limit, Offset: list.Offset}
	if err := p.app.writeOutput(list, func(w io.Writer) error {
		return renderer.Render(ctx, list.Items, page, w)
	}); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *listPage[T]) renderer(details *render.DetailCache) (*render.Renderer[T], error) {
	sortState, err := render.ParseSort(p.flags.sort)
	if err != nil {
		return nil, err
	}
	return &render.Renderer[T]{
		Table:        p.table,
		Visible:      p.app.state.TableColumns(p.table.Resource),
		Only:         p.flags.columns,
		Wide:         p.flags.wide,
		Sort:         sortState,
		Expand:       p.flags.expand,
		Details:      details,
		EnableColors: !p.app.flags.noColor,
	}, nil
}

// runWatch re-issues the fetch until no row is active. Reads bypass the
// cache so every tick is fresh; detail expansions stay memoized across
// ticks. Ctrl-C ends the watch cleanly.
func (p *listPage[T]) runWatch(ctx context.Context, interval time.Duration) error {
	if p.active == nil {
		return fmt.Errorf("%s does not support --watch", p.table.Resource)
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	details := render.NewDetailCache()
	opts := p.app.cacheOptions()
	opts.Bypass = true
	opts.TTL = interval

	for {
		list, err := p.renderOnce(ctx, details, opts)
		if err != nil {
			return err
		}
		if list == nil || !p.anyActive(list.Items) {
			p.app.logger.Info("watch finished, all rows terminal", "resource", p.table.Resource)
			return nil
		}

		select {
		case <-sigChan:
			fmt.Fprintln(p.app.stdout)
			return nil
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		fmt.Fprintf(p.app.stdout, "\nRefreshed at %s\n", time.Now().Format("15:04:05"))
	}
}

func (p *listPage[T]) anyActive(items []T) bool {
	for _, item := range items {
		if p.active(item) {
			return true
		}
	}
	return false
}

// runGet fetches one entity through the cache and renders its fields. The
// cache key carries the resource name, so mutations invalidate cached gets
// together with the lists.
func runGet[T any](ctx context.Context, a *app, resource string, key any, fetch func(context.Context) (*T, error), fields func(*T) [][2]string) error {
	result := cache.Fetch(ctx, a.cacheStore(), resource, key, a.cacheOptions(), fetch)
	if result.Err != nil {
		if !result.Stale {
			return result.Err
		}
		a.logger.Warn("refresh failed, showing cached result", "resource", resource, "error", result.Err)
	}
	if result.Data == nil {
		return result.Err
	}
	return a.writeDetails(result.Data, fields(result.Data))
}
