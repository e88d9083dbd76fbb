// Package render draws resource listings as terminal tables. It adapts
// column widths to the console, supports per-column visibility and
// client-side sorting over the loaded page, and renders lazily fetched
// per-row detail blocks and a pagination footer.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// Column describes one column of a resource table.
type Column[T any] struct {
	// ID names the column for sorting, visibility toggles and --columns.
	ID string

	// Title is the header label.
	Title string

	// DefaultHidden leaves the column out unless toggled on (audit columns,
	// wide descriptions).
	DefaultHidden bool

	// Sortable allows --sort on this column.
	Sortable bool

	// Value extracts the cell text for a row.
	Value func(T) string
}

// Table describes one resource's tabular view.
type Table[T any] struct {
	// Resource is the plural noun used in placeholders and footers.
	Resource string

	Columns []Column[T]

	// RowID identifies a row for detail memoization.
	RowID func(T) string

	// Detail produces the expanded content for a row. Nil means rows do not
	// expand.
	Detail func(ctx context.Context, row T) (string, error)
}

// ColumnIDs returns the ids of all defined columns, in declaration order.
func (t Table[T]) ColumnIDs() []string {
	ids := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		ids = append(ids, col.ID)
	}
	return ids
}

// HasColumn reports whether id names a defined column.
func (t Table[T]) HasColumn(id string) bool {
	for _, col := range t.Columns {
		if col.ID == id {
			return true
		}
	}
	return false
}

// Renderer renders pages of rows for a Table. The zero value renders every
// non-hidden column, unsorted, with colors off.
type Renderer[T any] struct {
	Table Table[T]

	// Visible overrides per-column visibility by id. Columns not listed keep
	// their DefaultHidden setting.
	Visible map[string]bool

	// Only restricts output to exactly these column ids, in this order.
	Only []string

	// Wide shows every column regardless of visibility settings.
	Wide bool

	// Sort orders the loaded page client-side.
	Sort SortState

	// Expand appends each row's detail block below it, fetching through
	// Details.
	Expand  bool
	Details *DetailCache

	// EnableColors toggles ANSI color output.
	EnableColors bool

	// MaxColWidth constrains each column. If 0, a width is chosen from the
	// terminal.
	MaxColWidth int
}

// Render writes one page of rows to writer. A nil page suppresses the
// pagination footer.
func (r *Renderer[T]) Render(ctx context.Context, rows []T, page *PageInfo, writer io.Writer) error {
	cols, err := r.visibleColumns()
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("render: no visible columns for %s", r.Table.Resource)
	}

	rows = r.sorted(rows)

	tw := table.NewWriter()
	tw.SetOutputMirror(writer)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.DrawBorder = true

	header := table.Row{}
	for _, col := range cols {
		header = append(header, r.headerCell(col))
	}
	tw.AppendHeader(header)

	if configs := r.buildColumnConfigs(len(cols), writer); len(configs) > 0 {
		tw.SetColumnConfigs(configs)
	}

	if len(rows) == 0 {
		tw.AppendRow(table.Row{r.color("no "+r.Table.Resource, text.FgHiBlack)})
	}

	expand := r.Expand && r.Details != nil && r.Table.Detail != nil && r.Table.RowID != nil
	for _, row := range rows {
		cells := table.Row{}
		for _, col := range cols {
			cells = append(cells, col.Value(row))
		}
		tw.AppendRow(cells)

		if expand {
			detail := r.Details.Get(ctx, r.Table.RowID(row), func(ctx context.Context) (string, error) {
				return r.Table.Detail(ctx, row)
			})
			if detail != "" {
				tw.AppendRow(table.Row{r.color(detail, text.FgHiBlack)})
			}
		}
	}

	tw.Render()

	if page != nil {
		if footer := page.Footer(r.Table.Resource); footer != "" {
			if _, err := fmt.Fprintln(writer, footer); err != nil {
				return fmt.Errorf("render: failed writing footer: %w", err)
			}
		}
	}

	return nil
}

// headerCell returns the header label, with a direction marker on the
// sorted column.
func (r *Renderer[T]) headerCell(col Column[T]) string {
	if r.Sort.Column != col.ID || r.Sort.Direction == SortNone {
		return col.Title
	}
	if r.Sort.Direction == SortAsc {
		return col.Title + " ↑"
	}
	return col.Title + " ↓"
}

// visibleColumns resolves the column set for one render: --columns wins,
// then Wide, then per-column overrides on top of the defaults.
func (r *Renderer[T]) visibleColumns() ([]Column[T], error) {
	if len(r.Only) > 0 {
		cols := make([]Column[T], 0, len(r.Only))
		for _, id := range r.Only {
			found := false
			for _, col := range r.Table.Columns {
				if col.ID == id {
					cols = append(cols, col)
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("render: unknown column %q for %s (have %s)",
					id, r.Table.Resource, strings.Join(r.Table.ColumnIDs(), ", "))
			}
		}
		return cols, nil
	}

	var cols []Column[T]
	for _, col := range r.Table.Columns {
		if r.Wide {
			cols = append(cols, col)
			continue
		}
		visible := !col.DefaultHidden
		if override, ok := r.Visible[col.ID]; ok {
			visible = override
		}
		if visible {
			cols = append(cols, col)
		}
	}
	return cols, nil
}

// buildColumnConfigs creates per-column sizing to fit the terminal.
func (r *Renderer[T]) buildColumnConfigs(count int, w io.Writer) []table.ColumnConfig {
	if count == 0 {
		return nil
	}

	width := r.MaxColWidth
	if width <= 0 {
		termWidth := detectTerminalWidth(w)
		if termWidth <= 0 {
			// Do not constrain if width unknown
			return nil
		}
		if termWidth < 60 {
			termWidth = 60
		}
		// Rough allocation: leave space for borders & padding
		per := (termWidth - 4) / count
		if per < 8 {
			per = 8
		}
		width = per
	}

	configs := make([]table.ColumnConfig, 0, count)
	for i := 0; i < count; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			WidthMax:    width,
			WidthMin:    minInt(5, width),
			Transformer: truncTransformer(width),
		})
	}
	return configs
}

// detectTerminalWidth attempts to get terminal width if writer is a file (stdout/stderr).
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return width
		}
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return width
	}
	return -1
}

// truncTransformer returns a text.Transformer to ellipsize overly wide cells.
func truncTransformer(max int) text.Transformer {
	return func(val interface{}) string {
		s := fmt.Sprint(val)
		if runeLen := utf8.RuneCountInString(s); runeLen > max {
			if max <= 1 {
				return "…"
			}
			return truncateRunes(s, max)
		}
		return s
	}
}

// truncateRunes truncates a string to (max) runes with ellipsis.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count >= max-1 {
			break
		}
		b.WriteRune(r)
		count++
	}
	b.WriteRune('…')
	return b.String()
}

func (r *Renderer[T]) color(s string, c text.Color) string {
	if !r.EnableColors {
		return s
	}
	return text.Colors{c}.Sprint(s)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
