package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// writeOutput emits payload in the format selected by --output. renderTable
// draws the human-readable form; json and yaml marshal the payload directly.
func (a *app) writeOutput(payload any, renderTable func(io.Writer) error) error {
	switch strings.ToLower(a.flags.output) {
	case "", "table":
		return renderTable(a.stdout)
	case "json":
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = a.stdout.Write(data)
		_, _ = a.stdout.Write([]byte("\n"))
		return nil
	case "yaml":
		data, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, _ = a.stdout.Write(data)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", a.flags.output)
	}
}

// writeDetails emits one entity: a field/value table, or the entity itself
// for json and yaml.
func (a *app) writeDetails(payload any, fields [][2]string) error {
	return a.writeOutput(payload, func(w io.Writer) error {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleRounded)
		tw.Style().Options.SeparateRows = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.DrawBorder = true
		for _, field := range fields {
			tw.AppendRow(table.Row{field[0], field[1]})
		}
		tw.Render()
		return nil
	})
}
