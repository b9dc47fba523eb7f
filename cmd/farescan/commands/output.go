package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"farescan/lib/fares"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func limitResults(results []fares.Result, limit int) []fares.Result {
	if limit > 0 && limit < len(results) {
		return results[:limit]
	}
	return results
}

func writeJson(out io.Writer, results []fares.Result) error {
	if results == nil {
		results = []fares.Result{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeTable(out io.Writer, results []fares.Result) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Agent", "Price", "Link"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
	})
	for i, r := range results {
		t.AppendRow(table.Row{i + 1, r.Agent, fmt.Sprintf("%.2f", r.Price), r.Link})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d offers", len(results))})
	t.Render()
}
