package render

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tesh254/ukify/internal/converter"
	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/transformer"
)

// DictionaryTable lists terms in source order. A limit of zero or less
// lists every term.
func DictionaryTable(w io.Writer, mapping dictionary.TermMapping, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "American", "British"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft, WidthMax: 40},
		{Number: 3, Align: text.AlignLeft, WidthMax: 40},
	})

	for i, term := range mapping {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(table.Row{i + 1, term.American, term.British})
	}

	if limit > 0 && len(mapping) > limit {
		t.AppendFooter(table.Row{"", "showing " + strconv.Itoa(limit) + " of " + strconv.Itoa(len(mapping)), ""})
	}
	t.Render()
}

// ReportTable summarises one processing run.
func ReportTable(w io.Writer, res *transformer.Result, stats converter.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Step", "Count"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, WidthMax: 30},
		{Number: 2, Align: text.AlignRight},
	})

	t.AppendRow(table.Row{"Paragraphs rewritten", res.Paragraphs})
	t.AppendRow(table.Row{"Sentences emitted", res.Sentences})
	t.AppendRow(table.Row{"Headers removed", res.HeadersRemoved})
	t.AppendRow(table.Row{"List items bolded", res.ItemsBolded})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Cache hits", stats.Hits})
	t.AppendRow(table.Row{"Cache misses", stats.Misses})
	t.Render()
}
