package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/binzume/spineconv/batch"
)

func renderSummary(s batch.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "count"})
	rows := []struct {
		label string
		n     int
	}{
		{"converted", s.Converted},
		{"copied (already 3.8)", s.Copied},
		{"unchanged", s.Unchanged},
		{"skipped", s.Skipped},
		{"failed", s.Failed},
		{"atlas patched", s.AtlasPatched},
		{"atlas unchanged", s.AtlasUnchanged},
		{"atlas failed", s.AtlasFailed},
		{"warnings", s.Warnings},
	}
	for _, r := range rows {
		tw.AppendRow(table.Row{r.label, strconv.Itoa(r.n)})
	}
	tw.AppendFooter(table.Row{"written", humanize.Bytes(uint64(s.BytesWritten))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
