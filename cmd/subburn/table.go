package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"subburn/internal/transcript"
)

func renderSegmentsTable(segments []transcript.Segment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Duration", "Text"})

	for i, seg := range segments {
		tw.AppendRow(table.Row{
			i + 1,
			transcript.FormatTimecode(seg.StartTime),
			transcript.FormatTimecode(seg.EndTime),
			fmt.Sprintf("%.2fs", seg.Duration()),
			seg.Text,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
	})
	return tw.Render()
}
