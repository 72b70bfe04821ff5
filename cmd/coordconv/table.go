package main

import (
	"io"
	"strconv"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/export"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable prints one row per outcome; failed lines carry the error
// in place of the coordinates.
func renderTable(w io.Writer, res *converter.Result, opts export.Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Line", "Latitude", "Longitude", "Zone", "Easting", "Northing", "Error"})

	for _, o := range res.Outcomes {
		if o.Err != nil {
			t.AppendRow(table.Row{o.Line, "", "", "", "", "", o.Err.Kind.String() + ": " + o.Err.Message})
			continue
		}

		r := o.Record
		t.AppendRow(table.Row{
			o.Line,
			strconv.FormatFloat(r.Geographic.Lat, 'f', opts.PrecisionDegrees, 64),
			strconv.FormatFloat(r.Geographic.Lon, 'f', opts.PrecisionDegrees, 64),
			r.UTM.ZoneDesignator(),
			strconv.FormatFloat(r.UTM.Easting, 'f', opts.PrecisionMeters, 64),
			strconv.FormatFloat(r.UTM.Northing, 'f', opts.PrecisionMeters, 64),
			"",
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", "", res.Detection.String(), res.Direction.String()})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}
