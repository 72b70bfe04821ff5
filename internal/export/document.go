package export

import (
	"io"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"

	"gopkg.in/yaml.v3"
)

// Document is the full JSON/YAML export: detection, map view and every
// outcome, failed lines included.
type Document struct {
	Detection parser.Detection    `json:"detection" yaml:"detection"`
	Direction converter.Direction `json:"direction" yaml:"direction"`
	View      geo.View            `json:"view" yaml:"view"`
	Outcomes  []converter.Outcome `json:"outcomes" yaml:"outcomes"`
}

// NewDocument copies the result with coordinates rounded to the configured
// precision.
func NewDocument(res *converter.Result, opts Options) Document {
	doc := Document{
		Detection: res.Detection,
		Direction: res.Direction,
		View:      geo.NewView(res.Points()),
		Outcomes:  make([]converter.Outcome, len(res.Outcomes)),
	}

	for i, o := range res.Outcomes {
		if o.Record != nil {
			r := *o.Record
			r.Geographic.Lat = round(r.Geographic.Lat, opts.PrecisionDegrees)
			r.Geographic.Lon = round(r.Geographic.Lon, opts.PrecisionDegrees)
			r.UTM.Easting = round(r.UTM.Easting, opts.PrecisionMeters)
			r.UTM.Northing = round(r.UTM.Northing, opts.PrecisionMeters)
			o.Record = &r
		}
		doc.Outcomes[i] = o
	}

	return doc
}

func writeJSON(w io.Writer, res *converter.Result, opts Options) error {
	return encodeJSON(w, NewDocument(res, opts), opts.Compact)
}

func writeYAML(w io.Writer, res *converter.Result, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(NewDocument(res, opts)); err != nil {
		return err
	}
	return enc.Close()
}
