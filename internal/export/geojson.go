package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/geo"
)

func writeGeoJSON(w io.Writer, records []converter.Record, opts Options) error {
	fc := geo.NewFeatureCollection(len(records))

	for _, r := range records {
		p := geo.LatLon{
			Lat: round(r.Geographic.Lat, opts.PrecisionDegrees),
			Lon: round(r.Geographic.Lon, opts.PrecisionDegrees),
		}

		fc.Features = append(fc.Features, geo.PointFeature(p, map[string]interface{}{
			"line":       r.Line,
			"source":     r.Source.String(),
			"zone":       r.UTM.Zone,
			"hemisphere": r.UTM.Hemisphere.String(),
			"easting":    round(r.UTM.Easting, opts.PrecisionMeters),
			"northing":   round(r.UTM.Northing, opts.PrecisionMeters),
		}))
	}

	return encodeJSON(w, fc, opts.Compact)
}

// encodeJSON writes indented JSON, or passes it through the minifier.
func encodeJSON(w io.Writer, v interface{}, compact bool) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	if compact {
		return minifier.Minify(mimeJSON, w, &buf)
	}

	_, err := buf.WriteTo(w)
	return err
}
