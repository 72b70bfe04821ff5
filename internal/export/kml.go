package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/woozymasta/coordsuite/internal/converter"
)

const kmlNamespace = "http://www.opengis.net/kml/2.2"

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description,omitempty"`
	Point       kmlPoint `xml:"Point"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

func writeKML(w io.Writer, records []converter.Record, opts Options) error {
	doc := kmlRoot{
		Xmlns: kmlNamespace,
		Document: kmlDocument{
			Name:       "Coordinates",
			Placemarks: make([]kmlPlacemark, 0, len(records)),
		},
	}

	for _, r := range records {
		doc.Document.Placemarks = append(doc.Document.Placemarks, kmlPlacemark{
			Name: fmt.Sprintf("Line %d", r.Line),
			Description: fmt.Sprintf("%s %s %s",
				r.UTM.ZoneDesignator(),
				formatFloat(r.UTM.Easting, opts.PrecisionMeters),
				formatFloat(r.UTM.Northing, opts.PrecisionMeters)),
			Point: kmlPoint{
				// KML orders lon,lat,alt
				Coordinates: formatFloat(r.Geographic.Lon, opts.PrecisionDegrees) + "," +
					formatFloat(r.Geographic.Lat, opts.PrecisionDegrees) + ",0",
			},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	buf.WriteByte('\n')

	if opts.Compact {
		return minifier.Minify(mimeXML, w, &buf)
	}

	_, err := buf.WriteTo(w)
	return err
}
