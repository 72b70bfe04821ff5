package export

import (
	"fmt"
	"strings"
)

// Format is an export target.
type Format string

// Supported formats.
const (
	FormatUTMCSV     Format = "utm-csv"
	FormatLatLonCSV  Format = "latlon-csv"
	FormatKML        Format = "kml"
	FormatGeoJSON    Format = "geojson"
	FormatTextUTM    Format = "text-utm"
	FormatTextLatLon Format = "text-latlon"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatWebP       Format = "webp"
)

var formats = []Format{
	FormatUTMCSV, FormatLatLonCSV, FormatKML, FormatGeoJSON,
	FormatTextUTM, FormatTextLatLon, FormatJSON, FormatYAML, FormatWebP,
}

// Formats lists every supported format.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat matches a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range formats {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatUTMCSV, FormatLatLonCSV:
		return "text/csv; charset=utf-8"
	case FormatKML:
		return "application/vnd.google-earth.kml+xml"
	case FormatGeoJSON:
		return "application/geo+json"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatWebP:
		return "image/webp"
	}
	return "text/plain; charset=utf-8"
}

// Extension is the file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatUTMCSV, FormatLatLonCSV:
		return ".csv"
	case FormatKML:
		return ".kml"
	case FormatGeoJSON:
		return ".geojson"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatWebP:
		return ".webp"
	}
	return ".txt"
}

// Filename is the default download name, "coordinates" plus the extension.
func (f Format) Filename() string {
	return "coordinates" + f.Extension()
}
