package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/geo"

	"gopkg.in/yaml.v3"
)

const sample = "41.651285, -0.869147\nnot,a,number\n-33.8688 151.2093"

func sampleResult(t *testing.T) *converter.Result {
	t.Helper()

	res, err := converter.New(nil).Convert(sample, converter.Options{})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return res
}

func render(t *testing.T, f Format, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Write(&buf, f, sampleResult(t), opts); err != nil {
		t.Fatalf("write %s: %v", f, err)
	}
	return buf.String()
}

func TestWriteDelimited(t *testing.T) {
	comma := DefaultOptions()
	comma.Delimiter = ","

	tests := []struct {
		name   string
		format Format
		opts   Options
		want   string
	}{
		{
			name:   "utm csv",
			format: FormatUTMCSV,
			opts:   DefaultOptions(),
			want: "Easting\tNorthing\tZone\tHemisphere\n" +
				"677437.23\t4613253.34\t30\tNorth\n" +
				"334368.63\t6250948.35\t56\tSouth\n",
		},
		{
			name:   "latlon csv",
			format: FormatLatLonCSV,
			opts:   DefaultOptions(),
			want:   "Latitude\tLongitude\n41.651285\t-0.869147\n-33.868800\t151.209300\n",
		},
		{
			name:   "latlon csv with commas",
			format: FormatLatLonCSV,
			opts:   comma,
			want:   "Latitude,Longitude\n41.651285,-0.869147\n-33.868800,151.209300\n",
		},
		{
			name:   "utm text",
			format: FormatTextUTM,
			opts:   DefaultOptions(),
			want:   "677437.23\t4613253.34\n334368.63\t6250948.35\n",
		},
		{
			name:   "latlon text",
			format: FormatTextLatLon,
			opts:   DefaultOptions(),
			want:   "41.651285\t-0.869147\n-33.868800\t151.209300\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.format, tt.opts); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestWriteKML(t *testing.T) {
	for _, compact := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Compact = compact

		out := render(t, FormatKML, opts)

		for _, want := range []string{
			kmlNamespace,
			"<name>Coordinates</name>",
			"<name>Line 3</name>",
			"<coordinates>-0.869147,41.651285,0</coordinates>",
			"<coordinates>151.209300,-33.868800,0</coordinates>",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("compact=%v: output does not contain %s:\n%s", compact, want, out)
			}
		}

		if compact && strings.Contains(out, "\n  <") {
			t.Errorf("compact output is indented:\n%s", out)
		}

		var doc kmlRoot
		if err := xml.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("compact=%v: unmarshal: %v", compact, err)
		}
		if len(doc.Document.Placemarks) != 2 {
			t.Errorf("compact=%v: got %d placemarks, want 2", compact, len(doc.Document.Placemarks))
		}
	}
}

func TestWriteGeoJSON(t *testing.T) {
	for _, compact := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Compact = compact

		out := render(t, FormatGeoJSON, opts)

		if compact && strings.Contains(strings.TrimSpace(out), "\n") {
			t.Errorf("compact output spans lines:\n%s", out)
		}

		var fc geo.GeoJSONFeatureCollection
		if err := json.Unmarshal([]byte(out), &fc); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
			t.Fatalf("got %s with %d features, want FeatureCollection with 2", fc.Type, len(fc.Features))
		}

		f := fc.Features[0]
		if f.Geometry.Type != "Point" || f.Geometry.Coordinates[0] != -0.869147 || f.Geometry.Coordinates[1] != 41.651285 {
			t.Errorf("geometry = %+v, want Point [-0.869147 41.651285]", f.Geometry)
		}
		if f.Properties["zone"] != float64(30) || f.Properties["hemisphere"] != "North" {
			t.Errorf("properties = %v", f.Properties)
		}
		if f.Properties["easting"] != 677437.23 {
			t.Errorf("easting = %v, want 677437.23", f.Properties["easting"])
		}
	}
}

func TestWriteDocuments(t *testing.T) {
	var doc struct {
		Direction string `json:"direction" yaml:"direction"`
		View      struct {
			Points int `json:"points" yaml:"points"`
		} `json:"view" yaml:"view"`
		Outcomes []struct {
			Line  int `json:"line" yaml:"line"`
			Error *struct {
				Kind string `json:"kind" yaml:"kind"`
			} `json:"error" yaml:"error"`
		} `json:"outcomes" yaml:"outcomes"`
	}

	check := func(name string) {
		if doc.Direction != "geo-to-utm" {
			t.Errorf("%s: direction = %q", name, doc.Direction)
		}
		if doc.View.Points != 2 {
			t.Errorf("%s: view points = %d, want 2", name, doc.View.Points)
		}
		if len(doc.Outcomes) != 3 {
			t.Fatalf("%s: got %d outcomes, want 3", name, len(doc.Outcomes))
		}
		if e := doc.Outcomes[1].Error; e == nil || e.Kind != "TokenCountMismatch" {
			t.Errorf("%s: line 2 error = %+v", name, e)
		}
	}

	if err := json.Unmarshal([]byte(render(t, FormatJSON, DefaultOptions())), &doc); err != nil {
		t.Fatalf("json: %v", err)
	}
	check("json")

	doc.Outcomes = nil
	if err := yaml.Unmarshal([]byte(render(t, FormatYAML, DefaultOptions())), &doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	check("yaml")
}

func TestWriteWebP(t *testing.T) {
	opts := DefaultOptions()
	opts.Preview.Width, opts.Preview.Height = 64, 64

	out := render(t, FormatWebP, opts)
	if !strings.HasPrefix(out, "RIFF") || !strings.Contains(out[:16], "WEBP") {
		t.Errorf("output is not a WebP container")
	}
}

func TestWriteRejects(t *testing.T) {
	res := sampleResult(t)

	if err := Write(&bytes.Buffer{}, Format("shapefile"), res, DefaultOptions()); err == nil {
		t.Error("expected error for unknown format")
	}

	opts := DefaultOptions()
	opts.Delimiter = "::"
	if err := Write(&bytes.Buffer{}, FormatUTMCSV, res, opts); err == nil {
		t.Error("expected error for a multi character delimiter")
	}

	if err := Write(&bytes.Buffer{}, FormatUTMCSV, nil, DefaultOptions()); err == nil {
		t.Error("expected error for a nil result")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "points"+FormatTextLatLon.Extension())

	if err := WriteFile(path, FormatTextLatLon, sampleResult(t), DefaultOptions()); err != nil {
		t.Fatalf("write file: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(b), "41.651285\t-0.869147\n") {
		t.Errorf("file starts with %q", b)
	}
}

type failingCloser struct {
	strings.Builder
	err error
}

func (c *failingCloser) Close() error { return c.err }

func TestWriteCloseReportsCloseError(t *testing.T) {
	diskFull := errors.New("disk full")
	out := &failingCloser{err: diskFull}

	err := writeClose(out, "points.txt", FormatTextLatLon, sampleResult(t), DefaultOptions())
	if !errors.Is(err, diskFull) {
		t.Fatalf("err = %v, want %v", err, diskFull)
	}
	if out.Len() == 0 {
		t.Error("nothing was written before close")
	}

	// a write error wins over the close error
	err = writeClose(&failingCloser{err: diskFull}, "points.txt", FormatTextLatLon, nil, DefaultOptions())
	if err == nil || errors.Is(err, diskFull) {
		t.Fatalf("err = %v, want the write error", err)
	}

	if err := writeClose(&failingCloser{}, "points.txt", FormatTextLatLon, sampleResult(t), DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
		if f.ContentType() == "" || !strings.HasPrefix(f.Extension(), ".") {
			t.Errorf("%s: missing content type or extension", f)
		}
	}

	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for unknown format")
	}

	if FormatKML.Filename() != "coordinates.kml" {
		t.Errorf("filename = %s", FormatKML.Filename())
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]rune{
		"":          '\t',
		"tab":       '\t',
		"comma":     ',',
		";":         ';',
		"semicolon": ';',
		"space":     ' ',
		"|":         '|',
	}

	for in, want := range tests {
		got, err := ParseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ParseDelimiter(%q) = %q, %v, want %q", in, got, err, want)
		}
	}

	for _, bad := range []string{"ab", "\"", "\n"} {
		if _, err := ParseDelimiter(bad); err == nil {
			t.Errorf("ParseDelimiter(%q): expected error", bad)
		}
	}
}
