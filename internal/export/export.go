// Package export writes conversion results for spreadsheets, GIS tools,
// the clipboard and image previews.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/preview"

	"github.com/rs/zerolog/log"
)

// Options controls number formatting and layout of the written output.
type Options struct {
	// Delimiter separates columns of CSV and text output. Accepts a single
	// character or one of tab, comma, semicolon, space.
	Delimiter string `yaml:"delimiter" json:"delimiter"`

	PrecisionDegrees int  `yaml:"precision_degrees" json:"precision_degrees"`
	PrecisionMeters  int  `yaml:"precision_meters" json:"precision_meters"`
	Compact          bool `yaml:"compact" json:"compact"`

	Preview preview.Options `yaml:"-" json:"-"`
}

// DefaultOptions uses tabs, six decimals for degrees and two for meters.
func DefaultOptions() Options {
	return Options{
		Delimiter:        "tab",
		PrecisionDegrees: 6,
		PrecisionMeters:  2,
		Preview:          preview.DefaultOptions(),
	}
}

// ParseDelimiter resolves a delimiter name or single character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "space":
		return ' ', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

// Write renders the successful records of res in format f. JSON and YAML
// documents also carry the failed lines.
func Write(w io.Writer, f Format, res *converter.Result, opts Options) error {
	if res == nil {
		return fmt.Errorf("nothing to export")
	}

	delim, err := ParseDelimiter(opts.Delimiter)
	if err != nil {
		return err
	}

	records := res.Records()

	switch f {
	case FormatUTMCSV:
		return writeCSV(w, records, true, delim, opts)
	case FormatLatLonCSV:
		return writeCSV(w, records, false, delim, opts)
	case FormatTextUTM:
		return writeText(w, records, true, delim, opts)
	case FormatTextLatLon:
		return writeText(w, records, false, delim, opts)
	case FormatKML:
		return writeKML(w, records, opts)
	case FormatGeoJSON:
		return writeGeoJSON(w, records, opts)
	case FormatJSON:
		return writeJSON(w, res, opts)
	case FormatYAML:
		return writeYAML(w, res, opts)
	case FormatWebP:
		return preview.Write(w, res.Points(), opts.Preview)
	}

	return fmt.Errorf("unknown export format %q", f)
}

// WriteFile writes the export to path, creating parent directories.
func WriteFile(path string, f Format, res *converter.Result, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	return writeClose(out, path, f, res, opts)
}

// writeClose writes the export and closes out. A failed close is returned
// when the write itself succeeded, since buffered data may be lost.
func writeClose(out io.WriteCloser, path string, f Format, res *converter.Result, opts Options) (err error) {
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
			if err == nil {
				err = fmt.Errorf("close %s: %w", path, closeErr)
			}
		}
	}()

	return Write(out, f, res, opts)
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// round keeps prec decimals so that JSON output matches the text formats.
func round(v float64, prec int) float64 {
	if prec < 0 {
		return v
	}
	p := math.Pow(10, float64(prec))
	return math.Round(v*p) / p
}
