package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUndetectableFormat is returned when no sampled line decides between
// UTM and Lat/Lon. It applies to the whole block.
var ErrUndetectableFormat = errors.New("undetectable coordinate format")

// SampleSize is the number of two-value lines inspected by Detect.
const SampleSize = 5

// Lat/Lon bounds used for classification.
const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
)

// Format is the coordinate representation of a block.
type Format int

// Known formats.
const (
	FormatUTM Format = iota + 1
	FormatLatLon
)

func (f Format) String() string {
	switch f {
	case FormatUTM:
		return "utm"
	case FormatLatLon:
		return "latlon"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Separator is the delimiter style of a block.
type Separator int

// Known separators.
const (
	SeparatorComma Separator = iota + 1
	SeparatorTab
	SeparatorSpace
	SeparatorMixed
)

func (s Separator) String() string {
	switch s {
	case SeparatorComma:
		return "comma"
	case SeparatorTab:
		return "tab"
	case SeparatorSpace:
		return "space"
	case SeparatorMixed:
		return "mixed"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Separator) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Delimiter returns the string used to write values back in the same style.
// Mixed input is written tab separated.
func (s Separator) Delimiter() string {
	switch s {
	case SeparatorComma:
		return ", "
	case SeparatorSpace:
		return " "
	}
	return "\t"
}

// Detection is computed once per block and applies to every line of it.
type Detection struct {
	Format    Format    `json:"format" yaml:"format"`
	Separator Separator `json:"separator" yaml:"separator"`
}

func (d Detection) String() string {
	return d.Format.String() + "/" + d.Separator.String()
}

type sample struct {
	line   int
	delim  string
	format Format
}

// Detect samples up to SampleSize lines holding exactly two numbers and
// classifies them by magnitude:
//
//   - |first| <= 90 and |second| <= 180 reads as Lat/Lon;
//   - |first| > 90 and |second| > 180 reads as UTM;
//   - anything else is ambiguous and does not vote.
//
// Every voting line must agree. A block without votes, or with conflicting
// votes, is ErrUndetectableFormat. The separator comes from the first
// voting line.
//
// A UTM easting or northing small enough to pass as degrees (a point within
// 180 m of the equator, say) is misread; such blocks need a forced direction.
func Detect(text string) (Detection, error) {
	var (
		sampled int
		first   *sample
	)

	for i, line := range SplitLines(text) {
		if sampled >= SampleSize {
			break
		}

		tokens, delims := tokenize(line)
		if len(tokens) != 2 {
			continue
		}
		pair, err := ParseLine(line)
		if err != nil {
			continue
		}
		sampled++

		format, ok := classify(pair)
		if !ok {
			continue
		}

		if first == nil {
			first = &sample{line: i + 1, delim: delims[0], format: format}
			continue
		}

		if format != first.format {
			return Detection{}, fmt.Errorf("%w: line %d reads as %s but line %d reads as %s",
				ErrUndetectableFormat, first.line, first.format, i+1, format)
		}
	}

	if sampled == 0 {
		return Detection{}, fmt.Errorf("%w: no line holds two numeric values", ErrUndetectableFormat)
	}
	if first == nil {
		return Detection{}, fmt.Errorf("%w: values fit neither degrees nor meters", ErrUndetectableFormat)
	}

	return Detection{Format: first.format, Separator: classifySeparator(first.delim)}, nil
}

// DetectSeparator returns the separator of the first line holding two
// tokens, without looking at the values. Mixed when there is none.
func DetectSeparator(text string) Separator {
	for _, line := range SplitLines(text) {
		tokens, delims := tokenize(line)
		if len(tokens) == 2 {
			return classifySeparator(delims[0])
		}
	}
	return SeparatorMixed
}

func classify(p Pair) (Format, bool) {
	a, b := math.Abs(p.First), math.Abs(p.Second)

	switch {
	case a <= maxLatitude && b <= maxLongitude:
		return FormatLatLon, true
	case a > maxLatitude && b > maxLongitude:
		return FormatUTM, true
	}

	return 0, false
}

func classifySeparator(run string) Separator {
	commas := strings.Count(run, ",")
	tabs := strings.Count(run, "\t")
	spaces := strings.Count(run, " ")
	others := len(run) - commas - tabs - spaces

	switch {
	case others > 0:
		return SeparatorMixed
	case commas == 1 && tabs == 0:
		// a comma may carry one space on either side
		if run == "," || run == ", " || run == " ," || run == " , " {
			return SeparatorComma
		}
		return SeparatorMixed
	case commas == 0 && tabs > 0 && spaces == 0:
		return SeparatorTab
	case commas == 0 && tabs == 0 && spaces > 0:
		return SeparatorSpace
	}

	return SeparatorMixed
}
