// Package converter turns blocks of coordinate text into ordered per-line
// outcomes, converting between Lat/Lon and UTM.
//
// A block is detected once and every line is converted in the same direction.
// A line that fails is reported in place and never aborts the block; only a
// block whose format cannot be detected fails as a whole.
package converter

import (
	"fmt"

	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"
)

// Converter holds the projection used for every conversion. It keeps no
// per-call state and may be shared between goroutines.
type Converter struct {
	proj *geo.Projection
}

// New returns a converter over proj, or over WGS84 when proj is nil.
func New(proj *geo.Projection) *Converter {
	if proj == nil {
		proj = geo.NewProjection(geo.WGS84)
	}
	return &Converter{proj: proj}
}

// Projection returns the projection the converter uses.
func (c *Converter) Projection() *geo.Projection {
	return c.proj
}

// Convert detects the block, then parses and converts every non-blank line.
//
// In Auto mode an undetectable block returns an error wrapping
// parser.ErrUndetectableFormat and no result. A forced direction ignores the
// detected format; if detection fails it still reads the separator from the
// first line holding two tokens.
func (c *Converter) Convert(text string, opts Options) (*Result, error) {
	detection, err := parser.Detect(text)

	direction := opts.Direction
	switch direction {
	case Auto:
		if err != nil {
			return nil, err
		}
		direction = directionFor(detection.Format)

	case ForceUtmToGeo, ForceGeoToUtm:
		if err != nil {
			detection.Separator = parser.DetectSeparator(text)
		}
		detection.Format = direction.sourceFormat()

	default:
		return nil, fmt.Errorf("unknown direction %s", direction)
	}

	// option errors are a property of the request, reported on every line
	zoneErr := c.checkZone(direction, opts.Zone)

	lines := parser.SplitLines(text)
	result := &Result{
		Detection: detection,
		Direction: direction,
		Outcomes:  make([]Outcome, 0, len(lines)),
	}

	for i, line := range lines {
		if parser.IsBlank(line) {
			continue
		}

		outcome := Outcome{Line: i + 1, Text: line}

		record, err := c.convertLine(line, direction, opts, zoneErr)
		if err != nil {
			outcome.Err = newLineError(outcome.Line, line, err)
		} else {
			record.Line = outcome.Line
			outcome.Record = record
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func (c *Converter) checkZone(direction Direction, zs ZoneSpec) error {
	zone, h, fixed := zs.Fixed()

	if !fixed {
		if direction == ForceUtmToGeo {
			return fmt.Errorf("%w: UTM input needs an explicit zone and hemisphere", geo.ErrInvalidZone)
		}
		return nil
	}

	return geo.ValidateZone(zone, h)
}

// convertLine parses first so that a malformed line reports the parse
// failure rather than a request level zone error.
func (c *Converter) convertLine(line string, direction Direction, opts Options, zoneErr error) (*Record, error) {
	pair, err := parser.ParseLine(line)
	if err != nil {
		return nil, err
	}
	if zoneErr != nil {
		return nil, zoneErr
	}

	if direction == ForceUtmToGeo {
		return c.fromUTM(pair, opts.Zone)
	}
	return c.fromGeographic(pair, opts)
}

func (c *Converter) fromGeographic(pair parser.Pair, opts Options) (*Record, error) {
	pt, err := geo.NewLatLon(pair.First, pair.Second)
	if err != nil {
		return nil, err
	}

	var u geo.UTM
	if zone, h, fixed := opts.Zone.Fixed(); fixed {
		u, err = c.proj.Forward(pt, zone, h)
	} else {
		u, err = c.proj.ToUTM(pt, opts.SpecialZones)
	}
	if err != nil {
		return nil, err
	}

	return &Record{Source: SourceGeographic, Geographic: pt, UTM: u}, nil
}

func (c *Converter) fromUTM(pair parser.Pair, zs ZoneSpec) (*Record, error) {
	zone, h, _ := zs.Fixed()

	u, err := geo.NewUTM(pair.First, pair.Second, zone, h)
	if err != nil {
		return nil, err
	}

	pt, err := c.proj.Inverse(u)
	if err != nil {
		return nil, err
	}

	return &Record{Source: SourceUTM, Geographic: pt, UTM: u}, nil
}
