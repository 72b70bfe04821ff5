package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"
)

// Direction selects how lines are converted.
type Direction int

// Directions. Auto follows the detected format of the block.
const (
	Auto Direction = iota
	ForceUtmToGeo
	ForceGeoToUtm
)

func (d Direction) String() string {
	switch d {
	case Auto:
		return "auto"
	case ForceUtmToGeo:
		return "utm-to-geo"
	case ForceGeoToUtm:
		return "geo-to-utm"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts the String forms plus a few short aliases.
// An empty string is Auto.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "utm-to-geo", "utm2geo", "utm-to-latlon", "utm":
		return ForceUtmToGeo, nil
	case "geo-to-utm", "geo2utm", "latlon-to-utm", "latlon", "geo":
		return ForceGeoToUtm, nil
	}
	return Auto, fmt.Errorf("unknown direction %q", s)
}

// sourceFormat is the input format a direction reads.
func (d Direction) sourceFormat() parser.Format {
	if d == ForceUtmToGeo {
		return parser.FormatUTM
	}
	return parser.FormatLatLon
}

func directionFor(f parser.Format) Direction {
	if f == parser.FormatUTM {
		return ForceUtmToGeo
	}
	return ForceGeoToUtm
}

// ZoneSpec is either automatic per-point zone resolution or one fixed
// zone/hemisphere for the whole block. The zero value is AutoZone.
type ZoneSpec struct {
	zone       int
	hemisphere geo.Hemisphere
	fixed      bool
}

// AutoZone resolves zone and hemisphere from each point.
func AutoZone() ZoneSpec {
	return ZoneSpec{}
}

// FixedZone uses one zone and hemisphere for every line. The pair is
// validated by Convert, not here.
func FixedZone(zone int, h geo.Hemisphere) ZoneSpec {
	return ZoneSpec{zone: zone, hemisphere: h, fixed: true}
}

// Fixed returns the zone and hemisphere and whether it is fixed.
func (z ZoneSpec) Fixed() (int, geo.Hemisphere, bool) {
	return z.zone, z.hemisphere, z.fixed
}

func (z ZoneSpec) String() string {
	if !z.fixed {
		return "auto"
	}
	return strconv.Itoa(z.zone) + z.hemisphere.Letter()
}

// Options controls a Convert call.
type Options struct {
	Direction Direction
	Zone      ZoneSpec

	// SpecialZones applies the Norway and Svalbard zone exceptions
	// when zones are resolved automatically.
	SpecialZones bool
}

// ParseOptions builds Options from loosely typed input such as flags, config
// values or request fields. Zone 0 with no hemisphere means automatic zones.
// The zone number is not range checked here; Convert reports it per line.
func ParseOptions(direction string, zone int, hemisphere string, special bool) (Options, error) {
	dir, err := ParseDirection(direction)
	if err != nil {
		return Options{}, err
	}

	opts := Options{Direction: dir, SpecialZones: special}

	hemisphere = strings.TrimSpace(hemisphere)
	switch {
	case zone == 0 && hemisphere == "":
		opts.Zone = AutoZone()
	case zone == 0:
		return Options{}, fmt.Errorf("%w: hemisphere %q given without a zone", geo.ErrInvalidZone, hemisphere)
	default:
		h, err := geo.ParseHemisphere(hemisphere)
		if err != nil {
			return Options{}, err
		}
		opts.Zone = FixedZone(zone, h)
	}

	return opts, nil
}
