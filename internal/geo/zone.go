package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Zone bounds and width in degrees.
const (
	MinZone   = 1
	MaxZone   = 60
	zoneWidth = 6.0
)

// ZoneFor returns the standard UTM zone of a longitude, clamped to [1,60]
// so that longitude 180 lands in zone 60.
func ZoneFor(lon float64) int {
	zone := int(math.Floor((lon+180.0)/zoneWidth)) + 1
	if zone < MinZone {
		return MinZone
	}
	if zone > MaxZone {
		return MaxZone
	}
	return zone
}

// ZoneForPoint is ZoneFor with the Norway and Svalbard exceptions of the
// UTM grid applied.
func ZoneForPoint(lat, lon float64) int {
	// south-west Norway is widened to zone 32
	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}

	// Svalbard uses 9 and 12 degree wide odd zones
	if lat >= 72 && lat < 84 {
		switch {
		case lon >= 0 && lon < 9:
			return 31
		case lon >= 9 && lon < 21:
			return 33
		case lon >= 21 && lon < 33:
			return 35
		case lon >= 33 && lon < 42:
			return 37
		}
	}

	return ZoneFor(lon)
}

// HemisphereFor returns the hemisphere of a latitude; the equator is North.
func HemisphereFor(lat float64) Hemisphere {
	if lat >= 0 {
		return North
	}
	return South
}

// CentralMeridian returns the longitude of the zone's central meridian.
func CentralMeridian(zone int) float64 {
	return float64(zone-1)*zoneWidth - 180.0 + zoneWidth/2
}

// ValidateZone checks a zone/hemisphere pair without coercing it.
func ValidateZone(zone int, h Hemisphere) error {
	if zone < MinZone || zone > MaxZone {
		return fmt.Errorf("%w: zone %d outside [%d, %d]", ErrInvalidZone, zone, MinZone, MaxZone)
	}
	if h != North && h != South {
		return fmt.Errorf("%w: hemisphere is not set", ErrInvalidZone)
	}
	return nil
}

// ParseHemisphere accepts N, North, S or South in any case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "s", "south":
		return South, nil
	}
	return 0, fmt.Errorf("%w: unrecognized hemisphere %q", ErrInvalidZone, s)
}

// ParseZone reads a zone designator such as "30N", "30 S" or "33south".
// The numeric zone is range checked.
func ParseZone(s string) (int, Hemisphere, error) {
	s = strings.TrimSpace(s)

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: %q has no zone number", ErrInvalidZone, s)
	}

	zone, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidZone, s, err)
	}

	h, err := ParseHemisphere(s[i:])
	if err != nil {
		return 0, 0, err
	}

	if err := ValidateZone(zone, h); err != nil {
		return 0, 0, err
	}

	return zone, h, nil
}
