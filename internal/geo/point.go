package geo

import (
	"fmt"
	"strconv"
)

// Hemisphere selects the northing origin of a UTM point.
// The zero value is not a valid hemisphere.
type Hemisphere uint8

// Hemisphere values.
const (
	North Hemisphere = iota + 1
	South
)

// String returns "North" or "South".
func (h Hemisphere) String() string {
	switch h {
	case North:
		return "North"
	case South:
		return "South"
	}
	return "Hemisphere(" + strconv.Itoa(int(h)) + ")"
}

// Letter returns "N" or "S".
func (h Hemisphere) Letter() string {
	switch h {
	case North:
		return "N"
	case South:
		return "S"
	}
	return "?"
}

// MarshalText implements encoding.TextMarshaler.
func (h Hemisphere) MarshalText() ([]byte, error) {
	if h != North && h != South {
		return nil, fmt.Errorf("%w: hemisphere is not set", ErrInvalidZone)
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hemisphere) UnmarshalText(b []byte) error {
	v, err := ParseHemisphere(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// LatLon is a geographic point in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// NewLatLon validates the ranges lat [-90,90] and lon [-180,180].
// Out of range values are rejected, never clamped.
func NewLatLon(lat, lon float64) (LatLon, error) {
	if !finite(lat) || lat < -90 || lat > 90 {
		return LatLon{}, fmt.Errorf("%w: latitude %g outside [-90, 90]", ErrOutOfRange, lat)
	}
	if !finite(lon) || lon < -180 || lon > 180 {
		return LatLon{}, fmt.Errorf("%w: longitude %g outside [-180, 180]", ErrOutOfRange, lon)
	}
	return LatLon{Lat: lat, Lon: lon}, nil
}

// String formats the point as "lat, lon" with six decimals.
func (p LatLon) String() string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + ", " + strconv.FormatFloat(p.Lon, 'f', 6, 64)
}

// UTM is a projected point. Easting and northing are meaningless without
// the zone and hemisphere, so the four always travel together.
type UTM struct {
	Easting    float64    `json:"easting" yaml:"easting"`
	Northing   float64    `json:"northing" yaml:"northing"`
	Zone       int        `json:"zone" yaml:"zone"`
	Hemisphere Hemisphere `json:"hemisphere" yaml:"hemisphere"`
}

// NewUTM validates the zone/hemisphere pair and a non-negative northing.
// Easting is not range checked.
func NewUTM(easting, northing float64, zone int, h Hemisphere) (UTM, error) {
	if err := ValidateZone(zone, h); err != nil {
		return UTM{}, err
	}
	if !finite(easting) || !finite(northing) {
		return UTM{}, fmt.Errorf("%w: non-finite coordinate", ErrOutOfRange)
	}
	if northing < 0 {
		return UTM{}, fmt.Errorf("%w: negative northing %g", ErrOutOfRange, northing)
	}
	return UTM{Easting: easting, Northing: northing, Zone: zone, Hemisphere: h}, nil
}

// ZoneDesignator returns the zone and hemisphere letter, e.g. "30N".
func (u UTM) ZoneDesignator() string {
	return strconv.Itoa(u.Zone) + u.Hemisphere.Letter()
}

// String formats the point as "30N 677437.23 4613253.34".
func (u UTM) String() string {
	return u.ZoneDesignator() + " " +
		strconv.FormatFloat(u.Easting, 'f', 2, 64) + " " +
		strconv.FormatFloat(u.Northing, 'f', 2, 64)
}
