package geo

import (
	"fmt"
	"math"
	"strings"
)

// Ellipsoid describes a reference ellipsoid by its semi-major axis (meters)
// and inverse flattening.
type Ellipsoid struct {
	Name string  `json:"name" yaml:"name"`
	A    float64 `json:"a" yaml:"a"`
	InvF float64 `json:"inv_f" yaml:"inv_f"`
}

var (
	// WGS84 is the GPS datum ellipsoid and the default for every conversion.
	WGS84 = Ellipsoid{Name: "WGS84", A: 6378137.0, InvF: 298.257223563}

	// GRS80 is used by ETRS89 and NAD83.
	GRS80 = Ellipsoid{Name: "GRS80", A: 6378137.0, InvF: 298.257222101}

	// International1924 (Hayford) is used by ED50.
	International1924 = Ellipsoid{Name: "International1924", A: 6378388.0, InvF: 297.0}
)

// Ellipsoids returns the known reference ellipsoids.
func Ellipsoids() []Ellipsoid {
	return []Ellipsoid{WGS84, GRS80, International1924}
}

// EllipsoidByName looks up a known ellipsoid, ignoring case, dashes and spaces.
// An empty name selects WGS84.
func EllipsoidByName(name string) (Ellipsoid, error) {
	key := normalizeName(name)
	if key == "" {
		return WGS84, nil
	}

	for _, e := range Ellipsoids() {
		if normalizeName(e.Name) == key {
			return e, nil
		}
	}

	// common aliases
	switch key {
	case "hayford", "ed50", "intl1924":
		return International1924, nil
	case "etrs89", "nad83":
		return GRS80, nil
	}

	return Ellipsoid{}, fmt.Errorf("unknown ellipsoid %q", name)
}

// Flattening returns f = 1/InvF.
func (e Ellipsoid) Flattening() float64 {
	return 1 / e.InvF
}

// Eccentricity returns the first eccentricity.
func (e Ellipsoid) Eccentricity() float64 {
	f := e.Flattening()
	return math.Sqrt(f * (2 - f))
}

// ThirdFlattening returns n = f / (2 - f), the expansion parameter of the Krüger series.
func (e Ellipsoid) ThirdFlattening() float64 {
	f := e.Flattening()
	return f / (2 - f)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", " ", "", "_", "").Replace(s)
}
