package geo

import "math"

// MaxMercatorLat is the latitude where the square Web Mercator world ends.
const MaxMercatorLat = 85.05112878

// WorldToLonLat converts normalized Web Mercator world coordinates
// (x and y in [0..1], y growing southward) to WGS84 longitude and latitude.
//
// It maps x to the longitude range [-180, 180] and applies an inverse
// Mercator projection for latitude.
func WorldToLonLat(x, y float64) (lon, lat float64) {
	// x: [0..1] -> lon: [-180..180]
	lon = x*360.0 - 180.0

	// y: [0..1] -> mercatorY: [PI..-PI]
	mercatorY := math.Pi - y*2.0*math.Pi

	// Inverse Mercator projection
	latRad := (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)
	lat = clampLat(radToDeg(latRad))

	return lon, lat
}

// LonLatToWorld is the forward counterpart of WorldToLonLat. Latitudes beyond
// MaxMercatorLat are clamped to the edge of the world square.
func LonLatToWorld(lon, lat float64) (x, y float64) {
	x = (lon + 180.0) / 360.0

	phi := degToRad(clampLat(lat))
	mercatorY := math.Log(math.Tan(math.Pi*0.25 + phi*0.5))
	y = (math.Pi - mercatorY) / (2.0 * math.Pi)

	return x, y
}

func clampLat(lat float64) float64 {
	if lat > MaxMercatorLat {
		return MaxMercatorLat
	} else if lat < -MaxMercatorLat {
		return -MaxMercatorLat
	}
	return lat
}

func degToRad(v float64) float64 { return v * math.Pi / 180.0 }
func radToDeg(v float64) float64 { return v * 180.0 / math.Pi }

// normalizeLon wraps a longitude into [-180, 180].
func normalizeLon(lon float64) float64 {
	return math.Remainder(lon, 360)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
