package geo

import (
	"math"
	"strconv"
	"strings"
)

// Default map center used when there is nothing to show.
const (
	DefaultLat = 41.651285
	DefaultLon = -0.869147

	// SinglePointZoom is used when the view holds exactly one point.
	SinglePointZoom = 15

	// viewPadding widens the bounding box so that edge points are not clipped.
	viewPadding = 1.3
)

// tileWidths holds the width in degrees of one tile per zoom level.
// https://wiki.openstreetmap.org/wiki/Zoom_levels
var tileWidths = [...]float64{
	360.0, 180.0, 90.0, 45.0, 22.5, 11.25, 5.625, 2.813, 1.406, 0.703, 0.352, 0.176, 0.088, 0.044,
	0.022, 0.011, 0.005, 0.003, 0.001, 0.0005, 0.00025,
}

// MaxZoom is the deepest zoom level of the tile width table.
const MaxZoom = len(tileWidths) - 1

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// TileCoordinate represents a specific slippy map tile.
type TileCoordinate struct {
	Z int `json:"z" yaml:"z"`
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// View is what a map needs to frame a set of points.
type View struct {
	Center LatLon         `json:"center" yaml:"center"`
	Bounds Bounds         `json:"bounds" yaml:"bounds"`
	Tile   TileCoordinate `json:"tile" yaml:"tile"`
	Zoom   int            `json:"zoom" yaml:"zoom"`
	Points int            `json:"points" yaml:"points"`
}

// BoundsOf returns the bounding box of the points, false when there are none.
func BoundsOf(points []LatLon) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: math.MaxFloat64, MaxLat: -math.MaxFloat64,
		MinLon: math.MaxFloat64, MaxLon: -math.MaxFloat64,
	}
	for _, p := range points {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}

	return b, true
}

// NewView centers on the mean of the points and picks a zoom level that
// fits their extent. An empty slice yields the default view.
func NewView(points []LatLon) View {
	if len(points) == 0 {
		center := LatLon{Lat: DefaultLat, Lon: DefaultLon}
		return View{
			Center: center,
			Bounds: Bounds{MinLat: DefaultLat, MaxLat: DefaultLat, MinLon: DefaultLon, MaxLon: DefaultLon},
			Zoom:   SinglePointZoom,
			Tile:   TileAt(center, SinglePointZoom),
		}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(points))
	center := LatLon{Lat: sumLat / n, Lon: sumLon / n}

	bounds, _ := BoundsOf(points)

	zoom := SinglePointZoom
	if len(points) > 1 {
		zoom = ZoomFor(bounds)
	}

	return View{
		Center: center,
		Bounds: bounds,
		Zoom:   zoom,
		Tile:   TileAt(center, zoom),
		Points: len(points),
	}
}

// ZoomFor returns the first zoom level whose tile is narrower than the
// padded extent of the box. Boxes smaller than the deepest tile get MaxZoom.
func ZoomFor(b Bounds) int {
	extent := viewPadding * math.Max(b.MaxLat-b.MinLat, b.MaxLon-b.MinLon)

	for z, width := range tileWidths {
		if extent-width > 0 {
			return z
		}
	}

	return MaxZoom
}

// TileAt returns the slippy map tile containing p at zoom z.
func TileAt(p LatLon, z int) TileCoordinate {
	if z < 0 {
		z = 0
	}

	x, y := LonLatToWorld(p.Lon, p.Lat)
	n := 1 << z

	return TileCoordinate{
		Z: z,
		X: clampTile(int(math.Floor(x*float64(n))), n),
		Y: clampTile(int(math.Floor(y*float64(n))), n),
	}
}

func clampTile(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// TileURL expands {z}, {x}, {y} and {tms_y} in a tile URL template.
func TileURL(tpl string, c TileCoordinate) string {
	s := strings.ReplaceAll(tpl, "{z}", strconv.Itoa(c.Z))
	s = strings.ReplaceAll(s, "{x}", strconv.Itoa(c.X))
	s = strings.ReplaceAll(s, "{y}", strconv.Itoa(c.Y))

	if strings.Contains(s, "{tms_y}") {
		maxCoord := (1 << c.Z) - 1
		tmsY := maxCoord - c.Y
		s = strings.ReplaceAll(s, "{tms_y}", strconv.Itoa(tmsY))
	}

	return s
}
