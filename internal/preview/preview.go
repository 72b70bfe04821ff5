// Package preview draws converted points onto a small transparent image,
// the way the desktop map marks them, and encodes it as WebP.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/woozymasta/coordsuite/internal/geo"

	"github.com/chai2010/webp"
	"golang.org/x/image/vector"
)

// ErrNoPoints is returned when there is nothing to draw.
var ErrNoPoints = errors.New("no points to draw")

// Marker colors.
var (
	Fill   = color.RGBA{R: 0xff, A: 0xff}
	Stroke = color.RGBA{A: 0xff}
)

// bezier control distance for a quarter circle
const kappa = 0.5522847498

// Options sets the canvas size, marker radius and encoder settings.
type Options struct {
	Width    int     `yaml:"width" json:"width"`
	Height   int     `yaml:"height" json:"height"`
	Radius   float64 `yaml:"radius" json:"radius"`
	Quality  float32 `yaml:"quality" json:"quality"`
	Lossless bool    `yaml:"lossless" json:"lossless"`
}

// DefaultOptions returns a 512x512 canvas with 5px markers.
func DefaultOptions() Options {
	return Options{
		Width:   512,
		Height:  512,
		Radius:  5,
		Quality: 85,
	}
}

// Render fits the points into the canvas using Web Mercator and draws each
// as a red disc with a one pixel black ring.
func Render(points []geo.LatLon, opts Options) (*image.RGBA, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("canvas size must be positive")
	}
	if opts.Radius <= 0 {
		opts.Radius = DefaultOptions().Radius
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	z := vector.NewRasterizer(opts.Width, opts.Height)

	fit := newFitter(points, float64(opts.Width), float64(opts.Height), opts.Radius+2)

	for _, p := range points {
		x, y := fit.pixel(p)

		disc(z, x, y, opts.Radius+1)
		z.Draw(dst, dst.Bounds(), image.NewUniform(Stroke), image.Point{})

		disc(z, x, y, opts.Radius)
		z.Draw(dst, dst.Bounds(), image.NewUniform(Fill), image.Point{})
	}

	return dst, nil
}

// Encode writes img as WebP.
func Encode(w io.Writer, img image.Image, opts Options) error {
	return webp.Encode(w, img, &webp.Options{Lossless: opts.Lossless, Quality: opts.Quality})
}

// Write renders and encodes in one step.
func Write(w io.Writer, points []geo.LatLon, opts Options) error {
	img, err := Render(points, opts)
	if err != nil {
		return err
	}
	return Encode(w, img, opts)
}

// fitter maps normalized Web Mercator world coordinates onto the canvas,
// centered and uniformly scaled.
type fitter struct {
	cx, cy float64
	scale  float64
	w, h   float64
}

func newFitter(points []geo.LatLon, w, h, pad float64) fitter {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, p := range points {
		x, y := geo.LonLatToWorld(p.Lon, p.Lat)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	scale := math.Inf(1)
	if dx := maxX - minX; dx > 0 {
		scale = math.Min(scale, math.Max(w-2*pad, 1)/dx)
	}
	if dy := maxY - minY; dy > 0 {
		scale = math.Min(scale, math.Max(h-2*pad, 1)/dy)
	}
	if math.IsInf(scale, 1) {
		// a single distinct position
		scale = 0
	}

	return fitter{
		cx:    (minX + maxX) / 2,
		cy:    (minY + maxY) / 2,
		scale: scale,
		w:     w,
		h:     h,
	}
}

func (f fitter) pixel(p geo.LatLon) (float32, float32) {
	x, y := geo.LonLatToWorld(p.Lon, p.Lat)
	return float32(f.w/2 + (x-f.cx)*f.scale), float32(f.h/2 + (y-f.cy)*f.scale)
}

// disc resets the rasterizer and adds a closed circle path.
func disc(z *vector.Rasterizer, cx, cy float32, radius float64) {
	w, h := z.Size().X, z.Size().Y
	z.Reset(w, h)
	z.DrawOp = draw.Over

	r := float32(radius)
	k := float32(kappa) * r

	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
