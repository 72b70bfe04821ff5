package geo

import (
	"fmt"
	"math"
)

// UTM projection constants.
const (
	ScaleFactor   = 0.9996
	FalseEasting  = 500000.0
	FalseNorthing = 10000000.0

	// MinLatitude and MaxLatitude bound the band where UTM is defined.
	MinLatitude = -80.0
	MaxLatitude = 84.0

	// maxLonOffset is the distance from the central meridian where the
	// series diverges (the projection pole).
	maxLonOffset = 90.0

	// bandTolerance absorbs float noise when Inverse lands on a band edge.
	bandTolerance = 1e-9

	seriesOrder = 6
)

// Projection is a Transverse Mercator projection over one reference ellipsoid,
// evaluated with the 6th order Krüger series. It holds only immutable data and
// may be shared between goroutines.
type Projection struct {
	ellipsoid Ellipsoid
	e         float64
	k0A       float64 // scale factor times rectifying radius

	alpha [seriesOrder]float64 // forward series
	beta  [seriesOrder]float64 // inverse series
	delta [seriesOrder]float64 // conformal to geodetic latitude
}

// NewProjection precomputes the series coefficients for the ellipsoid.
func NewProjection(ell Ellipsoid) *Projection {
	n := ell.ThirdFlattening()
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	n5 := n4 * n
	n6 := n5 * n

	p := &Projection{
		ellipsoid: ell,
		e:         ell.Eccentricity(),
		k0A:       ScaleFactor * ell.A / (1 + n) * (1 + n2/4 + n4/64 + n6/256),
	}

	p.alpha = [seriesOrder]float64{
		n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800,
		13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360,
		61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440,
		49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600,
		34729*n5/80640 - 3418889*n6/1995840,
		212378941 * n6 / 319334400,
	}

	p.beta = [seriesOrder]float64{
		n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
		n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
		17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
		4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
		4583*n5/161280 - 108847*n6/3991680,
		20648693 * n6 / 638668800,
	}

	p.delta = [seriesOrder]float64{
		2*n - 2*n2/3 - 2*n3 + 116*n4/45 + 26*n5/45 - 2854*n6/675,
		7*n2/3 - 8*n3/5 - 227*n4/45 + 2704*n5/315 + 2323*n6/945,
		56*n3/15 - 136*n4/35 - 1262*n5/105 + 73814*n6/2835,
		4279*n4/630 - 332*n5/35 - 399572*n6/14175,
		4174*n5/315 - 144838*n6/6237,
		601676 * n6 / 22275,
	}

	return p
}

// Ellipsoid returns the reference ellipsoid of the projection.
func (p *Projection) Ellipsoid() Ellipsoid {
	return p.ellipsoid
}

// Forward projects a geographic point into the given zone and hemisphere.
//
// The zone does not have to be the natural zone of the point, which allows a
// whole block to be expressed in one zone, but the point must stay within 90
// degrees of the zone's central meridian.
func (p *Projection) Forward(pt LatLon, zone int, h Hemisphere) (UTM, error) {
	if err := ValidateZone(zone, h); err != nil {
		return UTM{}, err
	}
	if !finite(pt.Lat) || !finite(pt.Lon) {
		return UTM{}, fmt.Errorf("%w: non-finite coordinate", ErrOutOfProjectionRange)
	}
	if pt.Lat < MinLatitude || pt.Lat > MaxLatitude {
		return UTM{}, fmt.Errorf("%w: latitude %g outside [%g, %g]",
			ErrOutOfProjectionRange, pt.Lat, MinLatitude, MaxLatitude)
	}
	if math.Abs(pt.Lon) > 180 {
		return UTM{}, fmt.Errorf("%w: longitude %g outside [-180, 180]", ErrOutOfRange, pt.Lon)
	}

	dLon := normalizeLon(pt.Lon - CentralMeridian(zone))
	if math.Abs(dLon) >= maxLonOffset {
		return UTM{}, fmt.Errorf("%w: longitude %g is %g degrees from the zone %d meridian",
			ErrOutOfProjectionRange, pt.Lon, math.Abs(dLon), zone)
	}

	phi := degToRad(pt.Lat)
	lambda := degToRad(dLon)

	// conformal latitude
	sinPhi := math.Sin(phi)
	t := math.Sinh(math.Atanh(sinPhi) - p.e*math.Atanh(p.e*sinPhi))

	xi := math.Atan2(t, math.Cos(lambda))
	eta := math.Atanh(math.Sin(lambda) / math.Sqrt(1+t*t))

	x, y := eta, xi
	for j := 0; j < seriesOrder; j++ {
		k := 2 * float64(j+1)
		x += p.alpha[j] * math.Cos(k*xi) * math.Sinh(k*eta)
		y += p.alpha[j] * math.Sin(k*xi) * math.Cosh(k*eta)
	}

	easting := FalseEasting + p.k0A*x
	northing := p.k0A * y
	if h == South {
		northing += FalseNorthing
	}

	if northing < 0 {
		return UTM{}, fmt.Errorf("%w: latitude %g is south of the equator, northern hemisphere requested",
			ErrOutOfProjectionRange, pt.Lat)
	}

	return UTM{
		Easting:    easting,
		Northing:   northing,
		Zone:       zone,
		Hemisphere: h,
	}, nil
}

// Inverse converts a UTM point back to geographic coordinates.
func (p *Projection) Inverse(u UTM) (LatLon, error) {
	if err := ValidateZone(u.Zone, u.Hemisphere); err != nil {
		return LatLon{}, err
	}
	if !finite(u.Easting) || !finite(u.Northing) {
		return LatLon{}, fmt.Errorf("%w: non-finite coordinate", ErrOutOfProjectionRange)
	}
	if u.Northing < 0 {
		return LatLon{}, fmt.Errorf("%w: negative northing %g", ErrOutOfRange, u.Northing)
	}

	northing := u.Northing
	if u.Hemisphere == South {
		northing -= FalseNorthing
	}

	xi := northing / p.k0A
	eta := (u.Easting - FalseEasting) / p.k0A

	xiP, etaP := xi, eta
	for j := 0; j < seriesOrder; j++ {
		k := 2 * float64(j+1)
		xiP -= p.beta[j] * math.Sin(k*xi) * math.Cosh(k*eta)
		etaP -= p.beta[j] * math.Cos(k*xi) * math.Sinh(k*eta)
	}

	chi := math.Asin(math.Sin(xiP) / math.Cosh(etaP))
	phi := chi
	for j := 0; j < seriesOrder; j++ {
		phi += p.delta[j] * math.Sin(2*float64(j+1)*chi)
	}
	lambda := math.Atan2(math.Sinh(etaP), math.Cos(xiP))

	lat := radToDeg(phi)
	lon := normalizeLon(CentralMeridian(u.Zone) + radToDeg(lambda))

	if !finite(lat) || !finite(lon) {
		return LatLon{}, fmt.Errorf("%w: easting %g northing %g do not map to a point",
			ErrOutOfProjectionRange, u.Easting, u.Northing)
	}
	if lat < MinLatitude-bandTolerance || lat > MaxLatitude+bandTolerance {
		return LatLon{}, fmt.Errorf("%w: latitude %g outside [%g, %g]",
			ErrOutOfProjectionRange, lat, MinLatitude, MaxLatitude)
	}
	// snap series noise at the band edges back inside
	lat = math.Max(MinLatitude, math.Min(MaxLatitude, lat))

	return LatLon{Lat: lat, Lon: lon}, nil
}

// ToUTM projects a point into its natural zone, or into the Norway/Svalbard
// exception zones when special is set.
func (p *Projection) ToUTM(pt LatLon, special bool) (UTM, error) {
	zone := ZoneFor(pt.Lon)
	if special {
		zone = ZoneForPoint(pt.Lat, pt.Lon)
	}

	return p.Forward(pt, zone, HemisphereFor(pt.Lat))
}
