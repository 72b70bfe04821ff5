package converter

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"
)

func TestConvertBatchResilience(t *testing.T) {
	c := New(nil)

	res, err := c.Convert("41.651285, -0.869147\nnot,a,number\n41.65, -0.87", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(res.Outcomes))
	}

	for i, o := range res.Outcomes {
		if o.Line != i+1 {
			t.Errorf("outcome %d has line %d", i, o.Line)
		}
	}

	if !res.Outcomes[0].OK() || !res.Outcomes[2].OK() {
		t.Fatalf("lines 1 and 3 must convert: %+v", res.Outcomes)
	}

	bad := res.Outcomes[1]
	if bad.OK() || bad.Err == nil {
		t.Fatalf("line 2 must fail")
	}
	if bad.Err.Kind != KindTokenCountMismatch {
		t.Errorf("kind = %s, want TokenCountMismatch", bad.Err.Kind)
	}
	if bad.Err.Text != "not,a,number" || bad.Text != "not,a,number" {
		t.Errorf("text = %q, want the original line", bad.Err.Text)
	}
	if !errors.Is(bad.Err, parser.ErrTokenCount) {
		t.Errorf("error %v does not unwrap to ErrTokenCount", bad.Err)
	}

	if got := len(res.Records()); got != 2 {
		t.Errorf("got %d records, want 2", got)
	}
	if got := len(res.Failures()); got != 1 {
		t.Errorf("got %d failures, want 1", got)
	}
	if res.Direction != ForceGeoToUtm {
		t.Errorf("direction = %s, want geo-to-utm", res.Direction)
	}
	if res.Detection != (parser.Detection{Format: parser.FormatLatLon, Separator: parser.SeparatorComma}) {
		t.Errorf("detection = %s, want latlon/comma", res.Detection)
	}
}

func TestConvertGoldenPoint(t *testing.T) {
	res, err := New(nil).Convert("41.651285, -0.869147", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := res.Records()[0]
	if r.Source != SourceGeographic {
		t.Errorf("source = %s, want geographic", r.Source)
	}
	if r.UTM.ZoneDesignator() != "30N" {
		t.Fatalf("zone = %s, want 30N", r.UTM.ZoneDesignator())
	}
	if math.Abs(r.UTM.Easting-677437.23) > 0.05 || math.Abs(r.UTM.Northing-4613253.34) > 0.05 {
		t.Errorf("got %s, want 30N 677437.23 4613253.34", r.UTM)
	}
}

func TestConvertSouthernHemisphere(t *testing.T) {
	res, err := New(nil).Convert("-33.8688 151.2093", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := res.Records()[0].UTM
	if u.Zone != 56 || u.Hemisphere != geo.South {
		t.Fatalf("zone = %s, want 56S", u.ZoneDesignator())
	}
	if math.Abs(u.Easting-334368.63) > 0.05 || math.Abs(u.Northing-6250948.35) > 0.05 {
		t.Errorf("got %s, want 56S 334368.63 6250948.35", u)
	}
}

func TestConvertUndetectable(t *testing.T) {
	res, err := New(nil).Convert("hello\nworld", Options{})
	if !errors.Is(err, parser.ErrUndetectableFormat) {
		t.Fatalf("err = %v, want ErrUndetectableFormat", err)
	}
	if res != nil {
		t.Fatalf("result must be nil, got %+v", res)
	}
	if KindOf(err) != KindUndetectableFormat {
		t.Errorf("KindOf = %s, want UndetectableFormat", KindOf(err))
	}
}

func TestConvertUTMToGeographic(t *testing.T) {
	c := New(nil)

	opts := Options{Zone: FixedZone(30, geo.North)}
	res, err := c.Convert("676000, 4610000\n676000\t4610000", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Direction != ForceUtmToGeo {
		t.Fatalf("direction = %s, want utm-to-geo", res.Direction)
	}

	for _, r := range res.Records() {
		if r.Source != SourceUTM {
			t.Errorf("source = %s, want utm", r.Source)
		}
		if math.Abs(r.Geographic.Lat-41.622320) > 1e-6 || math.Abs(r.Geographic.Lon-(-0.887352)) > 1e-6 {
			t.Errorf("line %d: got %s, want 41.622320, -0.887352", r.Line, r.Geographic)
		}
		if r.UTM.Easting != 676000 || r.UTM.Northing != 4610000 {
			t.Errorf("line %d: original UTM changed to %s", r.Line, r.UTM)
		}
	}
	if len(res.Records()) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records()))
	}
}

func TestConvertUTMNeedsZone(t *testing.T) {
	res, err := New(nil).Convert("676000, 4610000\nbad line here\n677000, 4611000", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Kind{KindInvalidZone, KindTokenCountMismatch, KindInvalidZone}
	if len(res.Outcomes) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(res.Outcomes), len(want))
	}
	for i, o := range res.Outcomes {
		if o.OK() {
			t.Fatalf("line %d converted without a zone", o.Line)
		}
		if o.Err.Kind != want[i] {
			t.Errorf("line %d: kind = %s, want %s", o.Line, o.Err.Kind, want[i])
		}
	}
}

func TestConvertInvalidFixedZone(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zone 61", Options{Direction: ForceUtmToGeo, Zone: FixedZone(61, geo.North)}},
		{"zone 0", Options{Direction: ForceGeoToUtm, Zone: FixedZone(0, geo.South)}},
		{"no hemisphere", Options{Zone: FixedZone(30, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(nil).Convert("41.651285, -0.869147\n40.1, -1.2", tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, o := range res.Outcomes {
				if o.OK() || o.Err.Kind != KindInvalidZone {
					t.Errorf("line %d: got %+v, want InvalidZone", o.Line, o.Err)
				}
			}
		})
	}
}

func TestConvertFixedZoneForward(t *testing.T) {
	// Madrid sits in zone 30 but can be expressed in zone 31
	opts := Options{Direction: ForceGeoToUtm, Zone: FixedZone(31, geo.North)}

	res, err := New(nil).Convert("40.4168, -3.7038", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := res.Records()[0].UTM
	if u.Zone != 31 || u.Hemisphere != geo.North {
		t.Fatalf("zone = %s, want 31N", u.ZoneDesignator())
	}
	if math.Abs(u.Easting-(-68947.35)) > 0.05 || math.Abs(u.Northing-4495653.00) > 0.05 {
		t.Errorf("got %s, want 31N -68947.35 4495653.00", u)
	}
}

func TestConvertSpecialZones(t *testing.T) {
	text := "60.39, 5.32"

	plain, err := New(nil).Convert(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	special, err := New(nil).Convert(text, Options{SpecialZones: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if z := plain.Records()[0].UTM.Zone; z != 31 {
		t.Errorf("plain zone = %d, want 31", z)
	}
	if z := special.Records()[0].UTM.Zone; z != 32 {
		t.Errorf("special zone = %d, want 32", z)
	}
}

func TestConvertOutOfBand(t *testing.T) {
	res, err := New(nil).Convert("85, 10\n-80.5, 10\n41.651285, -0.869147", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Kind{KindOutOfProjectionRange, KindOutOfProjectionRange, KindUnknown}
	for i, o := range res.Outcomes {
		if want[i] == KindUnknown {
			if !o.OK() {
				t.Errorf("line %d failed: %v", o.Line, o.Err)
			}
			continue
		}
		if o.OK() || o.Err.Kind != want[i] {
			t.Errorf("line %d: got %+v, want %s", o.Line, o.Err, want[i])
		}
	}
}

func TestConvertForcedDirection(t *testing.T) {
	// a UTM looking line forced through geo-to-utm is out of range, the
	// rest of the block still converts
	text := "41.6\t-0.8\n676000\t4610000"

	res, err := New(nil).Convert(text, Options{Direction: ForceGeoToUtm})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Detection.Format != parser.FormatLatLon || res.Detection.Separator != parser.SeparatorTab {
		t.Errorf("detection = %s, want latlon/tab", res.Detection)
	}
	if !res.Outcomes[0].OK() {
		t.Errorf("line 1 failed: %v", res.Outcomes[0].Err)
	}
	if o := res.Outcomes[1]; o.OK() || o.Err.Kind != KindOutOfProjectionRange {
		t.Errorf("line 2: got %+v, want OutOfProjectionRange", o.Err)
	}
}

func TestConvertForcedUndetectable(t *testing.T) {
	// the first line is ambiguous and the second is not numeric, so Auto
	// would give up; a forced direction still converts the first line
	text := "100 50\nfoo bar"

	if _, err := New(nil).Convert(text, Options{}); !errors.Is(err, parser.ErrUndetectableFormat) {
		t.Fatalf("auto: err = %v, want ErrUndetectableFormat", err)
	}

	opts := Options{Direction: ForceUtmToGeo, Zone: FixedZone(30, geo.North)}
	res, err := New(nil).Convert(text, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Detection.Format != parser.FormatUTM || res.Detection.Separator != parser.SeparatorSpace {
		t.Errorf("detection = %s, want utm/space", res.Detection)
	}
	if !res.Outcomes[0].OK() {
		t.Errorf("line 1 failed: %v", res.Outcomes[0].Err)
	}
	if o := res.Outcomes[1]; o.OK() || o.Err.Kind != KindNumericParseFailure {
		t.Errorf("line 2: got %+v, want NumericParseFailure", o.Err)
	}
}

func TestConvertSkipsBlankLines(t *testing.T) {
	text := "\r\n41.651285, -0.869147\r\n\r\n   \t\r\n41.65, -0.87\r\n"

	res, err := New(nil).Convert(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(res.Outcomes))
	}
	if res.Outcomes[0].Line != 2 || res.Outcomes[1].Line != 5 {
		t.Errorf("lines = %d, %d, want 2, 5", res.Outcomes[0].Line, res.Outcomes[1].Line)
	}
	if res.Outcomes[1].Record.Line != 5 {
		t.Errorf("record line = %d, want 5", res.Outcomes[1].Record.Line)
	}
}

func TestZoneContextRoundTrip(t *testing.T) {
	c := New(nil)
	text := "41.651285, -0.869147\n41.7, -0.9\n41.6, -0.8"

	forward, err := c.Convert(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zone, ok := ZoneContext(forward.Outcomes)
	if !ok {
		t.Fatal("no zone context after a successful conversion")
	}
	if zone.String() != "30N" {
		t.Fatalf("zone context = %s, want 30N", zone)
	}

	var b strings.Builder
	for _, r := range forward.Records() {
		b.WriteString(r.UTM.String()[len("30N "):])
		b.WriteByte('\n')
	}

	back, err := c.Convert(b.String(), Options{Direction: ForceUtmToGeo, Zone: zone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := forward.Points()
	got := back.Points()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		// UTM text carries centimeters, about 1e-7 degrees
		if math.Abs(got[i].Lat-want[i].Lat) > 1e-6 || math.Abs(got[i].Lon-want[i].Lon) > 1e-6 {
			t.Errorf("point %d: got %s, want %s", i, got[i], want[i])
		}
	}

	if _, ok := ZoneContext(nil); ok {
		t.Error("empty outcomes must not yield a zone context")
	}
}

func TestConvertUnknownDirection(t *testing.T) {
	if _, err := New(nil).Convert("41.6, -0.8", Options{Direction: Direction(9)}); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name       string
		direction  string
		hemisphere string
		zone       int
		want       string
		wantDir    Direction
		wantErr    bool
	}{
		{name: "defaults", want: "auto", wantDir: Auto},
		{name: "fixed", direction: "utm-to-geo", zone: 30, hemisphere: "N", want: "30N", wantDir: ForceUtmToGeo},
		{name: "alias", direction: "geo2utm", zone: 56, hemisphere: "south", want: "56S", wantDir: ForceGeoToUtm},
		{name: "unchecked zone", zone: 99, hemisphere: "North", want: "99N", wantDir: Auto},
		{name: "bad hemisphere", zone: 30, hemisphere: "east", wantErr: true},
		{name: "zone without hemisphere", zone: 30, wantErr: true},
		{name: "hemisphere without zone", hemisphere: "N", wantErr: true},
		{name: "bad direction", direction: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.direction, tt.zone, tt.hemisphere, false)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Zone.String() != tt.want {
				t.Errorf("zone = %s, want %s", opts.Zone, tt.want)
			}
			if opts.Direction != tt.wantDir {
				t.Errorf("direction = %s, want %s", opts.Direction, tt.wantDir)
			}
		})
	}
}

func TestDirectionText(t *testing.T) {
	for _, d := range []Direction{Auto, ForceUtmToGeo, ForceGeoToUtm} {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", d, err)
		}

		var back Direction
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %q: %v", b, err)
		}
		if back != d {
			t.Errorf("got %s, want %s", back, d)
		}
	}
}

func TestOutcomeJSON(t *testing.T) {
	res, err := New(nil).Convert("41.651285, -0.869147\n1 2 3", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(b)
	for _, want := range []string{
		`"detection":{"format":"latlon","separator":"comma"}`,
		`"direction":"geo-to-utm"`,
		`"source":"geographic"`,
		`"hemisphere":"North"`,
		`"kind":"TokenCountMismatch"`,
		`"message":"expected 2 values, found 3"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("json %s does not contain %s", s, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("other"), KindUnknown},
		{parser.ErrUndetectableFormat, KindUndetectableFormat},
		{&parser.TokenCountError{Count: 3}, KindTokenCountMismatch},
		{&parser.NumericError{Token: "x"}, KindNumericParseFailure},
		{geo.ErrInvalidZone, KindInvalidZone},
		{geo.ErrOutOfRange, KindOutOfProjectionRange},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
