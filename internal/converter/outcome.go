package converter

import (
	"fmt"

	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"
)

// Source names the representation a record was read from.
type Source int

// Record sources.
const (
	SourceGeographic Source = iota + 1
	SourceUTM
)

func (s Source) String() string {
	switch s {
	case SourceGeographic:
		return "geographic"
	case SourceUTM:
		return "utm"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Record pairs the parsed point with its converted counterpart. Both fields
// always describe the same physical point; Source tells which one was read.
type Record struct {
	Geographic geo.LatLon `json:"geographic" yaml:"geographic"`
	UTM        geo.UTM    `json:"utm" yaml:"utm"`
	Line       int        `json:"line" yaml:"line"`
	Source     Source     `json:"source" yaml:"source"`
}

// Outcome is the result of one non-blank input line. Exactly one of Record
// and Err is set.
type Outcome struct {
	Record *Record    `json:"record,omitempty" yaml:"record,omitempty"`
	Err    *LineError `json:"error,omitempty" yaml:"error,omitempty"`
	Text   string     `json:"text" yaml:"text"`
	Line   int        `json:"line" yaml:"line"`
}

// OK reports whether the line converted.
func (o Outcome) OK() bool {
	return o.Record != nil
}

// Result is the output of one Convert call.
type Result struct {
	Detection parser.Detection `json:"detection" yaml:"detection"`
	Direction Direction        `json:"direction" yaml:"direction"`
	Outcomes  []Outcome        `json:"outcomes" yaml:"outcomes"`
}

// Records returns the successful records in input order.
func (r *Result) Records() []Record { return Records(r.Outcomes) }

// Failures returns the line errors in input order.
func (r *Result) Failures() []*LineError { return Failures(r.Outcomes) }

// Points returns the geographic side of every record, for map collaborators.
func (r *Result) Points() []geo.LatLon { return Points(r.Outcomes) }

// Summary is a one-line description used by logs and the CLI.
func (r *Result) Summary() string {
	ok := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			ok++
		}
	}
	return fmt.Sprintf("%s %s: %d converted, %d failed", r.Detection, r.Direction, ok, len(r.Outcomes)-ok)
}

// Records filters the successful records out of outcomes.
func Records(outcomes []Outcome) []Record {
	records := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Record != nil {
			records = append(records, *o.Record)
		}
	}
	return records
}

// Failures filters the line errors out of outcomes.
func Failures(outcomes []Outcome) []*LineError {
	var failures []*LineError
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, o.Err)
		}
	}
	return failures
}

// Points returns the geographic point of every successful outcome.
func Points(outcomes []Outcome) []geo.LatLon {
	points := make([]geo.LatLon, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Record != nil {
			points = append(points, o.Record.Geographic)
		}
	}
	return points
}

// ZoneContext returns the zone and hemisphere of the first successful record,
// so that the UTM side of a previous run can be converted back in the same
// zone.
func ZoneContext(outcomes []Outcome) (ZoneSpec, bool) {
	for _, o := range outcomes {
		if o.Record != nil {
			return FixedZone(o.Record.UTM.Zone, o.Record.UTM.Hemisphere), true
		}
	}
	return AutoZone(), false
}
