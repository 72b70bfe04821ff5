package export

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/woozymasta/coordsuite/internal/converter"
)

var (
	utmHeader    = []string{"Easting", "Northing", "Zone", "Hemisphere"}
	latLonHeader = []string{"Latitude", "Longitude"}
)

func writeCSV(w io.Writer, records []converter.Record, utm bool, delim rune, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := latLonHeader
	if utm {
		header = utmHeader
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		var row []string
		if utm {
			row = []string{
				formatFloat(r.UTM.Easting, opts.PrecisionMeters),
				formatFloat(r.UTM.Northing, opts.PrecisionMeters),
				strconv.Itoa(r.UTM.Zone),
				r.UTM.Hemisphere.String(),
			}
		} else {
			row = []string{
				formatFloat(r.Geographic.Lat, opts.PrecisionDegrees),
				formatFloat(r.Geographic.Lon, opts.PrecisionDegrees),
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeText produces the clipboard payload: one pair per line, no header.
func writeText(w io.Writer, records []converter.Record, utm bool, delim rune, opts Options) error {
	bw := bufio.NewWriter(w)

	for _, r := range records {
		if utm {
			bw.WriteString(formatFloat(r.UTM.Easting, opts.PrecisionMeters))
			bw.WriteRune(delim)
			bw.WriteString(formatFloat(r.UTM.Northing, opts.PrecisionMeters))
		} else {
			bw.WriteString(formatFloat(r.Geographic.Lat, opts.PrecisionDegrees))
			bw.WriteRune(delim)
			bw.WriteString(formatFloat(r.Geographic.Lon, opts.PrecisionDegrees))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
