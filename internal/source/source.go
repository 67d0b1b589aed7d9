// Package source loads building footprints from GeoJSON files, the OSM
// Overpass API, or a built-in synthetic city.
package source

import "fmt"

// Kind names a data source.
type Kind string

const (
	KindGeoJSON  Kind = "geojson"
	KindOverpass Kind = "overpass"
	KindSynth    Kind = "synth"
)

// Error wraps a failure with the source kind it came from.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s source: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// parseYear extracts a leading four-digit year from raw attribute text, so
// OSM values like "1912-05" parse as 1912. Anything without a four-digit
// prefix yields 0, the yearless marker.
func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	y := 0
	for i := 0; i < 4; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0
		}
		y = y*10 + int(c-'0')
	}
	return y
}
