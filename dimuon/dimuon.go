// Package dimuon reads dimuon momentum records from event files and
// writes the derived observables back out.
package dimuon

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/sqmon/kinematics"
)

// Read loads the dimuon records of fname. Files with a .proio extension
// are read as proio event streams, anything else as a CSV table.
func Read(fname string) ([]kinematics.Event, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".proio":
		return ReadProio(fname)
	default:
		return ReadCSV(fname)
	}
}

// track is the charge and momentum of a reconstructed track.
type track struct {
	charge float64
	p      [3]float64
}

// pair combines every opposite-charge pair of tracks into a dimuon
// record, positive track first.
func pair(tracks []track) []kinematics.Event {
	var events []kinematics.Event
	for i := 0; i < len(tracks); i++ {
		for j := i + 1; j < len(tracks); j++ {
			if tracks[i].charge*tracks[j].charge >= 0 {
				continue
			}

			pos, neg := tracks[i], tracks[j]
			if pos.charge < 0 {
				pos, neg = neg, pos
			}
			events = append(events, kinematics.Event{
				pos.p[0], pos.p[1], pos.p[2],
				neg.p[0], neg.p[1], neg.p[2],
			})
		}
	}
	return events
}

func wrapErr(op, fname string, err error) error {
	return fmt.Errorf("dimuon: could not %s %q: %w", op, fname, err)
}
