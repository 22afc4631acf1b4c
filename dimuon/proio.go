package dimuon

import (
	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"

	"github.com/decibelcooper/sqmon/kinematics"
)

// ReadProio pairs the opposite-charge reconstructed tracks of every event
// in fname. Records follow the event order of the file.
func ReadProio(fname string) ([]kinematics.Event, error) {
	reader, err := proio.Open(fname)
	if err != nil {
		return nil, wrapErr("open", fname, err)
	}
	defer reader.Close()

	var events []kinematics.Event
	for event := range reader.ScanEvents() {
		var tracks []track
		for _, id := range event.TaggedEntries("Reconstructed") {
			trk, ok := event.GetEntry(id).(*eic.Track)
			if !ok || len(trk.Segment) == 0 {
				continue
			}

			seg := trk.Segment[0]
			if seg.Chargesign == nil || seg.Poq == nil {
				continue
			}
			tracks = append(tracks, track{
				charge: float64(*seg.Chargesign),
				p:      [3]float64{*seg.Poq.X, *seg.Poq.Y, *seg.Poq.Z},
			})
		}

		events = append(events, pair(tracks)...)
	}

	return events, nil
}
