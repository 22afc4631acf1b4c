package dimuon

import (
	"fmt"
	"io"
	"strings"

	"go-hep.org/x/hep/csvutil"

	"github.com/decibelcooper/sqmon/kinematics"
)

// ReadCSV reads a comma separated table with one dimuon per line, in the
// column order px+, py+, pz+, px-, py-, pz-. Lines starting with '#' are
// ignored.
func ReadCSV(fname string) ([]kinematics.Event, error) {
	tbl, err := csvutil.Open(fname)
	if err != nil {
		return nil, wrapErr("open", fname, err)
	}
	defer tbl.Close()

	tbl.Reader.Comma = ','
	tbl.Reader.Comment = '#'
	tbl.Reader.TrimLeadingSpace = true
	tbl.Reader.FieldsPerRecord = len(kinematics.Event{})

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, wrapErr("read", fname, err)
	}
	defer rows.Close()

	var events []kinematics.Event
	for rows.Next() {
		var evt kinematics.Event
		err = rows.Scan(&evt[0], &evt[1], &evt[2], &evt[3], &evt[4], &evt[5])
		if err != nil {
			return nil, wrapErr("read", fname, fmt.Errorf("record %d: %w", len(events), err))
		}
		events = append(events, evt)
	}
	// rows.Err reports io.EOF once the table is exhausted.
	err = rows.Err()
	if err != nil && err != io.EOF {
		return nil, wrapErr("read", fname, err)
	}

	return events, nil
}

// WriteCSV writes the observables of vs to fname, one event per line.
func WriteCSV(fname string, vs *kinematics.Variables) error {
	tbl, err := csvutil.Create(fname)
	if err != nil {
		return wrapErr("create", fname, err)
	}
	tbl.Writer.Comma = ','

	err = tbl.WriteHeader("# " + strings.Join(kinematics.Names, ",") + "\n")
	if err != nil {
		tbl.Close()
		return wrapErr("write", fname, err)
	}

	for i := 0; i < vs.Len(); i++ {
		err = tbl.WriteRow(
			vs.Mass[i], vs.PT[i], vs.X1[i], vs.X2[i],
			vs.XF[i], vs.CosTheta[i], vs.SinTheta[i], vs.Phi[i],
		)
		if err != nil {
			tbl.Close()
			return wrapErr("write", fname, err)
		}
	}

	err = tbl.Close()
	if err != nil {
		return wrapErr("close", fname, err)
	}
	return nil
}
