package dimuon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/sqmon/kinematics"
)

func TestPair(t *testing.T) {
	tracks := []track{
		{charge: -1, p: [3]float64{-1, 0, 5}},
		{charge: +1, p: [3]float64{1, 0, 5}},
		{charge: -1, p: [3]float64{0.5, 0.5, 20}},
		{charge: 0, p: [3]float64{9, 9, 9}},
	}

	assert.Equal(t, []kinematics.Event{
		{1, 0, 5, -1, 0, 5},
		{1, 0, 5, 0.5, 0.5, 20},
	}, pair(tracks))

	assert.Empty(t, pair(tracks[:1]))
	assert.Empty(t, pair([]track{tracks[0], tracks[2]}))
}

func TestReadCSV(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "mom.csv")
	err := os.WriteFile(fname, []byte(`# px+, py+, pz+, px-, py-, pz-
1, 0, 5, -1, 0, 5
0.25,-0.5,30.5,0.125,0.75,41
`), 0644)
	require.NoError(t, err)

	events, err := Read(fname)
	require.NoError(t, err)
	assert.Equal(t, []kinematics.Event{
		{1, 0, 5, -1, 0, 5},
		{0.25, -0.5, 30.5, 0.125, 0.75, 41},
	}, events)
}

func TestReadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("1,2,3,4,5\n"), 0644))
	_, err = ReadCSV(short)
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.csv")
	require.NoError(t, os.WriteFile(junk, []byte("1,2,3,4,5,x\n"), 0644))
	_, err = ReadCSV(junk)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	vs := kinematics.ComputeVariables([]kinematics.Event{
		{1, 0, 5, -1, 0, 5},
		{0.3, -1.1, 35.2, -0.7, 0.9, 22.4},
	})

	fname := filepath.Join(t.TempDir(), "vars.csv")
	require.NoError(t, WriteCSV(fname, vs))

	raw, err := os.ReadFile(fname)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# mass,pT,x1,x2,xF,costheta,sintheta,phi", lines[0])
	for _, line := range lines[1:] {
		assert.Len(t, strings.Split(line, ","), len(kinematics.Names))
	}
}
