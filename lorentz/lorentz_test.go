package lorentz

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
)

const tol = 1e-9

func TestDotSymmetric(t *testing.T) {
	vs := []fmom.PxPyPzE{
		fmom.NewPxPyPzE(1, 2, 3, 10),
		fmom.NewPxPyPzE(-0.5, 0.25, 119.99, 120),
		fmom.NewPxPyPzE(0, 0, 0, 0.938),
		fmom.NewPxPyPzE(3e-3, -7, 42, -1),
	}
	for _, a := range vs {
		for _, b := range vs {
			assert.Equal(t, Dot(a, b), Dot(b, a))
		}
	}
}

func TestDotSignature(t *testing.T) {
	p := fmom.NewPxPyPzE(1, 2, 3, 10)
	assert.Equal(t, 100.0-1-4-9, Dot(p, p))

	flipped := Metric{+1, +1, +1, -1}
	assert.Equal(t, -Dot(p, p), flipped.Dot(p, p))

	euclid := Metric{1, 1, 1, 1}
	assert.Equal(t, 114.0, euclid.Dot(p, p))
}

func TestDotMatchesMass(t *testing.T) {
	p := fmom.NewPxPyPzE(0.3, -1.2, 14.5, 15.1)
	assert.InDelta(t, p.M2(), Dot(p, p), tol)
}

func TestBeamOnShell(t *testing.T) {
	const (
		mp    = 0.938
		ebeam = 120.0
	)
	beam := fmom.NewPxPyPzE(0, 0, math.Sqrt(ebeam*ebeam-mp*mp), ebeam)
	assert.InDelta(t, mp*mp, Dot(beam, beam), 1e-9)
}

func TestSum(t *testing.T) {
	a := fmom.NewPxPyPzE(1, 2, 3, 4)
	b := fmom.NewPxPyPzE(-1, 0.5, 10, 20)
	assert.Equal(t, fmom.NewPxPyPzE(0, 2.5, 13, 24), Sum(a, b))
	assert.Equal(t, fmom.PxPyPzE{}, Sum())
}

func TestBoostZeroVelocity(t *testing.T) {
	p := fmom.NewPxPyPzE(1, 2, 3, 10)
	for _, beta := range []Velocity{{0, 0, 0}, {1e-10, 0, 0}} {
		got, err := Boost(p, beta)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestBoostAtRest(t *testing.T) {
	const m = 0.938
	rest := fmom.NewPxPyPzE(0, 0, 0, m)
	got, err := Boost(rest, Velocity{0.6, 0, 0})
	require.NoError(t, err)

	gamma := 1 / math.Sqrt(1-0.36)
	assert.InDelta(t, gamma*0.6*m, got[0], tol)
	assert.InDelta(t, 0, got[1], tol)
	assert.InDelta(t, 0, got[2], tol)
	assert.InDelta(t, gamma*m, got[3], tol)
	assert.Equal(t, fmom.NewPxPyPzE(0, 0, 0, m), rest, "input must not be mutated")
}

func TestBoostRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    fmom.PxPyPzE
		beta Velocity
	}{
		{"x", fmom.NewPxPyPzE(1, 2, 3, 10), Velocity{0.1, 0, 0}},
		{"oblique", fmom.NewPxPyPzE(-0.4, 1.1, 7.5, 8.2), Velocity{0.2, -0.3, 0.5}},
		{"fast", fmom.NewPxPyPzE(0, 0, 119.99, 120), Velocity{0, 0, -0.99}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fwd, err := Boost(tc.p, tc.beta)
			require.NoError(t, err)
			back, err := Boost(fwd, Velocity{-tc.beta[0], -tc.beta[1], -tc.beta[2]})
			require.NoError(t, err)
			for i := range tc.p {
				assert.InDelta(t, tc.p[i], back[i], 1e-9*math.Max(1, math.Abs(tc.p[i])))
			}
		})
	}
}

func TestBoostPreservesInvariant(t *testing.T) {
	p := fmom.NewPxPyPzE(-0.4, 1.1, 7.5, 8.2)
	got, err := Boost(p, Velocity{0.2, -0.3, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, Dot(p, p), Dot(got, got), 1e-9)
}

func TestBoostSuperluminal(t *testing.T) {
	p := fmom.NewPxPyPzE(1, 2, 3, 10)
	for _, beta := range []Velocity{
		{1, 0, 0},
		{0.8, 0.8, 0},
		{0, 0, -2},
		{math.NaN(), 0, 0},
	} {
		_, err := Boost(p, beta)
		require.Error(t, err, "beta=%v", beta)
		assert.True(t, errors.Is(err, ErrSuperluminal))
	}
}

func TestMinkowskiIsACopy(t *testing.T) {
	p := fmom.NewPxPyPzE(1, 2, 3, 10)
	want := Dot(p, p)

	m := Minkowski()
	m[0], m[1], m[2], m[3] = 1, 1, 1, 1
	assert.Equal(t, 114.0, m.Dot(p, p))

	assert.Equal(t, want, Dot(p, p))
	assert.Equal(t, Metric{-1, -1, -1, +1}, Minkowski())
}
