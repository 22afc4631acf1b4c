// Package lorentz implements four-vector algebra under an explicit metric
// signature and Lorentz boosts.
//
// Four-vectors are go-hep fmom.PxPyPzE values: three spatial momentum
// components followed by the energy.
package lorentz

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
)

var (
	ErrSuperluminal = errors.New("lorentz: boost velocity is not sub-luminal")
)

// Metric is a diagonal metric signature, applied component-wise
// to (x, y, z, t).
type Metric [4]float64

// Signs of the Minkowski signature.
const (
	spaceSign = -1
	timeSign  = +1
)

// Minkowski returns the (-, -, -, +) signature used for every invariant.
func Minkowski() Metric {
	return Metric{spaceSign, spaceSign, spaceSign, timeSign}
}

// Dot returns the inner product of a and b under m.
func (m Metric) Dot(a, b fmom.PxPyPzE) float64 {
	return a[0]*m[0]*b[0] + a[1]*m[1]*b[1] + a[2]*m[2]*b[2] + a[3]*m[3]*b[3]
}

// Dot returns the Minkowski inner product of a and b.
func Dot(a, b fmom.PxPyPzE) float64 {
	return Minkowski().Dot(a, b)
}

// Sum adds four-vectors component-wise.
func Sum(vs ...fmom.PxPyPzE) fmom.PxPyPzE {
	var sum fmom.PxPyPzE
	for _, v := range vs {
		sum[0] += v[0]
		sum[1] += v[1]
		sum[2] += v[2]
		sum[3] += v[3]
	}
	return sum
}

// Velocity is a 3-velocity in units of the speed of light.
type Velocity [3]float64

func (b Velocity) beta2() float64 {
	return b[0]*b[0] + b[1]*b[1] + b[2]*b[2]
}

// minBeta2 is the squared speed below which a boost is the identity.
const minBeta2 = 1e-16

// Boost returns v transformed into the frame moving with velocity beta.
// v itself is left untouched.
func Boost(v fmom.PxPyPzE, beta Velocity) (fmom.PxPyPzE, error) {
	b2 := beta.beta2()
	switch {
	case math.IsNaN(b2) || b2 >= 1:
		return v, fmt.Errorf("%w: beta=%v (beta^2=%v)", ErrSuperluminal, beta, b2)
	case b2 < minBeta2:
		return v, nil
	}

	var (
		bx, by, bz = beta[0], beta[1], beta[2]
		gamma      = 1 / math.Sqrt(1-b2)
		bp         = bx*v[0] + by*v[1] + bz*v[2]
		gamma2     = (gamma - 1) / b2
	)

	out := v
	out[0] += gamma2*bp*bx + gamma*bx*v[3]
	out[1] += gamma2*bp*by + gamma*by*v[3]
	out[2] += gamma2*bp*bz + gamma*bz*v[3]
	out[3] = gamma * (v[3] + bp)
	return out, nil
}
