// Package kinematics computes dimuon observables for batches of events
// recorded by a fixed-target experiment.
package kinematics

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"go-hep.org/x/hep/fmom"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/sqmon/lorentz"
)

var (
	ErrRowWidth = errors.New("kinematics: event record must have 6 components")
)

// Event is the raw momentum record of a dimuon candidate:
// (px+, py+, pz+, px-, py-, pz-) in GeV.
type Event [6]float64

// Variables holds the per-event observables of a batch.
// All slices are index-aligned with the input events.
type Variables struct {
	Mass     []float64
	PT       []float64
	X1       []float64
	X2       []float64
	XF       []float64
	CosTheta []float64
	SinTheta []float64
	Phi      []float64
}

func newVariables(n int) *Variables {
	return &Variables{
		Mass:     make([]float64, n),
		PT:       make([]float64, n),
		X1:       make([]float64, n),
		X2:       make([]float64, n),
		XF:       make([]float64, n),
		CosTheta: make([]float64, n),
		SinTheta: make([]float64, n),
		Phi:      make([]float64, n),
	}
}

// Len returns the number of events.
func (vs *Variables) Len() int { return len(vs.Mass) }

// Names lists the observables in the order returned by Columns.
var Names = []string{"mass", "pT", "x1", "x2", "xF", "costheta", "sintheta", "phi"}

// Columns returns the observables as a slice, in the order of Names.
func (vs *Variables) Columns() [][]float64 {
	return [][]float64{
		vs.Mass, vs.PT, vs.X1, vs.X2, vs.XF, vs.CosTheta, vs.SinTheta, vs.Phi,
	}
}

// Engine computes Variables for a fixed beam/target configuration.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	cfg Config

	beam   fmom.PxPyPzE
	target fmom.PxPyPzE
	cms    fmom.PxPyPzE
	s      float64
	sqrtS  float64

	// denominators of x1 and x2.
	targetCMS float64
	beamCMS   float64
}

// NewEngine validates cfg and derives the beam, target and centre-of-mass
// four-vectors.
func NewEngine(cfg Config) (*Engine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	mp := cfg.ProtonMass
	eb := cfg.BeamEnergy
	eng := &Engine{
		cfg:    cfg,
		beam:   fmom.NewPxPyPzE(0, 0, math.Sqrt(eb*eb-mp*mp), eb),
		target: fmom.NewPxPyPzE(0, 0, 0, mp),
	}
	eng.cms = lorentz.Sum(eng.beam, eng.target)
	eng.s = lorentz.Dot(eng.cms, eng.cms)
	eng.sqrtS = math.Sqrt(eng.s)
	eng.targetCMS = lorentz.Dot(eng.target, eng.cms)
	eng.beamCMS = lorentz.Dot(eng.beam, eng.cms)

	return eng, nil
}

func (eng *Engine) Config() Config       { return eng.cfg }
func (eng *Engine) Beam() fmom.PxPyPzE   { return eng.beam }
func (eng *Engine) Target() fmom.PxPyPzE { return eng.target }
func (eng *Engine) CMS() fmom.PxPyPzE    { return eng.cms }

// S returns the Mandelstam s of the beam/target system.
func (eng *Engine) S() float64 { return eng.s }

var defaultEngine *Engine

func init() {
	var err error
	defaultEngine, err = NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
}

// ComputeVariables computes the observables of events with the default
// configuration.
func ComputeVariables(events []Event) *Variables {
	return defaultEngine.Compute(events)
}

// Compute returns the observables of every event.
//
// Events are independent: the batch is split into contiguous chunks that
// are processed concurrently, and the result does not depend on how the
// batch was split. Physically inconsistent events yield NaN or Inf entries
// rather than an error.
func (eng *Engine) Compute(events []Event) *Variables {
	vs := newVariables(len(events))
	err := eng.parallel(len(events), func(beg, end int) error {
		eng.compute(vs, events, beg, end)
		return nil
	})
	if err != nil {
		// compute never fails.
		panic(err)
	}
	return vs
}

// parallel splits [0, n) into contiguous chunks and runs fn on each of
// them, using at most the configured number of workers. Workers pick the
// next chunk as they become free. The first error returned by fn is
// reported once every worker is done.
func (eng *Engine) parallel(n int, fn func(beg, end int) error) error {
	if n == 0 {
		return nil
	}

	workers, chunk := eng.plan(n)
	if workers == 1 {
		return fn(0, n)
	}

	var (
		grp  errgroup.Group
		next int64 = -1
	)
	for w := 0; w < workers; w++ {
		grp.Go(func() error {
			for {
				beg := int(atomic.AddInt64(&next, 1)) * chunk
				if beg >= n {
					return nil
				}
				err := fn(beg, min(beg+chunk, n))
				if err != nil {
					return err
				}
			}
		})
	}
	return grp.Wait()
}

// ComputeRows converts rows into events and computes their observables.
// Every row must have exactly 6 components.
func (eng *Engine) ComputeRows(rows [][]float64) (*Variables, error) {
	events := make([]Event, len(rows))
	for i, row := range rows {
		if len(row) != len(events[i]) {
			return nil, fmt.Errorf("%w: row %d has %d", ErrRowWidth, i, len(row))
		}
		copy(events[i][:], row)
	}
	return eng.Compute(events), nil
}

// ComputeFlat computes the observables of a row-major N×6 array.
func (eng *Engine) ComputeFlat(data []float64) (*Variables, error) {
	const width = len(Event{})
	if len(data)%width != 0 {
		return nil, fmt.Errorf("%w: flat array of length %d", ErrRowWidth, len(data))
	}
	events := make([]Event, len(data)/width)
	for i := range events {
		copy(events[i][:], data[i*width:(i+1)*width])
	}
	return eng.Compute(events), nil
}

// plan returns the number of workers and the chunk size used for a batch
// of n > 0 events.
func (eng *Engine) plan(n int) (workers, chunk int) {
	workers = eng.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk = eng.cfg.ChunkSize
	if chunk <= 0 {
		chunk = (n + workers - 1) / workers
	}
	nchunks := (n + chunk - 1) / chunk
	return min(workers, nchunks), chunk
}

// compute fills slots [beg, end) of vs.
func (eng *Engine) compute(vs *Variables, events []Event, beg, end int) {
	mmu2 := eng.cfg.MuonMass * eng.cfg.MuonMass
	for i := beg; i < end; i++ {
		evt := &events[i]
		var (
			epos = math.Sqrt(evt[0]*evt[0] + evt[1]*evt[1] + evt[2]*evt[2] + mmu2)
			eneg = math.Sqrt(evt[3]*evt[3] + evt[4]*evt[4] + evt[5]*evt[5] + mmu2)
			ppos = fmom.NewPxPyPzE(evt[0], evt[1], evt[2], epos)
			pneg = fmom.NewPxPyPzE(evt[3], evt[4], evt[5], eneg)
			psum = lorentz.Sum(ppos, pneg)
		)

		mass := math.Sqrt(lorentz.Dot(psum, psum))
		pt := math.Sqrt(psum[0]*psum[0] + psum[1]*psum[1])
		mass2 := mass * mass
		mt := math.Sqrt(mass2 + pt*pt)

		costh := 2 * (pneg[3]*ppos[2] - ppos[3]*pneg[2]) / mass / mt
		if eng.cfg.ClampCosTheta {
			costh = math.Max(-1, math.Min(1, costh))
		}

		vs.Mass[i] = mass
		vs.PT[i] = pt
		vs.X1[i] = lorentz.Dot(eng.target, psum) / eng.targetCMS
		vs.X2[i] = lorentz.Dot(eng.beam, psum) / eng.beamCMS
		vs.XF[i] = 2 * psum[2] / eng.sqrtS / (1 - mass2/eng.s)
		vs.CosTheta[i] = costh
		vs.SinTheta[i] = math.Sqrt(1 - costh*costh)
		vs.Phi[i] = math.Atan2(
			2*mt*(pneg[0]*ppos[1]-ppos[0]*pneg[1]),
			mass*(ppos[0]*ppos[0]-pneg[0]*pneg[0]+ppos[1]*ppos[1]-pneg[1]*pneg[1]),
		)
	}
}
