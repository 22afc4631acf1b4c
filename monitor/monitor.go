// Package monitor turns batches of dimuon observables into the histograms
// and peak fits shown by the online monitor.
package monitor

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fit"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Resonance masses, in GeV.
const (
	JPsiMass     = 3.0969
	PsiPrimeMass = 3.6861
)

// Binning of the dimuon mass spectrum.
const (
	MassBins = 100
	MassMin  = 0.0
	MassMax  = 10.0
)

var (
	ErrNoData = errors.New("monitor: no finite data")
	ErrBins   = errors.New("monitor: invalid number of bins")
)

// MassHist fills the dimuon mass spectrum. Non-finite masses are skipped.
func MassHist(mass []float64) *hbook.H1D {
	h := hbook.NewH1D(MassBins, MassMin, MassMax)
	fill(h, mass)
	return h
}

// Hist fills a histogram with nbins bins spanning the finite values.
func Hist(values []float64, nbins int) (*hbook.H1D, error) {
	if nbins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBins, nbins)
	}
	finite := Finite(values)
	if len(finite) == 0 {
		return nil, ErrNoData
	}

	lo, hi := floats.Min(finite), floats.Max(finite)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	// keep the maximum inside the last bin.
	hi = math.Nextafter(hi, math.Inf(1))

	h := hbook.NewH1D(nbins, lo, hi)
	fill(h, finite)
	return h, nil
}

func fill(h *hbook.H1D, values []float64) {
	for _, v := range values {
		if isFinite(v) {
			h.Fill(v, 1)
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns the finite entries of values.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// Summary describes the distribution of one observable.
type Summary struct {
	Entries   int // number of finite entries
	NonFinite int
	Mean      float64
	StdDev    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("entries=%d non-finite=%d mean=%.4g stddev=%.4g", s.Entries, s.NonFinite, s.Mean, s.StdDev)
}

// Summarize computes the summary of the finite entries of values.
func Summarize(values []float64) Summary {
	finite := Finite(values)
	sum := Summary{
		Entries:   len(finite),
		NonFinite: len(values) - len(finite),
	}
	switch len(finite) {
	case 0:
		sum.Mean = math.NaN()
		sum.StdDev = math.NaN()
	case 1:
		sum.Mean = finite[0]
	default:
		sum.Mean, sum.StdDev = stat.MeanStdDev(finite, nil)
	}
	return sum
}

// Peak is a Gaussian line shape A·exp(-((x-Mean)/Sigma)²/2).
type Peak struct {
	Amplitude float64
	Mean      float64
	Sigma     float64
}

func gaussian(x float64, ps []float64) float64 {
	v := (x - ps[1]) / ps[2]
	return ps[0] * math.Exp(-v*v/2)
}

// At returns the value of the line shape at x.
func (p Peak) At(x float64) float64 {
	return gaussian(x, []float64{p.Amplitude, p.Mean, p.Sigma})
}

// FitPeak fits a Gaussian to the bin contents of h whose centres lie below hi.
// A zero guess amplitude is replaced by the largest bin content of h.
func FitPeak(h *hbook.H1D, hi float64, guess Peak) (Peak, error) {
	xs, ys, guess, err := fitInput(h, hi, guess)
	if err != nil {
		return Peak{}, err
	}

	peak, err := fitGaussian(xs, ys, guess)
	if err != nil {
		return Peak{}, fmt.Errorf("monitor: gaussian fit failed: %w", err)
	}
	return peak, nil
}

// fitInput returns the bin centres and contents of h below hi, and the
// completed initial guess.
func fitInput(h *hbook.H1D, hi float64, guess Peak) (xs, ys []float64, _ Peak, _ error) {
	var (
		ymax  = math.Inf(-1)
		width = (h.XMax() - h.XMin()) / float64(h.Len())
	)
	for i := 0; i < h.Len(); i++ {
		x, y := h.XY(i)
		x += 0.5 * width
		ymax = math.Max(ymax, y)
		if x >= hi {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 3 || floats.Max(ys) <= 0 {
		return nil, nil, guess, fmt.Errorf("%w: not enough bins below %v to fit", ErrNoData, hi)
	}

	if guess.Amplitude == 0 {
		guess.Amplitude = ymax
	}
	return xs, ys, guess, nil
}

func fitGaussian(xs, ys []float64, guess Peak) (Peak, error) {
	res, err := fit.Curve1D(
		fit.Func1D{
			F:  gaussian,
			X:  xs,
			Y:  ys,
			Ps: []float64{guess.Amplitude, guess.Mean, guess.Sigma},
		},
		nil, &optimize.NelderMead{},
	)
	if err != nil {
		return Peak{}, err
	}

	return Peak{
		Amplitude: res.X[0],
		Mean:      res.X[1],
		Sigma:     math.Abs(res.X[2]),
	}, nil
}
