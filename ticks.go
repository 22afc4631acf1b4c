package sqmon

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// Ticks is a plot.Ticker placing about N labelled ticks on round values,
// with unlabelled minor ticks in between. Each value of Marks inside the
// axis range gets a labelled tick of its own, e.g. a resonance mass.
type Ticks struct {
	N     int
	Marks []float64
}

func (t Ticks) Ticks(min, max float64) []plot.Tick {
	if t.N < 2 {
		t.N = 5
	}
	if !(max > min) {
		return nil
	}

	major := niceStep((max - min) / float64(t.N-1))
	minor := major / 2
	if mant := major / math.Pow10(exponent(major)); math.Abs(mant-5) < 1e-9 {
		minor = major / 5
	}
	prec := 1 - exponent(minor)

	var ticks []plot.Tick
	for i := math.Ceil(min / minor); i*minor <= max; i++ {
		v := round(i*minor, prec)
		tick := plot.Tick{Value: v}
		if isMultiple(v, major) {
			tick.Label = formatFloatTick(v)
		}
		ticks = append(ticks, tick)
	}

	for _, m := range t.Marks {
		if m < min || m > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: m, Label: formatFloatTick(m)})
	}
	return ticks
}

// niceStep returns the smallest of 1, 2 or 5 times a power of ten that is
// not below step.
func niceStep(step float64) float64 {
	tens := math.Pow10(exponent(step))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*tens >= step {
			return m * tens
		}
	}
	return 10 * tens
}

func exponent(v float64) int {
	return int(math.Floor(math.Log10(v)))
}

func isMultiple(v, step float64) bool {
	r := math.Abs(math.Remainder(v, step))
	return r < 1e-6*step
}

func round(x float64, prec int) float64 {
	if prec < 0 {
		prec = 0
	}
	pow := math.Pow10(prec)
	x = math.Round(x*pow) / pow
	if x == 0 {
		// drop the sign bit of negative zero.
		return 0
	}
	return x
}

func formatFloatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
