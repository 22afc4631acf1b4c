package sqmon

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatArrayFlags(t *testing.T) {
	masses := FloatArrayFlags{Array: []float64{3.0969, 3.6861}}
	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	fset.Var(&masses, "mark", "masses to mark")

	assert.Equal(t, "3.0969,3.6861", masses.String())

	require.NoError(t, fset.Parse([]string{"-mark", "9.46", "-mark", "10.02, 10.36"}))
	assert.Equal(t, []float64{9.46, 10.02, 10.36}, masses.Array)

	assert.Error(t, masses.Set("nine"))
}

func TestTicks(t *testing.T) {
	ticks := Ticks{N: 5, Marks: []float64{3.0969, 42}}.Ticks(0, 10)

	var labels []string
	var values []float64
	for _, tick := range ticks {
		values = append(values, tick.Value)
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 3.0969}, values)
	assert.Equal(t, []string{"0", "5", "10", "3.0969"}, labels)
}

func TestTicksSmallRange(t *testing.T) {
	ticks := Ticks{N: 3}.Ticks(-0.2, 0.2)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		assert.True(t, tick.Value >= -0.2 && tick.Value <= 0.2, "tick %v", tick.Value)
	}
	assert.Nil(t, Ticks{}.Ticks(1, 1))
}

func TestStartProfile(t *testing.T) {
	p, err := StartProfile("", t.TempDir())
	require.NoError(t, err)
	p.Stop()

	_, err = StartProfile("gpu", t.TempDir())
	assert.Error(t, err)
}
