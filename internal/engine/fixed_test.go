package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/slidewin/internal/engine"
)

//----------------------------------------------------------------------------//
// MaxStepCount
//----------------------------------------------------------------------------//

func TestMaxStepCount(t *testing.T) {
	cases := []struct {
		name string
		seq  engine.Sequence
		size int
		want int
	}{
		{"ExactFit", engine.Ints(1, 2, 3), 3, 1},
		{"SizeOne", engine.Ints(1, 2, 3), 1, 3},
		{"Larger", engine.Ints(1, 2, 3), 5, 0},
		{"ZeroSize", engine.Ints(1, 2, 3), 0, 0},
		{"Empty", engine.Ints(), 1, 0},
		{"String", engine.Chars("eidbaooo"), 2, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.MaxStepCount(tc.seq, tc.size))
		})
	}
}

// TestFixedWindowLength checks every valid start yields a window of exactly k.
func TestFixedWindowLength(t *testing.T) {
	seq := engine.Ints(4, -2, 7, 0, 9, 3, 3, -8)
	for k := 1; k <= seq.Len(); k++ {
		steps := engine.MaxStepCount(seq, k)
		require.Equal(t, seq.Len()-k+1, steps)
		for i := 0; i < steps; i++ {
			res, err := engine.ComputeFixedWindow(seq, i, k, engine.Sum)
			require.NoError(t, err)
			assert.Equal(t, k, res.Content.Len())
			assert.Equal(t, k, res.WindowEnd-res.WindowStart+1)
			assert.Equal(t, i, res.WindowStart)
		}
	}
}

//----------------------------------------------------------------------------//
// ComputeFixedWindow
//----------------------------------------------------------------------------//

func TestComputeFixedWindow_Reductions(t *testing.T) {
	cases := []struct {
		name  string
		seq   engine.Sequence
		start int
		size  int
		alg   engine.Algorithm
		want  float64
		win   []int
		desc  string
	}{
		{"Sum", engine.Ints(1, 2, 3, 4, 5), 0, 3, engine.Sum, 6, []int{1, 2, 3}, "Sum of window: 1 + 2 + 3 = 6"},
		{"Max", engine.Ints(1, 5, 3, 2, 4), 1, 3, engine.Max, 5, []int{5, 3, 2}, "Maximum in window: max(5, 3, 2) = 5"},
		{"Min", engine.Ints(1, 5, 3, 2, 4), 1, 3, engine.Min, 2, []int{5, 3, 2}, "Minimum in window: min(5, 3, 2) = 2"},
		{"Average", engine.Ints(2, 4, 6, 8), 0, 3, engine.Average, 4, []int{2, 4, 6}, "Average of window: (2 + 4 + 6) / 3 = 4.00"},
		{"AverageFraction", engine.Ints(1, 2), 0, 2, engine.Average, 1.5, []int{1, 2}, "Average of window: (1 + 2) / 2 = 1.50"},
		{"Negatives", engine.Ints(-3, -1, -7), 0, 3, engine.Max, -1, []int{-3, -1, -7}, "Maximum in window: max(-3, -1, -7) = -1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.ComputeFixedWindow(tc.seq, tc.start, tc.size, tc.alg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Value.Float())
			assert.Equal(t, tc.win, res.Content.Values())
			assert.Equal(t, tc.desc, res.Description)
			assert.False(t, res.Value.IsBool())
		})
	}
}

// TestAverageIsSumOverK checks average == sum / k at every start without rounding.
func TestAverageIsSumOverK(t *testing.T) {
	seq := engine.Ints(1, 2, 2, 7, 11, -4, 5)
	for k := 1; k <= seq.Len(); k++ {
		for i := 0; i < engine.MaxStepCount(seq, k); i++ {
			sum, err := engine.ComputeFixedWindow(seq, i, k, engine.Sum)
			require.NoError(t, err)
			avg, err := engine.ComputeFixedWindow(seq, i, k, engine.Average)
			require.NoError(t, err)
			assert.Equal(t, sum.Value.Float()/float64(k), avg.Value.Float(), "start %d size %d", i, k)
		}
	}
}

func TestComputeFixedWindow_Pure(t *testing.T) {
	seq := engine.Ints(3, 1, 4, 1, 5, 9)
	for _, alg := range []engine.Algorithm{engine.Sum, engine.Max, engine.Min, engine.Average} {
		a, err := engine.ComputeFixedWindow(seq, 2, 3, alg)
		require.NoError(t, err)
		b, err := engine.ComputeFixedWindow(seq, 2, 3, alg)
		require.NoError(t, err)
		assert.Equal(t, a, b, string(alg))
	}
	assert.Equal(t, []int{3, 1, 4, 1, 5, 9}, seq.Values())
}

func TestComputeFixedWindow_Errors(t *testing.T) {
	cases := []struct {
		name  string
		seq   engine.Sequence
		start int
		size  int
		alg   engine.Algorithm
		err   error
	}{
		{"PastEnd", engine.Ints(1, 2, 3), 2, 3, engine.Sum, engine.ErrOutOfBounds},
		{"NegativeStart", engine.Ints(1, 2, 3), -1, 2, engine.Sum, engine.ErrOutOfBounds},
		{"ZeroSize", engine.Ints(1, 2, 3), 0, 0, engine.Sum, engine.ErrInvalidInput},
		{"TooLarge", engine.Ints(1, 2, 3), 0, 5, engine.Max, engine.ErrOutOfBounds},
		{"StartAtLen", engine.Ints(1, 2, 3), 3, 1, engine.Sum, engine.ErrOutOfBounds},
		{"HugeStart", engine.Ints(1, 2, 3), math.MaxInt, 1, engine.Sum, engine.ErrOutOfBounds},
		{"HugeSize", engine.Ints(1, 2, 3), 1, math.MaxInt, engine.Min, engine.ErrOutOfBounds},
		{"HugeBoth", engine.Ints(1, 2, 3), math.MaxInt, math.MaxInt, engine.Average, engine.ErrOutOfBounds},
		{"MinStart", engine.Ints(1, 2, 3), math.MinInt, 2, engine.Sum, engine.ErrOutOfBounds},
		{"StringSum", engine.Chars("abc"), 0, 2, engine.Sum, engine.ErrInvalidInput},
		{"Unknown", engine.Ints(1, 2, 3), 0, 2, engine.Algorithm("median"), engine.ErrUnsupportedAlgorithm},
		{"PermutationHere", engine.Ints(1, 2, 3), 0, 2, engine.PermutationMatch, engine.ErrUnsupportedAlgorithm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ComputeFixedWindow(tc.seq, tc.start, tc.size, tc.alg)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestComputeFixedWindow_UniqueWindow(t *testing.T) {
	res, err := engine.ComputeFixedWindow(engine.Chars("abcabc"), 0, 3, engine.LongestUnique)
	require.NoError(t, err)
	assert.Equal(t, float64(3), res.Value.Float())
	assert.Equal(t, []string{"a", "b", "c"}, res.Content.Elements())

	res, err = engine.ComputeFixedWindow(engine.Chars("abac"), 0, 3, engine.LongestUnique)
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.Value.Float())
	assert.Equal(t, "aba", res.Content.String())
}

//----------------------------------------------------------------------------//
// CalculateStep
//----------------------------------------------------------------------------//

func TestCalculateStep_Dispatch(t *testing.T) {
	res, err := engine.CalculateStep(engine.Ints(1, 2, 3, 4), 1, engine.WindowSpec{Algorithm: engine.Sum, WindowSize: 2})
	require.NoError(t, err)
	assert.Equal(t, float64(5), res.Value.Float())

	res, err = engine.CalculateStep(engine.Chars("xabcx"), 1, engine.WindowSpec{
		Algorithm: engine.PermutationMatch,
		Pattern:   engine.Chars("cab"),
	})
	require.NoError(t, err)
	assert.True(t, res.Value.IsBool())
	assert.True(t, res.Value.Truth())
	assert.Equal(t, "abc", res.Content.String())

	_, err = engine.CalculateStep(engine.Ints(1), 0, engine.WindowSpec{Algorithm: "mode", WindowSize: 1})
	assert.ErrorIs(t, err, engine.ErrUnsupportedAlgorithm)
}

func TestCalculateStep_HugeBounds(t *testing.T) {
	cases := []struct {
		name  string
		seq   engine.Sequence
		start int
		spec  engine.WindowSpec
	}{
		{"SumStart", engine.Ints(1, 2, 3), math.MaxInt, engine.WindowSpec{Algorithm: engine.Sum, WindowSize: 1}},
		{"SumSize", engine.Ints(1, 2, 3), 1, engine.WindowSpec{Algorithm: engine.Sum, WindowSize: math.MaxInt}},
		{"UniqueSize", engine.Chars("abc"), 2, engine.WindowSpec{Algorithm: engine.LongestUnique, WindowType: engine.Fixed, WindowSize: math.MaxInt}},
		{"PermutationStart", engine.Chars("abc"), math.MaxInt, engine.WindowSpec{Algorithm: engine.PermutationMatch, Pattern: engine.Chars("ab")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := engine.CalculateStep(tc.seq, tc.start, tc.spec)
				assert.ErrorIs(t, err, engine.ErrOutOfBounds)
			})
		})
	}
}
