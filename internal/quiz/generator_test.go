package quiz

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwheel/internal/wheel"
)

func TestQuestion_Division(t *testing.T) {
	g := New(NewSeededSource(7))
	for range 1000 {
		q := g.Question(wheel.Division)
		require.Equal(t, wheel.Division, q.Operation)
		require.Zero(t, q.OperandA%q.OperandB, "%s leaves a remainder", q.Equation())
		require.Equal(t, q.Answer, q.OperandA/q.OperandB)
		require.GreaterOrEqual(t, q.OperandB, 2)
		require.LessOrEqual(t, q.OperandB, 10)
		require.GreaterOrEqual(t, q.Answer, 2)
		require.LessOrEqual(t, q.Answer, 20)
	}
}

func TestQuestion_Subtraction(t *testing.T) {
	g := New(NewSeededSource(11))
	for range 1000 {
		q := g.Question(wheel.Subtraction)
		require.Greater(t, q.Answer, 0)
		require.Less(t, q.OperandB, q.OperandA)
		require.GreaterOrEqual(t, q.OperandA, 10)
		require.LessOrEqual(t, q.OperandA, 100)
		require.GreaterOrEqual(t, q.OperandB, 1)
		require.Equal(t, q.OperandA-q.OperandB, q.Answer)
	}
}

func TestQuestion_AdditionAndMultiplicationRanges(t *testing.T) {
	g := New(NewSeededSource(3))
	for range 1000 {
		add := g.Question(wheel.Addition)
		require.True(t, add.OperandA >= 1 && add.OperandA <= 50)
		require.True(t, add.OperandB >= 1 && add.OperandB <= 50)
		require.Equal(t, add.OperandA+add.OperandB, add.Answer)

		mul := g.Question(wheel.Multiplication)
		require.True(t, mul.OperandA >= 2 && mul.OperandA <= 12)
		require.True(t, mul.OperandB >= 2 && mul.OperandB <= 12)
		require.Equal(t, mul.OperandA*mul.OperandB, mul.Answer)
	}
}

func TestQuestion_UnknownOperationFallsBack(t *testing.T) {
	g := New(NewSequenceSource(9, 9, 9))
	assert.Equal(t, Fallback, g.Question(wheel.Operation(0)))
	assert.Equal(t, Fallback, g.Question(wheel.Operation(99)))
	assert.Equal(t, Question{OperandA: 1, OperandB: 1, Operation: wheel.Addition, Answer: 2}, Fallback)
}

func TestQuestion_ScriptedDivision(t *testing.T) {
	g := New(NewSequenceSource(7, 3))
	q := g.Question(wheel.Division)
	assert.Equal(t, Question{OperandA: 21, OperandB: 3, Operation: wheel.Division, Answer: 7}, q)
	assert.Equal(t, "21 ÷ 3 = ?", q.Text())
	assert.Equal(t, "21 ÷ 3 = 7", q.Equation())
}

func TestDistractors_Uniqueness(t *testing.T) {
	g := New(NewSeededSource(42))
	for _, correct := range []int{1, 2, 3, 4, 5, 7, 10, 24, 60, 100, 144, 999} {
		for range 200 {
			ds := g.Distractors(correct, 3)
			require.Len(t, ds, 3)
			seen := map[int]bool{}
			for _, d := range ds {
				require.GreaterOrEqual(t, d, 1)
				require.NotEqual(t, correct, d)
				require.False(t, seen[d], "duplicate %d in %v", d, ds)
				seen[d] = true
			}
		}
	}
}

func TestDistractors_WithinDeviation(t *testing.T) {
	g := New(NewSeededSource(5))
	correct := 100
	spread := 30
	for range 500 {
		for _, d := range g.Distractors(correct, 3) {
			require.GreaterOrEqual(t, d, correct-spread)
			require.LessOrEqual(t, d, correct+spread)
		}
	}
}

func TestDistractors_Scripted(t *testing.T) {
	// deviation, sign pairs: +2, -3, a repeat of +2 that is rejected, +1.
	g := New(NewSequenceSource(2, 1, 3, 0, 2, 1, 1, 1))
	assert.Equal(t, []int{9, 4, 8}, g.Distractors(7, 3))
}

func TestDistractors_ClampsAtOne(t *testing.T) {
	// deviation 5 below 3 clamps to 1.
	g := New(NewSequenceSource(5, 0))
	assert.Equal(t, []int{1}, g.Distractors(3, 1))
}

func TestDistractors_FallbackWhenStuck(t *testing.T) {
	// An exhausted script always returns min: deviation 1, sign minus.
	// For an answer of 1 that lands on 1 every time and is always rejected.
	g := New(NewSequenceSource())
	assert.Equal(t, []int{2, 3, 4}, g.Distractors(1, 3))
}

func TestDistractors_NonPositiveCount(t *testing.T) {
	g := New(nil)
	assert.Empty(t, g.Distractors(10, 0))
	assert.Empty(t, g.Distractors(10, -2))
	assert.NotNil(t, g.Distractors(10, 0))
}

func TestShuffle_PreservesElements(t *testing.T) {
	g := New(NewSeededSource(9))
	in := []int{5, 1, 9, 3, 7}
	orig := slices.Clone(in)

	for range 100 {
		out := g.Shuffle(in)
		require.Equal(t, orig, in, "input must not be mutated")
		require.ElementsMatch(t, in, out)
	}

	assert.Empty(t, g.Shuffle(nil))
	assert.Equal(t, []int{4}, g.Shuffle([]int{4}))
}

func TestShuffle_Fairness(t *testing.T) {
	const trials = 10000
	g := New(NewSeededSource(2024))
	counts := map[string]int{}

	for range trials {
		out := g.Shuffle([]int{1, 2, 3, 4})
		counts[fmt.Sprint(out)]++
	}
	require.Len(t, counts, 24, "every permutation should appear")

	expected := float64(trials) / 24
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	// 23 degrees of freedom; 49.73 is the p = 0.001 critical value.
	assert.Less(t, chi, 49.73, "chi-square %.2f suggests a biased shuffle", chi)
}

func TestOptions(t *testing.T) {
	g := New(NewSeededSource(77))
	for _, correct := range []int{1, 2, 7, 42, 240} {
		for range 100 {
			opts := g.Options(correct)
			require.Len(t, opts, OptionCount)
			require.Equal(t, 1, countOf(opts, correct))

			seen := map[int]bool{}
			for _, o := range opts {
				require.GreaterOrEqual(t, o, 1)
				require.False(t, seen[o])
				seen[o] = true
			}
		}
	}
}

func TestOptions_CorrectPositionIsUniform(t *testing.T) {
	g := New(NewSeededSource(31))
	positions := make([]int, OptionCount)
	for range 8000 {
		r := g.Round(wheel.Multiplication)
		positions[r.CorrectIndex()]++
	}
	for i, n := range positions {
		assert.InDelta(t, 2000, n, 200, "position %d", i)
	}
}

func TestOptionSet_Sizes(t *testing.T) {
	g := New(NewSeededSource(1))
	assert.Equal(t, []int{5}, g.OptionSet(5, 0))
	assert.Len(t, g.OptionSet(5, 6), 6)
}

func TestEndToEnd_ScriptedSpin(t *testing.T) {
	op := wheel.SelectSegment(765.0)
	require.Equal(t, wheel.Division, op)

	src := NewSequenceSource(
		7, 3, // answer, divisor
		2, 1, 3, 0, 1, 1, // distractors 9, 4, 8
		0, 1, 0, // shuffle swaps
	)
	g := New(src)

	q := g.Question(op)
	require.Equal(t, Question{OperandA: 21, OperandB: 3, Operation: wheel.Division, Answer: 7}, q)

	opts := g.Options(q.Answer)
	assert.Equal(t, []int{4, 8, 9, 7}, opts)
	assert.Equal(t, 1, countOf(opts, 7))
	assert.Zero(t, src.Remaining())
}

func TestRound_CorrectIndex(t *testing.T) {
	r := Round{Question: Question{Answer: 9}, Options: []int{3, 9, 4, 1}}
	assert.Equal(t, 1, r.CorrectIndex())

	r.Options = []int{1, 2}
	assert.Equal(t, -1, r.CorrectIndex())
}

func countOf(values []int, v int) int {
	n := 0
	for _, x := range values {
		if x == v {
			n++
		}
	}
	return n
}
