package quiz

import (
	"math"

	"github.com/abhisek/mathwheel/internal/wheel"
)

const (
	// OptionCount is the number of choices shown for every question.
	OptionCount = 4

	// MaxOptionCount is the most choices a round may show: one per digit key.
	MaxOptionCount = 9

	// MaxDistractorAttempts caps rejected draws before Distractors falls
	// back to counting upward from the answer.
	MaxDistractorAttempts = 1000
)

// Generator produces questions and answer options from a Source.
type Generator struct {
	src Source
}

// New creates a Generator. A nil src uses DefaultSource.
func New(src Source) *Generator {
	if src == nil {
		src = DefaultSource
	}
	return &Generator{src: src}
}

// Question generates a random question for op. Ranges keep every answer a
// small whole number:
//
//	addition        1..50 + 1..50
//	subtraction     10..100 − 1..a-1
//	multiplication  2..12 × 2..12
//	division        (2..20 × 2..10) ÷ 2..10, built from the answer
//
// Unknown operations yield Fallback.
func (g *Generator) Question(op wheel.Operation) Question {
	r := g.src.IntRange
	switch op {
	case wheel.Addition:
		a := r(1, 50)
		b := r(1, 50)
		return Question{OperandA: a, OperandB: b, Operation: op, Answer: a + b}

	case wheel.Subtraction:
		a := r(10, 100)
		b := r(1, a-1)
		return Question{OperandA: a, OperandB: b, Operation: op, Answer: a - b}

	case wheel.Multiplication:
		a := r(2, 12)
		b := r(2, 12)
		return Question{OperandA: a, OperandB: b, Operation: op, Answer: a * b}

	case wheel.Division:
		answer := r(2, 20)
		b := r(2, 10)
		return Question{OperandA: answer * b, OperandB: b, Operation: op, Answer: answer}
	}
	return Fallback
}

// Distractors returns count distinct wrong answers, all >= 1 and none equal
// to correct. Each is correct plus or minus a deviation of up to
// max(5, 30% of correct).
func (g *Generator) Distractors(correct, count int) []int {
	out := make([]int, 0, max(count, 0))
	if count <= 0 {
		return out
	}

	used := map[int]bool{correct: true}
	spread := max(5, int(math.Floor(float64(correct)*0.3)))

	for rejected := 0; len(out) < count && rejected < MaxDistractorAttempts; {
		deviation := g.src.IntRange(1, spread)
		candidate := max(1, correct-deviation)
		if g.src.IntRange(0, 1) == 1 {
			candidate = correct + deviation
		}
		if used[candidate] {
			rejected++
			continue
		}
		used[candidate] = true
		out = append(out, candidate)
	}

	// Sampling stalled; count upward past the answer instead.
	for next := correct + len(out) + 1; len(out) < count; next++ {
		if next < 1 || used[next] {
			continue
		}
		used[next] = true
		out = append(out, next)
	}
	return out
}

// Shuffle returns a uniformly random permutation of values using
// Fisher-Yates. values is not modified.
func (g *Generator) Shuffle(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	for i := len(out) - 1; i > 0; i-- {
		j := g.src.IntRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// OptionSet returns total shuffled options: correct plus total-1 distractors.
func (g *Generator) OptionSet(correct, total int) []int {
	if total < 1 {
		total = 1
	}
	options := append([]int{correct}, g.Distractors(correct, total-1)...)
	return g.Shuffle(options)
}

// Options returns OptionCount shuffled options containing correct once.
func (g *Generator) Options(correct int) []int {
	return g.OptionSet(correct, OptionCount)
}

// Round generates a question for op together with its options.
func (g *Generator) Round(op wheel.Operation) Round {
	q := g.Question(op)
	return Round{Question: q, Options: g.Options(q.Answer)}
}

// Round is a question as presented: the question and its shuffled options.
type Round struct {
	Question Question `json:"question"`
	Options  []int    `json:"options"`
}

// CorrectIndex returns the position of the answer in Options, or -1.
func (r Round) CorrectIndex() int {
	for i, v := range r.Options {
		if v == r.Question.Answer {
			return i
		}
	}
	return -1
}
