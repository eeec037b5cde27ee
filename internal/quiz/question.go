// Package quiz turns a wheel operation into a multiple-choice arithmetic
// question: operands sized for children, plausible wrong answers, and an
// unbiased presentation order.
package quiz

import (
	"fmt"
	"math"

	"github.com/abhisek/mathwheel/internal/wheel"
)

// Question is one arithmetic problem. Answer is always a non-negative integer.
type Question struct {
	OperandA  int             `json:"operand_a"`
	OperandB  int             `json:"operand_b"`
	Operation wheel.Operation `json:"operation"`
	Answer    int             `json:"answer"`
}

// MaxOperand bounds caller-supplied operands. Generated questions stay far
// below it.
const MaxOperand = 10000

// Fallback is returned for operations the generator does not know.
var Fallback = Question{OperandA: 1, OperandB: 1, Operation: wheel.Addition, Answer: 2}

// Text renders the prompt, e.g. "21 ÷ 3 = ?".
func (q Question) Text() string {
	return fmt.Sprintf("%d %s %d = ?", q.OperandA, q.Operation.Symbol(), q.OperandB)
}

// Equation renders the solved question, e.g. "21 ÷ 3 = 7".
func (q Question) Equation() string {
	return fmt.Sprintf("%d %s %d = %d", q.OperandA, q.Operation.Symbol(), q.OperandB, q.Answer)
}

// Check reports whether choice is the correct answer.
func (q Question) Check(choice int) bool {
	return choice == q.Answer
}

// Solve computes the answer from the operands. It fails for unknown
// operations, overflow, division by zero and division with a remainder.
func Solve(op wheel.Operation, a, b int) (int, error) {
	switch op {
	case wheel.Addition:
		if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
			return 0, fmt.Errorf("%d + %d overflows", a, b)
		}
		return a + b, nil
	case wheel.Subtraction:
		if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
			return 0, fmt.Errorf("%d - %d overflows", a, b)
		}
		return a - b, nil
	case wheel.Multiplication:
		if a != 0 && b != 0 {
			p := a * b
			if p/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
				return 0, fmt.Errorf("%d * %d overflows", a, b)
			}
			return p, nil
		}
		return 0, nil
	case wheel.Division:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if a == math.MinInt && b == -1 {
			return 0, fmt.Errorf("%d / %d overflows", a, b)
		}
		if a%b != 0 {
			return 0, fmt.Errorf("%d is not divisible by %d", a, b)
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operation %d", int(op))
}

// NewQuestion builds a Question from caller-supplied operands, computing the
// answer. Operands must lie in [0, MaxOperand] and keep the answer a whole,
// non-negative number.
func NewQuestion(op wheel.Operation, a, b int) (Question, error) {
	for _, v := range []int{a, b} {
		if v < 0 || v > MaxOperand {
			return Question{}, fmt.Errorf("operand %d is outside 0..%d", v, MaxOperand)
		}
	}
	answer, err := Solve(op, a, b)
	if err != nil {
		return Question{}, err
	}
	if answer < 0 {
		return Question{}, fmt.Errorf("%d %s %d is negative", a, op.ASCII(), b)
	}
	return Question{OperandA: a, OperandB: b, Operation: op, Answer: answer}, nil
}
