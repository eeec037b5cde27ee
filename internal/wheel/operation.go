// Package wheel models the four-segment operation wheel: the operations it
// carries, how a rotation angle maps to the segment under the pointer, and how
// a spin picks its final angle.
package wheel

import (
	"fmt"
	"strings"
)

// Operation is one of the four arithmetic operations on the wheel.
type Operation int

const (
	Addition Operation = iota + 1
	Subtraction
	Multiplication
	Division
)

// Operations lists every operation in catalog order.
var Operations = []Operation{Addition, Subtraction, Multiplication, Division}

type opInfo struct {
	name   string
	symbol string
	ascii  string
	color  string
}

var opTable = map[Operation]opInfo{
	Addition:       {name: "addition", symbol: "+", ascii: "+", color: "#4ECDC4"},
	Subtraction:    {name: "subtraction", symbol: "−", ascii: "-", color: "#FF6B6B"},
	Multiplication: {name: "multiplication", symbol: "×", ascii: "*", color: "#FFD166"},
	Division:       {name: "division", symbol: "÷", ascii: "/", color: "#45B7D1"},
}

// Valid reports whether o is one of the four wheel operations.
func (o Operation) Valid() bool {
	_, ok := opTable[o]
	return ok
}

// Name returns the lower-case operation name, e.g. "division".
func (o Operation) Name() string {
	if info, ok := opTable[o]; ok {
		return info.name
	}
	return "unknown"
}

// Symbol returns the display symbol (+ − × ÷).
func (o Operation) Symbol() string {
	if info, ok := opTable[o]; ok {
		return info.symbol
	}
	return "?"
}

// ASCII returns the keyboard form of the symbol (+ - * /).
func (o Operation) ASCII() string {
	if info, ok := opTable[o]; ok {
		return info.ascii
	}
	return "?"
}

// Color returns the segment color as a hex string.
func (o Operation) Color() string {
	if info, ok := opTable[o]; ok {
		return info.color
	}
	return opTable[Addition].color
}

func (o Operation) String() string {
	return o.Name()
}

// MarshalText encodes the operation by name.
func (o Operation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid operation %d", int(o))
	}
	return []byte(o.Name()), nil
}

// UnmarshalText accepts anything ParseOperation accepts.
func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOperation resolves a name or symbol, in display or keyboard form.
// Matching is case-insensitive.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "addition", "plus":
		return Addition, nil
	case "-", "−", "sub", "subtract", "subtraction", "minus":
		return Subtraction, nil
	case "*", "×", "x", "mul", "multiply", "multiplication", "times":
		return Multiplication, nil
	case "/", "÷", "div", "divide", "division":
		return Division, nil
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}
