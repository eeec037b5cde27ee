package wheel

import (
	"math/rand/v2"
	"slices"
	"time"
)

const (
	// MinTurns and MaxTurns bound the whole turns added to every spin.
	MinTurns = 5
	MaxTurns = 8

	// MaxOffset is how far a spin may stop from a segment's centre.
	MaxOffset = 20.0

	// DefaultSpinDuration is how long the wheel animation runs.
	DefaultSpinDuration = 3 * time.Second
)

// Source supplies randomness for spins.
type Source interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

type globalSource struct{}

func (globalSource) IntN(n int) int   { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource uses the process-wide generator from math/rand/v2 and is
// safe for concurrent use.
var DefaultSource Source = globalSource{}

// SpinResult describes where a spin stops.
type SpinResult struct {
	// Degrees is the total clockwise rotation, several turns plus an offset.
	Degrees float64 `json:"degrees"`
	// Turns is the number of whole turns included in Degrees.
	Turns int `json:"turns"`
	// Operation is the segment under the pointer once the wheel stops.
	Operation Operation `json:"operation"`
}

// Spin picks a stopping angle near the centre of a random segment,
// adds MinTurns to MaxTurns full turns, and resolves the landed operation.
func Spin(src Source) SpinResult {
	if src == nil {
		src = DefaultSource
	}
	return spin(src, src.IntN(len(Segments)))
}

// SpinTo spins like Spin but always stops on op. Invalid operations spin
// freely.
func SpinTo(src Source, op Operation) SpinResult {
	if src == nil {
		src = DefaultSource
	}
	idx := slices.Index(Segments[:], op)
	if idx < 0 {
		return Spin(src)
	}
	// Clockwise rotation brings segments under the pointer in reverse order.
	return spin(src, len(Segments)-1-idx)
}

func spin(src Source, target int) SpinResult {
	centre := float64(target)*SegmentDegrees + SegmentDegrees/2
	offset := (src.Float64() - 0.5) * 2 * MaxOffset
	turns := MinTurns + src.IntN(MaxTurns-MinTurns+1)

	deg := float64(turns)*360 + centre + offset
	return SpinResult{
		Degrees:   deg,
		Turns:     turns,
		Operation: SelectSegment(deg),
	}
}

// EaseOutCubic maps animation progress t in [0, 1] to rotation progress.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}
