package libsame

import (
	"fmt"
	"math"
	"sync"
)

// Engine identifies one of the four interchangeable sine-generation
// strategies a Context can use. Selection happens once, at Context
// construction, matching the source's build-time backend choice (spec.md
// design notes prefer compile-time selection for embedded targets; this
// package models it as a construction-time choice of interface
// implementation instead, which costs one virtual dispatch per sample).
type Engine int

const (
	// EngineLibc computes sin(2*pi*t*freq) directly via math.Sin, scaled
	// to 16-bit. Reference accuracy; no phase accumulator.
	EngineLibc Engine = iota

	// EngineLUT uses a precomputed, process-wide lookup table advanced by
	// a per-waveform phase accumulator.
	EngineLUT

	// EngineTaylor evaluates a low-order Taylor series approximation.
	EngineTaylor

	// EngineApp delegates to an application-supplied callback.
	EngineApp
)

// String returns a human-readable description of e, the value returned by
// EngineDescription and by the gen_engine_desc_get accessor named in
// spec.md §6.
func (e Engine) String() string {
	switch e {
	case EngineLibc:
		return "library math.Sin()"
	case EngineLUT:
		return "sine wave lookup table indexed by a truncated phase accumulator"
	case EngineTaylor:
		return "seventh-order Taylor series"
	case EngineApp:
		return "application-specified generator"
	default:
		panic(fmt.Sprintf("libsame: unknown sine engine %d", int(e)))
	}
}

// AppSineFunc is the signature of a host-supplied sine generator, used when a
// Context is constructed with EngineApp. It must not re-enter the Context
// that invoked it.
type AppSineFunc func(userdata any, t, freq float32) int16

const twoPi = float32(2 * math.Pi)

// sineEngine is the internal per-sample contract every backend satisfies.
// phase is nil for engines that keep no accumulator state; a non-nil phase
// must be owned exclusively by one waveform (AFSK, attention tone 1, or
// attention tone 2) so that simultaneous waveforms never share state.
type sineEngine interface {
	sine(ctx *Context, phase *float32, t, freq float32) int16
}

// libcEngine implements EngineLibc.
type libcEngine struct{}

func (libcEngine) sine(_ *Context, _ *float32, t, freq float32) int16 {
	return float32ToSample(float32(math.Sin(float64(twoPi * t * freq))))
}

// lutSize is the number of entries in the process-wide sine lookup table.
const lutSize = 1024

var (
	lutOnce    sync.Once
	lutEntries [lutSize]int16
)

// initLUT populates the process-wide sine table. It is idempotent and safe
// to call from Init regardless of which Engine is actually selected; the
// table is immutable once populated and may be read concurrently by any
// number of Contexts.
func initLUT() {
	lutOnce.Do(func() {
		for i := 0; i < lutSize; i++ {
			t := float32(i) / lutSize
			lutEntries[i] = float32ToSample(float32(math.Sin(float64(twoPi * t))))
		}
	})
}

// lutEngine implements EngineLUT.
type lutEngine struct{}

func (lutEngine) sine(ctx *Context, phase *float32, _ float32, freq float32) int16 {
	if phase == nil {
		panic("libsame: LUT engine requires a phase accumulator")
	}
	sample := lutEntries[int(*phase)]

	delta := (freq * lutSize) / float32(ctx.sampleRate)
	*phase += delta
	for *phase >= lutSize {
		*phase -= lutSize
	}
	for *phase < 0 {
		*phase += lutSize
	}
	return sample
}

// taylorEngine implements EngineTaylor: a low-order Taylor series expansion
// of sine, range-reduced into [0, pi] with the sign tracked separately and
// restored on output.
type taylorEngine struct{}

func (taylorEngine) sine(_ *Context, _ *float32, t, freq float32) int16 {
	x := twoPi * t * freq
	return float32ToSample(taylorSin(x))
}

func taylorSin(x float32) float32 {
	const twoPiF = twoPi
	x = float32(math.Mod(float64(x), float64(twoPiF)))
	if x < 0 {
		x += twoPiF
	}

	sign := float32(1)
	if x > math.Pi {
		x -= math.Pi
		sign = -1
	}

	x2 := x * x
	x3 := x2 * x
	x5 := x3 * x2
	x7 := x5 * x2

	result := x - x3/6 + x5/120 - x7/5040
	return sign * result
}

// appEngine implements EngineApp, delegating to a host-supplied callback.
type appEngine struct{}

func (appEngine) sine(ctx *Context, _ *float32, t, freq float32) int16 {
	if ctx.appSin == nil {
		panic("libsame: EngineApp selected but no AppSineFunc was supplied")
	}
	return ctx.appSin(ctx.appUserdata, t, freq)
}

// float32ToSample scales a unit-amplitude sine value to the full signed
// 16-bit range, rounding to nearest as round(sin(...) * 32767) per spec.md
// §4.1.
func float32ToSample(v float32) int16 {
	scaled := v * math.MaxInt16
	if scaled >= 0 {
		return int16(scaled + 0.5)
	}
	return int16(scaled - 0.5)
}

func engineBackend(e Engine) sineEngine {
	switch e {
	case EngineLibc:
		return libcEngine{}
	case EngineLUT:
		return lutEngine{}
	case EngineTaylor:
		return taylorEngine{}
	case EngineApp:
		return appEngine{}
	default:
		panic(fmt.Sprintf("libsame: unknown sine engine %d", int(e)))
	}
}
