package libsame

import "math"

// AFSK (Audio Frequency Shift Keying) constants fixed by 47 CFR 11.31.
const (
	AfskBitRate     = float32(520.83) // bits/second
	AfskMarkFreq    = float32(2083.3) // Hz, represents a 1 bit
	AfskSpaceFreq   = float32(1562.5) // Hz, represents a 0 bit
	AfskBitsPerChar = 8               // LSB first
)

// samplesPerBit returns round(sampleRate / AfskBitRate), rounded half up
// (never truncated), per spec.md §4.3. At 44100 Hz this is 85.
func samplesPerBit(sampleRate uint32) uint32 {
	return uint32(math.Floor(float64(sampleRate)/float64(AfskBitRate) + 0.5))
}

// afskCursor tracks progress through one AFSK burst: which byte, which bit
// within the byte (LSB first), and which sample within the bit's duration.
// phase is the LUT engine's phase accumulator for this waveform only —
// separate from the attention signal's accumulators so simultaneous
// waveforms never share state.
type afskCursor struct {
	byteIndex   int
	bitIndex    int
	sampleIndex uint32
	phase       float32
}

func (c *afskCursor) reset() { *c = afskCursor{} }

// afskSample produces one sample of data[c.byteIndex] modulated onto the
// mark or space tone and advances c. When the cursor runs past the end of
// data, it resets to zero so the next burst of the same payload starts
// clean at bit 0 of byte 0, per spec.md §4.3's rationale.
func (ctx *Context) afskSample(data []byte) int16 {
	c := &ctx.afsk

	bit := (data[c.byteIndex] >> uint(c.bitIndex)) & 1
	freq := AfskSpaceFreq
	if bit == 1 {
		freq = AfskMarkFreq
	}

	t := float32(c.sampleIndex) / float32(ctx.sampleRate)
	sample := ctx.backend.sine(ctx, ctx.afskPhase(), t, freq)

	c.sampleIndex++
	if c.sampleIndex >= ctx.samplesPerBit {
		c.sampleIndex = 0
		c.bitIndex++

		if c.bitIndex >= AfskBitsPerChar {
			c.bitIndex = 0
			c.byteIndex++

			if c.byteIndex >= len(data) {
				c.reset()
			}
		}
	}

	return sample
}

// afskPhase returns the phase accumulator to use for the current engine, or
// nil for engines that don't keep one.
func (ctx *Context) afskPhase() *float32 {
	if ctx.engine != EngineLUT {
		return nil
	}
	return &ctx.afsk.phase
}
