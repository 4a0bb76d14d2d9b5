package libsame

// Attention signal constants fixed by 47 CFR 11.31: the dual-tone alert
// that follows the three header bursts.
const (
	AttnSigFreqFirst  = float32(853)
	AttnSigFreqSecond = float32(960)
)

// attnCursor tracks the attention-signal sample count and its two
// independent phase accumulators (used only by the LUT engine; one per
// fundamental frequency so they don't interfere with each other).
type attnCursor struct {
	sampleNum   uint32
	phaseFirst  float32
	phaseSecond float32
}

// attnSample produces one sample of the 853 Hz + 960 Hz dual tone, mixed by
// averaging to avoid clipping, and advances the cursor.
func (ctx *Context) attnSample() int16 {
	c := &ctx.attn
	t := float32(c.sampleNum) / float32(ctx.sampleRate)

	var phaseFirst, phaseSecond *float32
	if ctx.engine == EngineLUT {
		phaseFirst, phaseSecond = &c.phaseFirst, &c.phaseSecond
	}

	first := ctx.backend.sine(ctx, phaseFirst, t, AttnSigFreqFirst)
	second := ctx.backend.sine(ctx, phaseSecond, t, AttnSigFreqSecond)

	c.sampleNum++

	return int16((int32(first) + int32(second)) / 2)
}
