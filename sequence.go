package libsame

import "fmt"

// ChunkSize is the number of samples Gen writes per call. 4096 samples keeps
// working memory small enough for embedded targets, per spec.md §4.5 — the
// full transmission can run to ~1.97M samples (~4MB at 16-bit), which is
// unsuitable for stack residency, and dynamic allocation is forbidden.
const ChunkSize = 4096

// SilenceDuration is the length, in seconds, of each of the seven silence
// periods separating bursts.
const SilenceDuration = 1

// State enumerates the 14 stages of a SAME transmission in the order
// prescribed by 47 CFR 11.31. StateTerminal is reached once all 14 have been
// produced; no further call to Gen is valid after that.
type State int

const (
	StateAfskHeaderFirst State = iota
	StateSilenceFirst
	StateAfskHeaderSecond
	StateSilenceSecond
	StateAfskHeaderThird
	StateSilenceThird
	StateAttentionSignal
	StateSilenceFourth
	StateAfskEOMFirst
	StateSilenceFifth
	StateAfskEOMSecond
	StateSilenceSixth
	StateAfskEOMThird
	StateSilenceSeventh

	// StateTerminal is not a real stage; Context.state reaches this value
	// once all 14 stages have completed.
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateAfskHeaderFirst:
		return "afsk-header-1"
	case StateSilenceFirst:
		return "silence-1"
	case StateAfskHeaderSecond:
		return "afsk-header-2"
	case StateSilenceSecond:
		return "silence-2"
	case StateAfskHeaderThird:
		return "afsk-header-3"
	case StateSilenceThird:
		return "silence-3"
	case StateAttentionSignal:
		return "attention-signal"
	case StateSilenceFourth:
		return "silence-4"
	case StateAfskEOMFirst:
		return "afsk-eom-1"
	case StateSilenceFifth:
		return "silence-5"
	case StateAfskEOMSecond:
		return "afsk-eom-2"
	case StateSilenceSixth:
		return "silence-6"
	case StateAfskEOMThird:
		return "afsk-eom-3"
	case StateSilenceSeventh:
		return "silence-7"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var eomData = [EOMSize]byte{
	Preamble, Preamble, Preamble, Preamble, Preamble, Preamble, Preamble, Preamble,
	Preamble, Preamble, Preamble, Preamble, Preamble, Preamble, Preamble, Preamble,
	'N', 'N', 'N', 'N',
}

// Context holds all generation state for one SAME transmission: the
// modulated header bytes, the per-state sample budgets, the current stage,
// and the AFSK/attention-signal cursors. The host owns a Context's memory;
// the package borrows it mutably for the duration of each Gen call. A
// Context is not safe for concurrent use — a host generating multiple
// streams in parallel needs one Context per stream.
type Context struct {
	engine  Engine
	backend sineEngine

	appSin      AppSineFunc
	appUserdata any

	headerData [HeaderSizeMax]byte
	headerLen  int

	budgets [StateTerminal]uint32
	state   State

	afsk afskCursor
	attn attnCursor

	sampleRate    uint32
	samplesPerBit uint32

	samples [ChunkSize]int16
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithAppSineFunc supplies the host callback and opaque userdata used when
// engine is EngineApp. It is a contract violation (panic, surfaced the first
// time a sample is generated) to select EngineApp without one.
func WithAppSineFunc(fn AppSineFunc, userdata any) ContextOption {
	return func(ctx *Context) {
		ctx.appSin = fn
		ctx.appUserdata = userdata
	}
}

// NewContext allocates a Context that will use the given sine Engine. Call
// Init before the first call to Gen.
func NewContext(engine Engine, opts ...ContextOption) *Context {
	ctx := &Context{engine: engine, backend: engineBackend(engine)}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Engine returns the sine-generation strategy this Context was constructed
// with, the gen_engine_get accessor named in spec.md §6.
func (ctx *Context) Engine() Engine { return ctx.engine }

// EngineDescription returns a human-readable name for e, the
// gen_engine_desc_get accessor named in spec.md §6.
func EngineDescription(e Engine) string { return e.String() }

// AttnSigDurations returns the inclusive range of valid attn_sig_duration
// values, for host validation or UI purposes.
func AttnSigDurations() (min, max int) { return AttnSigDurationMin, AttnSigDurationMax }

// Init is the one-shot, process-wide setup step. It is idempotent and
// populates the sine lookup table regardless of which Engine a given
// Context will end up using, so that switching engines at runtime across
// Contexts never needs a second setup call.
func Init() { initLUT() }

// Init validates header and sampleRate, assembles the modulated header
// bytes, precomputes every stage's sample budget, and zeroes all cursors.
// It returns ErrInvalidAttnDuration or ErrInvalidSampleRate without
// mutating ctx if validation fails; malformed fixed-length header fields or
// an out-of-range location-code count are contract violations and panic
// instead, per assembleHeader's contract.
func (ctx *Context) Init(header Header, sampleRate uint32) error {
	if header.AttnSigDuration < AttnSigDurationMin || header.AttnSigDuration > AttnSigDurationMax {
		return fmt.Errorf("%w: %d", ErrInvalidAttnDuration, header.AttnSigDuration)
	}
	if sampleRate <= 520 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	spb := samplesPerBit(sampleRate)
	if spb < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if ctx.engine == EngineLUT {
		initLUT()
	}

	ctx.sampleRate = sampleRate
	ctx.samplesPerBit = spb

	ctx.headerLen = assembleHeader(ctx.headerData[:], header)

	headerBudget := uint32(AfskBitsPerChar) * spb * uint32(ctx.headerLen)
	eomBudget := uint32(AfskBitsPerChar) * spb * uint32(EOMSize)
	silenceBudget := uint32(SilenceDuration) * sampleRate
	attnBudget := uint32(header.AttnSigDuration) * sampleRate

	ctx.budgets[StateAfskHeaderFirst] = headerBudget
	ctx.budgets[StateAfskHeaderSecond] = headerBudget
	ctx.budgets[StateAfskHeaderThird] = headerBudget

	ctx.budgets[StateAfskEOMFirst] = eomBudget
	ctx.budgets[StateAfskEOMSecond] = eomBudget
	ctx.budgets[StateAfskEOMThird] = eomBudget

	ctx.budgets[StateSilenceFirst] = silenceBudget
	ctx.budgets[StateSilenceSecond] = silenceBudget
	ctx.budgets[StateSilenceThird] = silenceBudget
	ctx.budgets[StateSilenceFourth] = silenceBudget
	ctx.budgets[StateSilenceFifth] = silenceBudget
	ctx.budgets[StateSilenceSixth] = silenceBudget
	ctx.budgets[StateSilenceSeventh] = silenceBudget

	ctx.budgets[StateAttentionSignal] = attnBudget

	ctx.state = StateAfskHeaderFirst
	ctx.afsk.reset()
	ctx.attn = attnCursor{}

	return nil
}

// State returns the current sequence stage.
func (ctx *Context) State() State { return ctx.state }

// Done reports whether the sequence has reached StateTerminal; once true,
// calling Gen again is a contract violation.
func (ctx *Context) Done() bool { return ctx.state >= StateTerminal }

// Samples returns the Context's internal sample buffer. Only the portion up
// to the position Gen stopped at (all of it, unless the terminal state was
// reached mid-chunk) holds freshly produced samples for the most recent
// call; the host is expected to track completion via Done rather than infer
// it from buffer contents, per spec.md §4.5.
func (ctx *Context) Samples() []int16 { return ctx.samples[:] }

// Gen writes exactly ChunkSize samples into the Context's sample buffer,
// advancing the sequence state as stage budgets are exhausted. If the
// terminal state is reached partway through a chunk, the remaining slots
// are left at whatever value they held from a previous call, and Gen
// returns immediately — the host must check Done rather than assume a full
// chunk was produced.
//
// Calling Gen when Done already reports true is a contract violation.
func (ctx *Context) Gen() {
	if ctx.Done() {
		panic("libsame: Gen called after sequence reached StateTerminal")
	}

	for i := 0; i < ChunkSize; i++ {
		switch ctx.state {
		case StateAfskHeaderFirst, StateAfskHeaderSecond, StateAfskHeaderThird:
			ctx.samples[i] = ctx.afskSample(ctx.headerData[:ctx.headerLen])

		case StateSilenceFirst, StateSilenceSecond, StateSilenceThird,
			StateSilenceFourth, StateSilenceFifth, StateSilenceSixth, StateSilenceSeventh:
			ctx.samples[i] = 0

		case StateAttentionSignal:
			ctx.samples[i] = ctx.attnSample()

		case StateAfskEOMFirst, StateAfskEOMSecond, StateAfskEOMThird:
			ctx.samples[i] = ctx.afskSample(eomData[:])

		default:
			panic(fmt.Sprintf("libsame: unreachable sequence state %v", ctx.state))
		}

		ctx.budgets[ctx.state]--
		if ctx.budgets[ctx.state] == 0 {
			ctx.state++
			if ctx.state >= StateTerminal {
				return
			}
		}
	}
}
