package libsame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testHeader() Header {
	return Header{
		OriginatorCode:  "ORG",
		EventCode:       "RED",
		LocationCodes:   []string{"101010", "828282"},
		ValidTimePeriod: "2138",
		OriginatorTime:  "3939393",
		Callsign:        "XIPHIAS ",
		AttnSigDuration: 8,
	}
}

func TestInit_RejectsInvalidAttnDuration(t *testing.T) {
	for _, attn := range []int{0, 7, 26, 100} {
		h := testHeader()
		h.AttnSigDuration = attn

		ctx := NewContext(EngineLibc)
		err := ctx.Init(h, 44100)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAttnDuration))
	}
}

func TestInit_RejectsLowSampleRate(t *testing.T) {
	ctx := NewContext(EngineLibc)
	err := ctx.Init(testHeader(), 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSampleRate))
}

func TestInit_DoesNotMutateContextOnValidationFailure(t *testing.T) {
	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(testHeader(), 44100))

	priorHeaderLen := ctx.headerLen
	priorState := ctx.state

	bad := testHeader()
	bad.AttnSigDuration = 0
	err := ctx.Init(bad, 44100)
	require.Error(t, err)

	assert.Equal(t, priorHeaderLen, ctx.headerLen)
	assert.Equal(t, priorState, ctx.state)
}

func TestInit_Idempotent(t *testing.T) {
	h := testHeader()

	ctx1 := NewContext(EngineLibc)
	require.NoError(t, ctx1.Init(h, 44100))

	ctx2 := NewContext(EngineLibc)
	require.NoError(t, ctx2.Init(h, 44100))
	require.NoError(t, ctx2.Init(h, 44100))

	assert.Equal(t, ctx1.headerData, ctx2.headerData)
	assert.Equal(t, ctx1.headerLen, ctx2.headerLen)
	assert.Equal(t, ctx1.budgets, ctx2.budgets)
	assert.Equal(t, ctx1.state, ctx2.state)
}

// TestStateBudgets_MaxLocations checks spec.md §8 scenario 3: 31 location
// codes (header_len 268) give each AFSK header burst a budget of 182240
// samples at 44100 Hz.
func TestStateBudgets_MaxLocations(t *testing.T) {
	h := testHeader()
	h.LocationCodes = make([]string, LocationCodesNumMax)
	for i := range h.LocationCodes {
		h.LocationCodes[i] = "048484"
	}

	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(h, 44100))

	assert.Equal(t, HeaderSizeMax, ctx.headerLen)
	assert.Equal(t, uint32(182240), ctx.budgets[StateAfskHeaderFirst])
	assert.Equal(t, uint32(182240), ctx.budgets[StateAfskHeaderSecond])
	assert.Equal(t, uint32(182240), ctx.budgets[StateAfskHeaderThird])
}

// TestStateBudgets_AttnDuration checks spec.md §8 scenarios 4 and 5: the
// minimum and maximum attention signal durations at 44100 Hz.
func TestStateBudgets_AttnDuration(t *testing.T) {
	for _, tc := range []struct {
		attn int
		want uint32
	}{
		{8, 352800},
		{25, 1102500},
	} {
		h := testHeader()
		h.AttnSigDuration = tc.attn

		ctx := NewContext(EngineLibc)
		require.NoError(t, ctx.Init(h, 44100))

		assert.Equal(t, tc.want, ctx.budgets[StateAttentionSignal])
	}
}

// TestGen_PanicsAfterTerminal checks spec.md §7: calling Gen once the
// sequence is done is a contract violation.
func TestGen_PanicsAfterTerminal(t *testing.T) {
	h := testHeader()
	h.AttnSigDuration = AttnSigDurationMin

	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(h, 8000)) // low rate keeps the test fast

	for !ctx.Done() {
		ctx.Gen()
	}

	assert.Panics(t, func() { ctx.Gen() })
}

// TestGen_SilenceIsExactlyZero checks spec.md §8: every sample produced
// during a silence state is exactly zero.
func TestGen_SilenceIsExactlyZero(t *testing.T) {
	h := testHeader()
	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(h, 8000))

	ctx.state = StateSilenceFirst
	ctx.Gen()

	for _, s := range ctx.Samples() {
		assert.Equal(t, int16(0), s)
	}
}

// TestGen_TerminalAfterExactChunkCount checks spec.md §8 scenario 6: after
// ceil(sum(budgets)/ChunkSize) calls to Gen, the sequence has reached
// StateTerminal and not before.
func TestGen_TerminalAfterExactChunkCount(t *testing.T) {
	h := wxrTorHeader()

	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(h, 44100))

	var total uint64
	for _, b := range ctx.budgets {
		total += uint64(b)
	}
	wantChunks := (total + ChunkSize - 1) / ChunkSize

	var chunks uint64
	for !ctx.Done() {
		ctx.Gen()
		chunks++
	}

	assert.Equal(t, wantChunks, chunks)
}

// TestSequenceOrder checks that the 14 states are produced in the exact
// order prescribed by spec.md §4.5. Every state's budget here comfortably
// exceeds ChunkSize, so no state can complete and be skipped entirely
// within a single Gen call.
func TestSequenceOrder(t *testing.T) {
	h := wxrTorHeader()
	h.AttnSigDuration = AttnSigDurationMin

	ctx := NewContext(EngineLibc)
	require.NoError(t, ctx.Init(h, 44100))

	want := []State{
		StateAfskHeaderFirst, StateSilenceFirst,
		StateAfskHeaderSecond, StateSilenceSecond,
		StateAfskHeaderThird, StateSilenceThird,
		StateAttentionSignal, StateSilenceFourth,
		StateAfskEOMFirst, StateSilenceFifth,
		StateAfskEOMSecond, StateSilenceSixth,
		StateAfskEOMThird, StateSilenceSeventh,
	}

	var seen []State
	seen = append(seen, ctx.state)
	for !ctx.Done() {
		prev := ctx.state
		ctx.Gen()
		if ctx.state != prev && !ctx.Done() {
			seen = append(seen, ctx.state)
		}
	}

	assert.Equal(t, want, seen)
}

// TestDurationInvariant checks spec.md §8: total transmission duration in
// seconds is independent of sample rate (within rounding).
func TestDurationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attn := rapid.IntRange(AttnSigDurationMin, AttnSigDurationMax).Draw(t, "attn")
		rate := uint32(rapid.SampledFrom([]int{22050, 44100, 48000}).Draw(t, "rate"))

		h := wxrTorHeader()
		h.AttnSigDuration = attn

		ctx := NewContext(EngineLibc)
		require.NoError(t, ctx.Init(h, rate))

		var total uint64
		for _, b := range ctx.budgets {
			total += uint64(b)
		}
		gotSeconds := float64(total) / float64(rate)

		// spec.md §8 states this as 6*(8*header_len)/520.83 + 7 + attn, but
		// that conflates the 3 EOM bursts (always 20 bytes) with the 3
		// header bursts (header_len bytes); see DESIGN.md. The correct
		// duration sums them separately.
		wantSeconds := 3*(8*float64(ctx.headerLen))/float64(AfskBitRate) +
			3*(8*float64(EOMSize))/float64(AfskBitRate) + 7 + float64(attn)

		require.InDelta(t, wantSeconds, gotSeconds, 1.0)
	})
}

func TestEngineAccessor(t *testing.T) {
	ctx := NewContext(EngineTaylor)
	assert.Equal(t, EngineTaylor, ctx.Engine())
}

func TestAttnSigDurationsAccessor(t *testing.T) {
	min, max := AttnSigDurations()
	assert.Equal(t, AttnSigDurationMin, min)
	assert.Equal(t, AttnSigDurationMax, max)
}
