package libsame

import "errors"

// Errors returned from Context.Init. These are the only two recoverable
// failure modes in the package, per spec.md §7; everything else (calling
// Gen past the terminal state, malformed fixed-length header fields, an
// unknown Engine) is a contract violation and panics instead.
var (
	// ErrInvalidAttnDuration is returned when a Header's AttnSigDuration
	// falls outside [AttnSigDurationMin, AttnSigDurationMax].
	ErrInvalidAttnDuration = errors.New("libsame: attn_sig_duration out of range")

	// ErrInvalidSampleRate is returned when sampleRate is 520 Hz or lower,
	// or too low to produce at least one sample per AFSK bit.
	ErrInvalidSampleRate = errors.New("libsame: sample rate too low for AFSK modulation")
)
