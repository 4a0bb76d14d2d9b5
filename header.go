// Package libsame generates a broadcast-ready audio waveform encoding an
// Emergency Alert System "Specific Area Message Encoding" (SAME)
// transmission, per 47 CFR 11.31.
//
// The package is a deterministic, incremental waveform generator: it knows
// nothing about audio devices, command-line arguments, or decoding. A host
// builds a Header, initializes a Context, and pulls fixed-size chunks of
// 16-bit signed PCM out of it with Gen until the sequence reaches
// StateTerminal. See cmd/libsame-gen for a complete host.
package libsame

import "fmt"

// Protocol field widths, fixed by 47 CFR 11.31 and the source
// mcroddev/libsame implementation this package is grounded on.
const (
	PreambleNum        = 16   // number of 0xAB preamble bytes before each burst
	Preamble      byte = 0xAB
	AsciiIDLen         = 4 // len("ZCZC") or len("NNNN")

	OriginatorCodeLen   = 3
	EventCodeLen        = 3
	LocationCodesNumMax = 31
	LocationCodeLen     = 6
	ValidTimePeriodLen  = 4
	OriginatorTimeLen   = 7
	CallsignLen         = 8

	// FieldsNumTotal is the number of separators not already counted
	// with the location codes: the dash after "ZCZC" and the dash after
	// each of ORG, EEE, TTTT, JJJHHMM, and LLLLLLLL.
	FieldsNumTotal = 6

	// HeaderSizeMax is the largest a modulated header buffer can be:
	// preamble + "ZCZC" + every field at its maximum length, each
	// followed by its separator.
	//
	//   16 + 4 + 1 + 3 + 1 + 3 + 1 + 31*7 + 4 + 1 + 7 + 1 + 8 + 1 = 268
	HeaderSizeMax = PreambleNum + AsciiIDLen + OriginatorCodeLen + EventCodeLen +
		(LocationCodesNumMax * (LocationCodeLen + 1)) +
		ValidTimePeriodLen + OriginatorTimeLen + CallsignLen + FieldsNumTotal

	// EOMSize is the fixed size of the End-Of-Message burst payload:
	// 16 preamble bytes followed by literal "NNNN".
	EOMSize = PreambleNum + AsciiIDLen

	// LocationCodeEndMarker is a sentinel recognized only for backward
	// compatibility with inputs built around the source's fixed
	// 31-slot array convention; prefer a LocationCodes slice of the
	// real length.
	LocationCodeEndMarker = "SPOOKY"

	// AttnSigDurationMin and AttnSigDurationMax bound attn_sig_duration,
	// per 47 CFR 11.31.
	AttnSigDurationMin = 8
	AttnSigDurationMax = 25
)

var zczc = [AsciiIDLen]byte{'Z', 'C', 'Z', 'C'}
var nnnn = [AsciiIDLen]byte{'N', 'N', 'N', 'N'}

// Header describes one SAME alert to be encoded. Every string field must be
// supplied pre-formatted to its exact protocol length; the package performs
// no trimming, padding, or UTF-8 handling. Construct it directly;
// AttnSigDuration is validated by Context.Init.
type Header struct {
	// OriginatorCode identifies who activated the EAS (e.g. "WXR", "CIV",
	// "EAS", "PEP"). Exactly OriginatorCodeLen bytes.
	OriginatorCode string

	// EventCode identifies the nature of the activation (e.g. "TOR",
	// "SVR"). Exactly EventCodeLen bytes.
	EventCode string

	// LocationCodes lists the affected PSSCCC areas, 1 to
	// LocationCodesNumMax entries, each exactly LocationCodeLen bytes.
	LocationCodes []string

	// ValidTimePeriod is TTTT (HHMM), exactly ValidTimePeriodLen bytes.
	ValidTimePeriod string

	// OriginatorTime is JJJHHMM (Julian day + UTC hour/minute), exactly
	// OriginatorTimeLen bytes.
	OriginatorTime string

	// Callsign is the transmitting station's identification, exactly
	// CallsignLen bytes, space-padded by the caller if shorter.
	Callsign string

	// AttnSigDuration is the attention-tone duration in seconds; must lie
	// in [AttnSigDurationMin, AttnSigDurationMax]. Validated by
	// Context.Init, not by assembleHeader.
	AttnSigDuration int
}

// LocationCodesFromFixed converts the source's fixed 31-slot location-code
// array convention, terminated by LocationCodeEndMarker, into the slice form
// Header expects. Kept only so inputs built against the original libsame ABI
// still work.
func LocationCodesFromFixed(codes [LocationCodesNumMax]string) []string {
	for i, c := range codes {
		if c == LocationCodeEndMarker {
			return append([]string(nil), codes[:i]...)
		}
	}
	return append([]string(nil), codes[:]...)
}

// fieldAdd appends field to data starting at *n, followed by a literal '-',
// and advances *n past both. It mirrors libsame_field_add from the source:
// a contract violation (panic) if field is not exactly fieldLen bytes, since
// the core assumes well-formed input.
func fieldAdd(data []byte, n *int, field string, fieldLen int) {
	if len(field) != fieldLen {
		panic(fmt.Sprintf("libsame: field %q has length %d, want %d", field, len(field), fieldLen))
	}
	*n += copy(data[*n:], field)
	data[*n] = '-'
	*n++
}

// assembleHeader writes the exact protocol-defined byte sequence for h into
// buf (which must have capacity HeaderSizeMax) and returns the number of
// bytes written. It panics if h's location-code count is out of
// [1, LocationCodesNumMax] or any fixed-length field does not match its
// protocol length — both contract violations the caller is expected to have
// prevented before calling, per the header assembler's documented contract.
//
// Layout:
//
//	P×16 | "ZCZC" | '-' | ORG | '-' | EEE | '-' |
//	LOC1 '-' (LOCn '-')* | TTTT | '-' | JJJHHMM | '-' | LLLLLLLL | '-'
//
// with the dash after the final location code overwritten by '+'.
func assembleHeader(buf []byte, h Header) int {
	if len(h.LocationCodes) < 1 || len(h.LocationCodes) > LocationCodesNumMax {
		panic(fmt.Sprintf("libsame: %d location codes, want 1..%d", len(h.LocationCodes), LocationCodesNumMax))
	}

	n := 0
	for i := 0; i < PreambleNum; i++ {
		buf[n] = Preamble
		n++
	}
	n += copy(buf[n:], zczc[:])
	buf[n] = '-'
	n++

	fieldAdd(buf, &n, h.OriginatorCode, OriginatorCodeLen)
	fieldAdd(buf, &n, h.EventCode, EventCodeLen)

	for _, loc := range h.LocationCodes {
		fieldAdd(buf, &n, loc, LocationCodeLen)
	}
	buf[n-1] = '+' // replace the dash after the final location code

	fieldAdd(buf, &n, h.ValidTimePeriod, ValidTimePeriodLen)
	fieldAdd(buf, &n, h.OriginatorTime, OriginatorTimeLen)
	fieldAdd(buf, &n, h.Callsign, CallsignLen)

	return n
}
