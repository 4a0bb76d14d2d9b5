// Command libsame-gen is a reference host for the libsame package: it
// assembles a Header from flags, drives a Context to completion, and pushes
// the resulting PCM to an audio device or a raw file. It owns everything
// the core deliberately stays out of — flag handling, the warning banner,
// SIGINT handling, and choosing a sink — per spec.md §1.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/mcroddev/libsame"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		originator = flag.StringP("originator", "o", "WXR", "3-character originator code")
		event      = flag.StringP("event", "e", "TOR", "3-character event code")
		locations  = flag.StringP("locations", "l", "048484", "comma-separated 6-character location codes")
		validTime  = flag.StringP("valid-time", "t", "1000", "4-character valid time period (HHMM)")
		origTime   = flag.StringP("originator-time", "j", "1172221", "7-character originator time (JJJHHMM)")
		callsign   = flag.StringP("callsign", "c", "WAEB/AM ", "8-character station callsign, space-padded")
		attn       = flag.IntP("attn-duration", "a", 8, "attention signal duration in seconds [8,25]")
		sampleRate = flag.Uint32P("sample-rate", "r", 44100, "output sample rate in Hz")
		engineName = flag.StringP("engine", "E", "lut", "sine engine: libc, lut, or taylor")
		output     = flag.StringP("output", "O", "device", `output sink: "device", "-" for stdout, or a file path`)
		yes        = flag.BoolP("yes", "y", false, "skip the pre-playback warning countdown")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "libsame-gen generates and plays (or writes) a SAME alert waveform.")
		flag.PrintDefaults()
	}
	flag.Parse()

	engine, err := parseEngine(*engineName)
	if err != nil {
		return err
	}

	header := libsame.Header{
		OriginatorCode:  *originator,
		EventCode:       *event,
		LocationCodes:   strings.Split(*locations, ","),
		ValidTimePeriod: *validTime,
		OriginatorTime:  *origTime,
		Callsign:        *callsign,
		AttnSigDuration: *attn,
	}

	libsame.Init()
	ctx := libsame.NewContext(engine)
	if err := ctx.Init(header, *sampleRate); err != nil {
		return fmt.Errorf("initializing generation context: %w", err)
	}

	log.Info("assembled SAME header", "engine", libsame.EngineDescription(ctx.Engine()), "sample_rate", *sampleRate)

	sink, err := openSink(*output, float64(*sampleRate))
	if err != nil {
		return fmt.Errorf("opening output sink: %w", err)
	}
	defer sink.close()

	if *output == "device" {
		warnAndCountdown(10, *yes)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	log.Info("generating SAME transmission", "state", ctx.State())

	for !ctx.Done() {
		select {
		case <-sigCh:
			log.Warn("interrupted, stopping early")
			return nil
		default:
		}

		ctx.Gen()
		if err := sink.write(ctx.Samples()); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	log.Info("done")
	return nil
}

func parseEngine(name string) (libsame.Engine, error) {
	switch strings.ToLower(name) {
	case "libc":
		return libsame.EngineLibc, nil
	case "lut":
		return libsame.EngineLUT, nil
	case "taylor":
		return libsame.EngineTaylor, nil
	default:
		return 0, fmt.Errorf("unknown engine %q (want libc, lut, or taylor)", name)
	}
}

func openSink(output string, sampleRate float64) (sink, error) {
	if output == "device" {
		return newDeviceSink(sampleRate, libsame.ChunkSize)
	}
	return newFileSink(output)
}
