package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
)

// warnAndCountdown prints the same warning the source's examples/basic.c
// prints before it touches a real audio device — the generated waveform is
// fully capable of activating real EAS decoders — then counts down from
// seconds, giving the operator a chance to abort with Ctrl+C or skip ahead
// by pressing any key. It returns early, without error, if skip is true.
func warnAndCountdown(seconds int, skip bool) {
	if skip {
		return
	}

	fmt.Println("This will play the generated SAME header at full volume through the")
	fmt.Println("default audio device. This header is FULLY CAPABLE OF ACTIVATING EAS")
	fmt.Println("SYSTEMS. You have been warned.")
	fmt.Println()
	fmt.Println("Press any key to skip ahead, or Ctrl+C to abort.")

	keyPressed := listenForKeypress()

	for remaining := seconds; remaining > 0; remaining-- {
		fmt.Printf("Time remaining: %d \r", remaining)
		select {
		case <-keyPressed:
			fmt.Println()
			return
		case <-time.After(time.Second):
		}
	}
	fmt.Println()
}

// listenForKeypress opens the controlling terminal in raw mode and reports
// on the returned channel as soon as one byte is available. Any failure to
// open the terminal (e.g. stdin is not a tty) degrades to "never fires"
// rather than aborting the countdown — the Ctrl+C path still works.
func listenForKeypress() <-chan struct{} {
	ch := make(chan struct{}, 1)

	tty, err := term.Open("/dev/tty")
	if err != nil {
		log.Debug("could not open controlling terminal for keypress skip", "err", err)
		return ch
	}

	if err := term.RawMode(tty); err != nil {
		log.Debug("could not set raw mode on controlling terminal", "err", err)
		tty.Close()
		return ch
	}

	go func() {
		defer tty.Close()
		defer tty.Restore()

		buf := make([]byte, 1)
		if _, err := tty.Read(buf); err == nil {
			ch <- struct{}{}
		}
	}()

	return ch
}
