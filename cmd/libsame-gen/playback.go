package main

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/gordonklaus/portaudio"
)

// sink accepts successive chunks of signed 16-bit little-endian PCM.
type sink interface {
	write(samples []int16) error
	close() error
}

// deviceSink plays samples through the default portaudio output device, the
// real-time path the teacher's audio.go manages and the one
// examples/basic.c drives via SDL_QueueAudio.
type deviceSink struct {
	stream *portaudio.Stream
	buf    []int16
}

func newDeviceSink(sampleRate float64, chunkSize int) (*deviceSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	buf := make([]int16, chunkSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, chunkSize, &buf)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	return &deviceSink{stream: stream, buf: buf}, nil
}

func (d *deviceSink) write(samples []int16) error {
	copy(d.buf, samples)
	return d.stream.Write()
}

func (d *deviceSink) close() error {
	if err := d.stream.Stop(); err != nil {
		return err
	}
	if err := d.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

// fileSink writes raw, headerless signed 16-bit little-endian PCM to a file
// or to stdout. Deliberately no container format (WAV/AIFF) is written;
// audio container I/O is out of scope for this repo, per spec.md.
type fileSink struct {
	f  *os.File
	bw *bufio.Writer
}

func newFileSink(path string) (*fileSink, error) {
	if path == "-" {
		return &fileSink{f: os.Stdout, bw: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &fileSink{f: f, bw: bufio.NewWriter(f)}, nil
}

func (fs *fileSink) write(samples []int16) error {
	return binary.Write(fs.bw, binary.LittleEndian, samples)
}

func (fs *fileSink) close() error {
	if err := fs.bw.Flush(); err != nil {
		return err
	}
	if fs.f == os.Stdout {
		return nil
	}
	return fs.f.Close()
}
