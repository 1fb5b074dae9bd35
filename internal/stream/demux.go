package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	app_errors "loomchat/backend/internal/errors"
)

// Frame is one demultiplexed provider payload. Err is set instead of Text
// for a frame that could not be decoded (recoverable, the sequence
// continues) or for an upstream read failure (terminal, the channel closes
// right after).
type Frame struct {
	Text string
	Err  error
}

const readBufferSize = 4096

// Demux consumes the raw byte stream from a provider response body and
// sends complete frames on out, in arrival order, until the framing reports
// a terminal payload, the reader is exhausted, or ctx is cancelled. It
// closes out before returning and is single-pass: the reader is not
// rewindable and the sequence is not restartable.
//
// Buffering is byte-level, so chunk boundaries, including ones splitting a
// UTF-8 sequence or a logical frame, never change the emitted frames.
func Demux(ctx context.Context, r io.Reader, framing Framing, out chan<- Frame) {
	defer close(out)

	send := func(fr Frame) bool {
		select {
		case out <- fr:
			return true
		case <-ctx.Done():
			return false
		}
	}

	buf := make([]byte, readBufferSize)
	var pending []byte

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				line := pending[:i]
				pending = pending[i+1:]

				text, ok, err := extract(framing, line)
				if err != nil {
					if !send(Frame{Err: err}) {
						return
					}
					continue
				}
				if !ok {
					continue
				}
				if framing.Terminal(text) {
					// Sequence ends immediately, even if more bytes
					// follow in the underlying stream.
					return
				}
				if !send(Frame{Text: text}) {
					return
				}
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				flush(framing, pending, send)
			} else {
				send(Frame{Err: fmt.Errorf("%w: reading provider stream: %v", app_errors.ErrUpstream, readErr)})
			}
			return
		}
	}
}

// extract validates and frames one complete line. Invalid UTF-8 is a
// recoverable per-frame error: the line is dropped and the sequence
// continues.
func extract(framing Framing, line []byte) (string, bool, error) {
	if !utf8.Valid(line) {
		return "", false, fmt.Errorf("%w: invalid utf-8 in stream line", app_errors.ErrMalformedFrame)
	}
	text, ok := framing.Extract(line)
	return text, ok, nil
}

// flush emits a trailing partial line left in the buffer when the stream
// closes without a final newline.
func flush(framing Framing, pending []byte, send func(Frame) bool) {
	if len(pending) == 0 {
		return
	}
	text, ok, err := extract(framing, pending)
	if err != nil {
		send(Frame{Err: err})
		return
	}
	if !ok || framing.Terminal(text) {
		return
	}
	send(Frame{Text: text})
}
