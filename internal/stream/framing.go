package stream

import "bytes"

// Framing is the pluggable strategy that turns complete lines of a provider
// byte stream into frames. Implementations must be stateless: the
// demultiplexer owns all buffering.
type Framing interface {
	// Extract returns the frame payload contained in one complete line, or
	// ok=false when the line carries no frame (blank lines, comments,
	// non-data event-stream lines).
	Extract(line []byte) (text string, ok bool)

	// Terminal reports whether an extracted payload ends the sequence.
	Terminal(text string) bool
}

var dataMarker = []byte("data:")

const doneToken = "[DONE]"

// EventStreamFraming implements text/event-stream framing: only lines
// prefixed with the data marker carry payloads, and a literal [DONE] payload
// terminates the sequence.
type EventStreamFraming struct{}

func (EventStreamFraming) Extract(line []byte) (string, bool) {
	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, dataMarker) {
		return "", false
	}
	return string(bytes.TrimSpace(trimmed[len(dataMarker):])), true
}

func (EventStreamFraming) Terminal(text string) bool {
	return text == doneToken
}

// LineFraming implements newline-delimited framing: every non-empty trimmed
// line is a frame, verbatim. There is no termination token; the sequence
// ends with the underlying stream.
type LineFraming struct{}

func (LineFraming) Extract(line []byte) (string, bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return "", false
	}
	return string(trimmed), true
}

func (LineFraming) Terminal(string) bool {
	return false
}
