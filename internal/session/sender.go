package session

import (
	"errors"

	"loomchat/backend/internal/model"
)

// ErrSubscriberStalled is reported when a channel sender's buffer is full.
// The event is dropped; generation and persistence are unaffected.
var ErrSubscriberStalled = errors.New("subscriber not keeping up, event dropped")

// ChanSender adapts a buffered channel to the Sender interface with a
// non-blocking send, so a stalled or departed subscriber can never wedge
// the generation task.
type ChanSender struct {
	C chan model.StreamEvent
}

func NewChanSender(buffer int) *ChanSender {
	return &ChanSender{C: make(chan model.StreamEvent, buffer)}
}

func (s *ChanSender) Send(event model.StreamEvent) error {
	select {
	case s.C <- event:
		return nil
	default:
		return ErrSubscriberStalled
	}
}
