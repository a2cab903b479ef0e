// Package wire defines the JSON shapes exchanged between the chat client
// and server. Each connection follows a lockstep discipline: one request,
// one reply, strictly alternating.
package wire

import "github.com/ryuvi/carchat/chat/dialogue"

// ActionReset is the out-of-band directive that clears the session without
// going through extraction.
const ActionReset = "reset"

// Request is one client message: either a free-text utterance or a reset
// directive.
type Request struct {
	Message string `json:"message,omitempty"`
	Action  string `json:"action,omitempty"`
}

// IsReset reports whether the request is the reset directive.
func (r Request) IsReset() bool {
	return r.Action == ActionReset
}

// Reply is the server's answer; it is the dialogue reply verbatim.
type Reply = dialogue.Reply
