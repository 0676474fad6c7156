package core

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the closed set of message variants that can appear in a
// transcript. Control transfers are first-class transcript entries (handoff
// kinds) so the full audit trail is reconstructable from the message sequence
// alone, without side channels.
type Kind string

const (
	// KindHuman is a caller-authored message seeding or continuing a conversation.
	KindHuman Kind = "human"

	// KindAI is a model-authored message produced by the supervisor or a worker.
	KindAI Kind = "ai"

	// KindHandoffRequest marks the supervisor transferring control to a worker.
	KindHandoffRequest Kind = "handoff_request"

	// KindHandoffResponse marks control returning from a worker to the
	// supervisor. It carries no model-authored content, only a control marker.
	KindHandoffResponse Kind = "handoff_response"
)

// SenderUser is the sender recorded on caller-seeded human messages.
const SenderUser = "user"

// Message is the unit of conversation exchanged between the supervisor and
// workers. After being appended to a conversation it is immutable; transcripts
// are append-only and never reordered.
//
// SequenceIndex is assigned by ConversationState.Append and is strictly
// increasing across the whole transcript. Constructors leave it at the
// Unassigned sentinel.
type Message struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Sender        string    `json:"sender"`
	Recipient     string    `json:"recipient,omitempty"`
	Content       string    `json:"content,omitempty"`
	SequenceIndex int       `json:"sequence_index"`
	Timestamp     time.Time `json:"timestamp"`
}

// Unassigned is the SequenceIndex value of a message that has not been
// appended to a conversation yet.
const Unassigned = -1

// NewID generates a unique identifier for messages and invocations.
func NewID() string { return uuid.NewString() }

func newMessage(kind Kind, sender string) Message {
	return Message{
		ID:            NewID(),
		Kind:          kind,
		Sender:        sender,
		SequenceIndex: Unassigned,
		Timestamp:     time.Now().UTC(),
	}
}

// NewHumanMessage creates a caller-authored message.
func NewHumanMessage(content string) Message {
	m := newMessage(KindHuman, SenderUser)
	m.Content = content
	return m
}

// NewAIMessage creates a model-authored message attributed to the named agent.
func NewAIMessage(sender, content string) Message {
	m := newMessage(KindAI, sender)
	m.Content = content
	return m
}

// NewHandoffRequest creates the transcript entry recording a control transfer
// from the supervisor to the named worker. The reason is free-form routing
// rationale; it may be empty.
func NewHandoffRequest(from, to, reason string) Message {
	m := newMessage(KindHandoffRequest, from)
	m.Recipient = to
	m.Content = reason
	return m
}

// NewHandoffResponse creates the synthetic control marker recording control
// returning from a worker to the supervisor. It must never be mistaken for
// model-authored content, hence the dedicated kind and empty content.
func NewHandoffResponse(from, to string) Message {
	m := newMessage(KindHandoffResponse, from)
	m.Recipient = to
	return m
}

// IsHandoff reports whether the message is a control-transfer marker.
func (m Message) IsHandoff() bool {
	return m.Kind == KindHandoffRequest || m.Kind == KindHandoffResponse
}

// Transcript is an ordered, append-only message sequence produced by one
// invocation.
type Transcript []Message

// FinalAnswer returns the last ai-kind message of the transcript, which for a
// completed invocation is the supervisor's final answer. The boolean reports
// whether one exists.
func (t Transcript) FinalAnswer() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Kind == KindAI {
			return t[i], true
		}
	}
	return Message{}, false
}

// Rows flattens the transcript into (sender, content) pairs for display,
// skipping control markers. Handy for console output and logs.
func (t Transcript) Rows() [][2]string {
	rows := make([][2]string, 0, len(t))
	for _, m := range t {
		if m.IsHandoff() {
			continue
		}
		rows = append(rows, [2]string{m.Sender, m.Content})
	}
	return rows
}

// Clone returns a copy of the transcript safe for independent use.
func (t Transcript) Clone() Transcript {
	c := make(Transcript, len(t))
	copy(c, t)
	return c
}
