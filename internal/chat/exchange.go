package chat

import (
	"strings"
	"sync"
	"time"
)

type Origin string

const (
	User      Origin = "user"
	Assistant Origin = "assistant"
)

type Message struct {
	Origin Origin `json:"origin"`
	Text   string `json:"text"`
}

// Exchange is one conversation: an append-only transcript plus a typing
// indicator that is raised while an assistant reply is scheduled. Replies
// are delivered after a fixed delay; Close drops any that have not fired.
type Exchange struct {
	matcher *Matcher
	delay   time.Duration
	onReply func(Message)

	mu      sync.Mutex
	msgs    []Message
	pending int
	timers  map[*time.Timer]struct{}
	closed  bool
}

// NewExchange creates an empty exchange. onReply, if set, is called after each
// assistant message is appended, outside the exchange's lock.
func NewExchange(m *Matcher, delay time.Duration, onReply func(Message)) *Exchange {
	return &Exchange{
		matcher: m,
		delay:   delay,
		onReply: onReply,
		timers:  make(map[*time.Timer]struct{}),
	}
}

// Open greets the user the first time a conversation is shown.
func (e *Exchange) Open() {
	greeting := e.matcher.Greeting()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.msgs) == 0 && e.pending == 0 {
		e.scheduleLocked(greeting)
	}
}

// Send records the user's text and schedules the assistant's answer. Blank
// input is ignored and reports false.
func (e *Exchange) Send(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	reply := e.matcher.Reply(text)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.msgs = append(e.msgs, Message{Origin: User, Text: text})
	e.scheduleLocked(reply)
	return true
}

// scheduleLocked must be called with e.mu held.
func (e *Exchange) scheduleLocked(reply string) {
	if e.closed {
		return
	}
	e.pending++

	var t *time.Timer
	t = time.AfterFunc(e.delay, func() {
		e.mu.Lock()
		if _, live := e.timers[t]; !live {
			e.mu.Unlock()
			return
		}
		delete(e.timers, t)
		msg := Message{Origin: Assistant, Text: reply}
		e.msgs = append(e.msgs, msg)
		e.pending--
		cb := e.onReply
		e.mu.Unlock()

		if cb != nil {
			cb(msg)
		}
	})
	e.timers[t] = struct{}{}
}

// Typing reports whether an assistant reply is still on its way.
func (e *Exchange) Typing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending > 0
}

// Messages returns a copy of the transcript in order.
func (e *Exchange) Messages() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Message, len(e.msgs))
	copy(out, e.msgs)
	return out
}

// Close discards undelivered replies. Further sends are ignored.
func (e *Exchange) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for t := range e.timers {
		t.Stop()
		delete(e.timers, t)
	}
	e.pending = 0
	e.closed = true
}
