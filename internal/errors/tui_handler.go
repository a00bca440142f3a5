package errors

import (
	"sync"
	"time"
)

// TUIHandler keeps notifications for display as a toast in the dashboard.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onNotify func(msg Message)
	now      func() time.Time
}

// Message is one user-facing notification.
type Message struct {
	// Key groups related messages, e.g. "sync:amazon" for a started/finished pair.
	Key       string
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
	MessageTypeLoading
)

// String returns the lowercase name of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeSuccess:
		return "success"
	case MessageTypeLoading:
		return "loading"
	default:
		return "info"
	}
}

// maxTUIMessages bounds the retained notification history.
const maxTUIMessages = 50

var (
	_ ErrorHandler = (*TUIHandler)(nil)
	_ Notifier     = (*TUIHandler)(nil)
)

func NewTUIHandler(onNotify func(msg Message)) *TUIHandler {
	return &TUIHandler{
		messages: make([]Message, 0),
		onNotify: onNotify,
		now:      time.Now,
	}
}

func (h *TUIHandler) Error(msg string)   { h.Notify(Message{Text: msg, Type: MessageTypeError}) }
func (h *TUIHandler) Warning(msg string) { h.Notify(Message{Text: msg, Type: MessageTypeWarning}) }
func (h *TUIHandler) Info(msg string)    { h.Notify(Message{Text: msg, Type: MessageTypeInfo}) }
func (h *TUIHandler) Success(msg string) { h.Notify(Message{Text: msg, Type: MessageTypeSuccess}) }

// Notify records msg, dropping an earlier message with the same non-empty key.
func (h *TUIHandler) Notify(msg Message) {
	h.mu.Lock()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.now()
	}
	if msg.Key != "" {
		kept := h.messages[:0]
		for _, m := range h.messages {
			if m.Key != msg.Key {
				kept = append(kept, m)
			}
		}
		h.messages = kept
	}
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxTUIMessages {
		h.messages = h.messages[len(h.messages)-maxTUIMessages:]
	}
	onNotify := h.onNotify
	h.mu.Unlock()

	if onNotify != nil {
		onNotify(msg)
	}
}

func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Pending returns messages still in the loading state, oldest first.
func (h *TUIHandler) Pending() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []Message
	for _, m := range h.messages {
		if m.Type == MessageTypeLoading {
			out = append(out, m)
		}
	}
	return out
}

func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = make([]Message, 0)
}

func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}
