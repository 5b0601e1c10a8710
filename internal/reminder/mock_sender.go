package reminder

import (
	"context"
	"sync"
)

// SentMessage records one Send invocation observed by MockSender.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// MockSender is a Sender implementation for tests. It records every send
// and can be configured to fail.
type MockSender struct {
	mu       sync.Mutex
	sent     []SentMessage
	attempts int

	// SendFn, when set, replaces the default record-and-succeed behavior.
	SendFn func(ctx context.Context, to, subject, body string) error
}

// Ensure MockSender implements Sender interface
var _ Sender = (*MockSender)(nil)

// NewMockSender creates a MockSender that records sends and succeeds.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send implements the Sender interface.
func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.attempts++
	m.mu.Unlock()

	if m.SendFn != nil {
		if err := m.SendFn(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Attempts returns the total number of Send invocations, including failed
// ones.
func (m *MockSender) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Sent returns a copy of all successfully recorded messages.
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// SentCount returns the number of successfully recorded messages.
func (m *MockSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
