package mocks

import (
	"context"
	"sync"
)

// SentConfirmation is one recorded call to MockMailer.SendConfirmation.
type SentConfirmation struct {
	To   string
	Code string
}

// MockMailer implements auth.ConfirmationMailer and records every call.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentConfirmation

	// Err is returned from every call when set.
	Err error
}

// SendConfirmation implements the auth.ConfirmationMailer interface
func (m *MockMailer) SendConfirmation(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentConfirmation{To: to, Code: code})
	return m.Err
}

// Sent returns a copy of the recorded calls.
func (m *MockMailer) Sent() []SentConfirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentConfirmation(nil), m.sent...)
}

// Last returns the most recent call, or false when none was made.
func (m *MockMailer) Last() (SentConfirmation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentConfirmation{}, false
	}
	return m.sent[len(m.sent)-1], true
}
