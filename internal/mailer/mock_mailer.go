package mailer

import "sync"

// MockMailer records sent mail instead of dialing SMTP. Safe for concurrent use.
type MockMailer struct {
	mu         sync.Mutex
	Recipients []string
	Templates  []string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Recipients = append(m.Recipients, recipient)
	m.Templates = append(m.Templates, templateFile)

	return nil
}
