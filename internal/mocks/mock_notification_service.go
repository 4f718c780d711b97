package mocks

import (
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// SentNotification records one delivery attempt
type SentNotification struct {
	Channel string
	To      string
	Subject string
	Body    string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu   sync.Mutex
	sent []SentNotification
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records the SMS and succeeds unless SendSMSFunc says otherwise
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.record(SentNotification{Channel: "sms", To: to, Body: message})
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

// SendEmail records the email and succeeds unless SendEmailFunc says otherwise
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.record(SentNotification{Channel: "email", To: to, Subject: subject, Body: body})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// Sent returns every recorded notification in order
func (m *MockNotificationService) Sent() []SentNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentNotification(nil), m.sent...)
}

func (m *MockNotificationService) record(n SentNotification) {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
