package app

import "readly_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error                       { return nil }
func (m *MockEmailProvider) SendVerification(email string, token string) error { return nil }
func (m *MockEmailProvider) SendPurchaseReceipt(email string, bookTitle string, amount float64, currency string) error {
	return nil
}
func (m *MockEmailProvider) Validate() error { return nil }
