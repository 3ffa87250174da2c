package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendVerification отправляет email верификации
	SendVerification(email string, token string) error

	// SendPurchaseReceipt отправляет чек о покупке книги
	SendPurchaseReceipt(email string, bookTitle string, amount float64, currency string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
