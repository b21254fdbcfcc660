package paymentservice

import "errors"

var (
	// ErrDepositNotFound возвращается, когда по клиенту нет оплаченного депозита
	ErrDepositNotFound = errors.New("paymentservice client: deposit not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что платежный сервис недоступен и бронирование создается
	// без подтвержденного депозита
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
