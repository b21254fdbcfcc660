package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrAddOnNotFound возвращается, когда add-on не найден или принадлежит другой услуге
	ErrAddOnNotFound = errors.New("create_booking: add-on not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение bookingMonthLimit
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда слот закрыт или все места заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrAddressRequired возвращается, когда выездная услуга запрошена без адреса
	ErrAddressRequired = errors.New("create_booking: address is required for this service")

	// ErrDepositRequired возвращается, когда услуга требует депозит, а он не оплачен
	ErrDepositRequired = errors.New("create_booking: deposit is required for this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
