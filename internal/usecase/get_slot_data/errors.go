package get_slot_data

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_slot_data: service not found")

	// ErrServiceMismatch возвращается, когда услуга принадлежит другому мастеру
	ErrServiceMismatch = errors.New("get_slot_data: service does not belong to artist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_data: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_data: internal error")
)
