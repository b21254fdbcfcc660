package add_blocked_date

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени конца
	ErrInvalidTimeRange = errors.New("add_blocked_date: start time cannot be greater than end time")

	// ErrNotEnoughArtists возвращается, когда свободных мест меньше, чем
	// мастер хочет зарезервировать
	ErrNotEnoughArtists = errors.New("add_blocked_date: not enough artists available")

	// ErrSlotNotAvailable возвращается, когда интервал не покрыт целиком
	// ни одним окном недельного расписания
	ErrSlotNotAvailable = errors.New("add_blocked_date: slot is not available")

	// ErrAccessDenied возвращается, когда пользователь пытается заблокировать
	// чужое расписание
	ErrAccessDenied = errors.New("add_blocked_date: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_blocked_date: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_blocked_date: internal error")
)
