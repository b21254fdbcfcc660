package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно работы не найдено
	ErrWindowNotFound = errors.New("window not found")

	// ErrWindowConflict возвращается, когда новое окно пересекается
	// с существующим хотя бы одной минутой
	ErrWindowConflict = errors.New("window overlaps an existing window")

	// ErrBlockNotFound возвращается, когда заблокированный интервал не найден
	ErrBlockNotFound = errors.New("blocked interval not found")

	// ErrAccessDenied возвращается, когда пользователь меняет чужое расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
