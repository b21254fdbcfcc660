package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно работы не найдено
	ErrWindowNotFound = errors.New("schedule.repository: window not found")

	// ErrBlockNotFound возвращается, когда заблокированный интервал не найден
	ErrBlockNotFound = errors.New("schedule.repository: blocked interval not found")

	// ErrSettingsNotFound возвращается, когда настройки мастера не найдены
	ErrSettingsNotFound = errors.New("schedule.repository: artist settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
