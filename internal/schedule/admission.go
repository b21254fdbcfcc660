package schedule

// MinAvailable возвращает минимальную оставшуюся capacity по всем бакетам
// timeline. Для пустого timeline ok = false
func MinAvailable(timeline Timeline) (int, bool) {
	first := true
	min := 0

	for _, v := range timeline {
		if first || v < min {
			min = v
			first = false
		}
	}

	return min, !first
}

// CanAdmit возвращает true, если по всему интервалу timeline остается
// не меньше requestedUnits свободных мест
//
// Для создания бронирования requestedUnits всегда 1 (клиент занимает одно
// место). Для создания блокировки requestedUnits = Units блокировки:
// мастер резервирует столько мест недоступными
func CanAdmit(timeline Timeline, requestedUnits int) bool {
	min, ok := MinAvailable(timeline)
	if !ok {
		// Пустой интервал нечего отклонять
		return true
	}
	return min >= requestedUnits
}
