package check_availability

import (
	"time"

	"github.com/glamslot/booking-service/pkg/types"
)

// Request модель запроса проверки доступности слота
type Request struct {
	ArtistID  int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	AddOnIDs  []int64
}

// Возможные причины недоступности слота
const (
	ReasonSlotNotAvailable = "This slot is not available"
	ReasonDateNotBookable  = "This date is not open for booking"
)

// Response результат проверки доступности
//
// Ответ рекомендательный: слот может быть занят между проверкой и
// созданием бронирования. Финальное решение принимает создание
// бронирования в сериализуемой транзакции
type Response struct {
	Available       bool
	Reason          string // Пустая строка, если слот доступен
	DurationMinutes int    // Полная длительность с учетом add-on'ов
}
