package add_blocked_date

import (
	"time"

	"github.com/glamslot/booking-service/pkg/types"
)

// Request модель запроса на блокировку интервала
type Request struct {
	UserID    int64            // ID пользователя из заголовка авторизации
	ArtistID  int64            // ID мастера, чье расписание блокируется
	Date      time.Time        // Дата блокировки
	StartTime types.TimeString // Начало интервала ("10:00")
	EndTime   types.TimeString // Конец интервала ("12:00")
	Units     int              // Сколько мест резервируется как недоступные
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID          int64
	ArtistID    int64
	Date        time.Time
	StartMinute int
	EndMinute   int
	Units       int
	CreatedAt   time.Time
}
