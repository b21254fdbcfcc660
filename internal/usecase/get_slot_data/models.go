package get_slot_data

import (
	"time"

	"github.com/glamslot/booking-service/pkg/types"
)

// Request модель запроса данных о слотах
type Request struct {
	ArtistID  int64
	ServiceID int64
}

// Response сырые данные для расчета доступности на стороне клиента:
// недельные окна, блокировки и занятые слоты отдаются как есть
type Response struct {
	Availability      []WindowItem
	BlockedDates      []BlockedItem
	MaxClients        int // unitCount мастера
	BookingMonthLimit int
	BookedSlots       []BookedSlot

	ServiceDurationMinutes int
	AddOns                 []AddOnDuration
}

// WindowItem окно недельного расписания
type WindowItem struct {
	Day         int // 0 = понедельник .. 6 = воскресенье
	StartMinute int
	EndMinute   int
}

// BlockedItem заблокированный интервал на конкретную дату
type BlockedItem struct {
	Date        time.Time
	StartMinute int
	EndMinute   int
	Units       int
}

// BookedSlot занятый бронированием слот
type BookedSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// AddOnDuration длительность add-on'а для расчета полной длительности записи
type AddOnDuration struct {
	AddOnID         int64
	DurationMinutes int
}
