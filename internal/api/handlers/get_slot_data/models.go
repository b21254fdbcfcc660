package get_slot_data

import (
	"github.com/glamslot/booking-service/internal/domain"
	getSlotData "github.com/glamslot/booking-service/internal/usecase/get_slot_data"
)

// WindowItem окно недельного расписания
type WindowItem struct {
	Day         int `json:"day"` // 0 = понедельник .. 6 = воскресенье
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

// BlockedItem заблокированный интервал
type BlockedItem struct {
	Date        string `json:"date"` // "2026-03-15"
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Units       int    `json:"units"`
}

// BookedSlot занятый слот
type BookedSlot struct {
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// AddOnDuration длительность add-on'а
type AddOnDuration struct {
	AddOnID         int64 `json:"addOnId"`
	DurationMinutes int   `json:"durationMinutes"`
}

// SlotDataResponse HTTP response model с сырыми данными для расчета
// доступности на стороне клиента
type SlotDataResponse struct {
	Availability      []WindowItem  `json:"availability"`
	BlockedDates      []BlockedItem `json:"blockedDates"`
	MaxClients        int           `json:"maxClients"`
	BookingMonthLimit int           `json:"bookingMonthLimit"`
	BookedSlots       []BookedSlot  `json:"bookedSlots"`

	ServiceDurationMinutes int             `json:"serviceDurationMinutes"`
	AddOns                 []AddOnDuration `json:"addOns"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotData.Response) *SlotDataResponse {
	out := &SlotDataResponse{
		Availability:           make([]WindowItem, 0, len(resp.Availability)),
		BlockedDates:           make([]BlockedItem, 0, len(resp.BlockedDates)),
		MaxClients:             resp.MaxClients,
		BookingMonthLimit:      resp.BookingMonthLimit,
		BookedSlots:            make([]BookedSlot, 0, len(resp.BookedSlots)),
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		AddOns:                 make([]AddOnDuration, 0, len(resp.AddOns)),
	}

	for _, w := range resp.Availability {
		out.Availability = append(out.Availability, WindowItem{
			Day:         w.Day,
			StartMinute: w.StartMinute,
			EndMinute:   w.EndMinute,
		})
	}

	for _, b := range resp.BlockedDates {
		out.BlockedDates = append(out.BlockedDates, BlockedItem{
			Date:        b.Date.Format(domain.DateFormat),
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
			Units:       b.Units,
		})
	}

	for _, s := range resp.BookedSlots {
		out.BookedSlots = append(out.BookedSlots, BookedSlot{
			Date:            s.Date.Format(domain.DateFormat),
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	for _, a := range resp.AddOns {
		out.AddOns = append(out.AddOns, AddOnDuration{
			AddOnID:         a.AddOnID,
			DurationMinutes: a.DurationMinutes,
		})
	}

	return out
}
