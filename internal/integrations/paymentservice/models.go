package paymentservice

// Deposit модель депозита из платежного сервиса
type Deposit struct {
	ID        int64   `json:"id"`
	ClientID  int64   `json:"client_id"`
	ServiceID int64   `json:"service_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"` // pending | paid | refunded
}

// IsPaid возвращает true, если депозит оплачен
func (d *Deposit) IsPaid() bool {
	return d.Status == "paid"
}

// ErrorResponse модель ошибки от платежного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
