package payment

// Статусы платежа MercadoPago, значимые для бронирования
const (
	StatusApproved   = "approved"
	StatusAuthorized = "authorized"
	StatusRejected   = "rejected"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// Info текущее состояние платежа у провайдера
type Info struct {
	PaymentID string
	Status    string
	Captured  bool
	Amount    int64 // в минимальных единицах валюты
}

// IsCaptured возвращает true, если деньги уже списаны
func (i *Info) IsCaptured() bool {
	return i.Captured && i.Status == StatusApproved
}

// CaptureRequest запрос на списание ранее авторизованного платежа
type CaptureRequest struct {
	PaymentRef string
	Amount     int64 // в минимальных единицах валюты
	Currency   string
	Metadata   map[string]string
}

// CaptureResult результат списания
type CaptureResult struct {
	PaymentID string
	Status    string
}

// RefundRequest запрос на возврат
type RefundRequest struct {
	PaymentID string
	Amount    int64 // в минимальных единицах валюты
	Metadata  map[string]string
}

// RefundResult результат возврата
type RefundResult struct {
	RefundID string
	Status   string
}
