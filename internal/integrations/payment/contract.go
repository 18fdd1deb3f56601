package payment

import (
	"context"

	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"
)

// PaymentAPI подмножество клиента платежей MercadoPago, которым пользуется шлюз
type PaymentAPI interface {
	Get(ctx context.Context, id int) (*mppayment.Response, error)
	CaptureAmount(ctx context.Context, id int, amount float64) (*mppayment.Response, error)
}

// RefundAPI подмножество клиента возвратов MercadoPago
type RefundAPI interface {
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*mprefund.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
