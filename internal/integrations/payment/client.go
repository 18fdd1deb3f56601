package payment

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"
)

// Gateway платёжный шлюз поверх MercadoPago
// Платёж создаётся на стороне checkout с capture=false, здесь выполняются только списание и возврат
type Gateway struct {
	payments PaymentAPI
	refunds  RefundAPI
	timeout  time.Duration
	log      Logger
}

// NewGateway создает шлюз MercadoPago
// В mock-режиме (флаг конфигурации или PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK) провайдер эмулируется в памяти
func NewGateway(accessToken string, mock bool, log Logger) (*Gateway, error) {
	if mock || isMockEnabled() {
		log.Info("Payment gateway: mock mode enabled")
		provider := NewMockProvider()
		return NewGatewayWithClients(provider, provider, log), nil
	}

	if accessToken == "" {
		log.Error("Payment gateway: missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingAccessToken
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sdk config: %v", ErrProvider, err)
	}

	log.Info("Payment gateway: MercadoPago client initialized")
	return NewGatewayWithClients(mppayment.NewClient(cfg), mprefund.NewClient(cfg), log), nil
}

// NewGatewayWithClients создает шлюз с заданными клиентами провайдера
func NewGatewayWithClients(payments PaymentAPI, refunds RefundAPI, log Logger) *Gateway {
	return &Gateway{
		payments: payments,
		refunds:  refunds,
		log:      log,
	}
}

// WithTimeout ограничивает время каждого обращения к провайдеру
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	g.timeout = d
	return g
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// GetPayment возвращает текущее состояние платежа у провайдера
func (g *Gateway) GetPayment(ctx context.Context, paymentRef string) (*Info, error) {
	if g == nil || g.payments == nil {
		return nil, ErrNotConfigured
	}

	id, err := parseID(paymentRef)
	if err != nil {
		return nil, err
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.log.Error("Payment gateway: get payment=%s failed: %v", paymentRef, err)
		return nil, fmt.Errorf("%w: get payment %s: %v", ErrProvider, paymentRef, err)
	}

	return &Info{
		PaymentID: strconv.Itoa(resp.ID),
		Status:    resp.Status,
		Captured:  resp.Captured,
		Amount:    toMinor(resp.TransactionAmount),
	}, nil
}

// Capture списывает ранее авторизованный платёж на указанную сумму
func (g *Gateway) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	if g == nil || g.payments == nil {
		return nil, ErrNotConfigured
	}

	id, err := parseID(req.PaymentRef)
	if err != nil {
		return nil, err
	}

	g.log.Info("Payment gateway: capture start payment=%s amount=%d %s metadata=%v",
		req.PaymentRef, req.Amount, req.Currency, req.Metadata)

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.payments.CaptureAmount(ctx, id, fromMinor(req.Amount))
	if err != nil {
		g.log.Error("Payment gateway: capture payment=%s failed: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: capture payment %s: %v", ErrProvider, req.PaymentRef, err)
	}

	if resp.Status != StatusApproved || !resp.Captured {
		g.log.Warn("Payment gateway: capture payment=%s not approved, status=%s detail=%s",
			req.PaymentRef, resp.Status, resp.StatusDetail)
		return nil, fmt.Errorf("%w: status=%s detail=%s", ErrCaptureRejected, resp.Status, resp.StatusDetail)
	}

	g.log.Info("Payment gateway: capture success payment=%d status=%s", resp.ID, resp.Status)
	return &CaptureResult{
		PaymentID: strconv.Itoa(resp.ID),
		Status:    resp.Status,
	}, nil
}

// Refund возвращает указанную сумму по списанному платежу
func (g *Gateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	if g == nil || g.refunds == nil {
		return nil, ErrNotConfigured
	}

	id, err := parseID(req.PaymentID)
	if err != nil {
		return nil, err
	}

	g.log.Info("Payment gateway: refund start payment=%s amount=%d metadata=%v", req.PaymentID, req.Amount, req.Metadata)

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.refunds.CreatePartialRefund(ctx, id, fromMinor(req.Amount))
	if err != nil {
		g.log.Error("Payment gateway: refund payment=%s failed: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: refund payment %s: %v", ErrProvider, req.PaymentID, err)
	}

	if resp.Status == StatusRejected || resp.Status == StatusCancelled {
		return nil, fmt.Errorf("%w: status=%s", ErrRefundRejected, resp.Status)
	}

	g.log.Info("Payment gateway: refund success payment=%s refund=%d status=%s", req.PaymentID, resp.ID, resp.Status)
	return &RefundResult{
		RefundID: strconv.Itoa(resp.ID),
		Status:   resp.Status,
	}, nil
}

func parseID(ref string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return id, nil
}

func toMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinor(amount int64) float64 {
	return float64(amount) / 100
}

func isMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
