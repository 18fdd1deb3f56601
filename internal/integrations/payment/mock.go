package payment

import (
	"context"
	"sync"

	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"
)

// MockProvider эмулирует MercadoPago в памяти
// Любой неизвестный платёж считается авторизованным и ещё не списанным
type MockProvider struct {
	mu           sync.Mutex
	captured     map[int]float64
	nextRefundID int
}

// NewMockProvider создает эмулятор провайдера
func NewMockProvider() *MockProvider {
	return &MockProvider{
		captured:     make(map[int]float64),
		nextRefundID: 1,
	}
}

func (m *MockProvider) Get(_ context.Context, id int) (*mppayment.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount, ok := m.captured[id]; ok {
		return &mppayment.Response{ID: id, Status: StatusApproved, Captured: true, TransactionAmount: amount}, nil
	}
	return &mppayment.Response{ID: id, Status: StatusAuthorized}, nil
}

func (m *MockProvider) CaptureAmount(_ context.Context, id int, amount float64) (*mppayment.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.captured[id] = amount
	return &mppayment.Response{
		ID:                id,
		Status:            StatusApproved,
		StatusDetail:      "accredited",
		Captured:          true,
		TransactionAmount: amount,
	}, nil
}

func (m *MockProvider) CreatePartialRefund(_ context.Context, paymentID int, amount float64) (*mprefund.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextRefundID
	m.nextRefundID++
	return &mprefund.Response{ID: id, PaymentID: paymentID, Amount: amount, Status: "approved"}, nil
}
