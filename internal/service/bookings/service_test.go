package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/payment"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/refund"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

// ---------- Mocks ----------

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) GetPayment(ctx context.Context, ref string) (*payment.Info, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Info), args.Error(1)
}

func (m *MockPaymentGateway) Capture(ctx context.Context, req payment.CaptureRequest) (*payment.CaptureResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CaptureResult), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, req payment.RefundRequest) (*payment.RefundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RefundResult), args.Error(1)
}

type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) Sign(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	args := m.Called(payload, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) Verify(token string) (*domain.TokenPayload, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPayload), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error {
	args := m.Called(ctx, event, booking)
	return args.Error(0)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// ---------- Helpers ----------

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *MockBookingRepository
	payments *MockPaymentGateway
	tokens   *MockTokenSigner
	notifier *MockNotifier
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(MockBookingRepository),
		payments: new(MockPaymentGateway),
		tokens:   new(MockTokenSigner),
		notifier: new(MockNotifier),
	}

	policy := domain.DefaultPolicy()
	f.service = NewService(
		f.repo,
		f.payments,
		f.tokens,
		f.notifier,
		refund.NewPolicy(policy.Cancellation),
		policy.Booking,
		logger.Nop(),
	).WithTimeProvider(&fixedClock{now: testNow})

	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		ServiceID:     domain.ServiceSejour,
		StartDate:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
		Quantity:      2,
		Contact:       domain.Contact{Name: "Camille", Email: "camille@example.com"},
		Total:         142.5,
		PaymentRef:    ptr.Ptr("1001"),
		PaymentStatus: domain.PaymentAuthorized,
		Status:        domain.StatusPending,
	}
}

func paidBooking(start time.Time, total float64) *domain.Booking {
	return &domain.Booking{
		ID:            7,
		ServiceID:     domain.ServiceSejour,
		StartDate:     start,
		EndDate:       start,
		Quantity:      1,
		Total:         total,
		PaymentID:     ptr.Ptr("555"),
		PaymentStatus: domain.PaymentPaid,
		Status:        domain.StatusConfirmed,
	}
}

// ---------- Confirm ----------

func TestConfirm_CapturesAndConfirms(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	f.payments.On("GetPayment", mock.Anything, "1001").
		Return(&payment.Info{PaymentID: "1001", Status: payment.StatusAuthorized}, nil)
	f.payments.On("Capture", mock.Anything, mock.MatchedBy(func(req payment.CaptureRequest) bool {
		return req.PaymentRef == "1001" && req.Amount == 14250 && req.Currency == "EUR" && req.Metadata["bookingId"] == "42"
	})).Return(&payment.CaptureResult{PaymentID: "1001", Status: payment.StatusApproved}, nil)
	f.tokens.On("Sign", domain.TokenPayload{BookingID: 42, Type: domain.TokenTypeCancel}, domain.DefaultCancelTokenTTL).
		Return("cancel-token", nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed && b.PaymentStatus == domain.PaymentPaid
	})).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingConfirmed, mock.Anything).Return(nil)

	resp, err := f.service.Confirm(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "cancel-token", resp.CancelToken)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	assert.Equal(t, "paid", resp.Booking.PaymentStatus)
	assert.Equal(t, "1001", *resp.Booking.PaymentID)
	require.NotNil(t, booking.ConfirmedAt)
	assert.Equal(t, testNow, *booking.ConfirmedAt)
	assert.Equal(t, "cancel-token", *booking.CancellationToken)
	f.assertExpectations(t)
}

func TestConfirm_AlreadyCapturedIsNotChargedAgain(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	f.payments.On("GetPayment", mock.Anything, "1001").
		Return(&payment.Info{PaymentID: "1001", Status: payment.StatusApproved, Captured: true}, nil)
	f.tokens.On("Sign", mock.Anything, mock.Anything).Return("cancel-token", nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingConfirmed, mock.Anything).Return(nil)

	resp, err := f.service.Confirm(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Booking.Status)
	f.payments.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestConfirm_CaptureFailureKeepsPending(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	f.payments.On("GetPayment", mock.Anything, "1001").
		Return(&payment.Info{PaymentID: "1001", Status: payment.StatusAuthorized}, nil)
	f.payments.On("Capture", mock.Anything, mock.Anything).
		Return(nil, payment.ErrCaptureRejected)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending &&
			b.PaymentStatus == domain.PaymentCaptureFailed &&
			b.PaymentError != nil
	})).Return(nil)

	resp, err := f.service.Confirm(context.Background(), 42)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrPaymentCaptureFailed)
	assert.ErrorIs(t, err, domain.ErrPaymentCaptureFailed)
	assert.Equal(t, domain.KindPaymentCaptureFailed, domain.KindOf(err))
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Nil(t, booking.ConfirmedAt)
	f.tokens.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestConfirm_WithoutPaymentMethod(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()
	booking.PaymentRef = nil
	booking.PaymentStatus = domain.PaymentUnpaid

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	f.tokens.On("Sign", mock.Anything, mock.Anything).Return("cancel-token", nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingConfirmed, mock.Anything).Return(nil)

	resp, err := f.service.Confirm(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Booking.Status)
	assert.Equal(t, "unpaid", resp.Booking.PaymentStatus)
	f.payments.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestConfirm_InvalidTransitions(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusRejected, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			booking := pendingBooking()
			booking.Status = status
			f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)

			_, err := f.service.Confirm(context.Background(), 42)

			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
			var transitionErr *domain.InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, status, transitionErr.From)
			assert.Equal(t, domain.StatusConfirmed, transitionErr.To)
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestConfirm_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.service.Confirm(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestConfirm_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	f.payments.On("GetPayment", mock.Anything, "1001").
		Return(&payment.Info{PaymentID: "1001", Status: payment.StatusApproved, Captured: true}, nil)
	f.tokens.On("Sign", mock.Anything, mock.Anything).Return("cancel-token", nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingConfirmed, mock.Anything).
		Return(errors.New("broker unavailable"))

	resp, err := f.service.Confirm(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	f.assertExpectations(t)
}

// ---------- Reject ----------

func TestReject_DefaultReason(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingRejected, mock.Anything).Return(nil)

	resp, err := f.service.Reject(context.Background(), 42, &models.RejectBookingRequest{Reason: ptr.Ptr("   ")})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, domain.DefaultRejectionReason, *resp.RejectionReason)
	assert.Equal(t, testNow, *booking.RejectedAt)
	f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestReject_CustomReason(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingRejected, mock.Anything).Return(nil)

	resp, err := f.service.Reject(context.Background(), 42, &models.RejectBookingRequest{Reason: ptr.Ptr("closed for holidays")})
	require.NoError(t, err)

	assert.Equal(t, "closed for holidays", *resp.RejectionReason)
}

func TestReject_NilRequestUsesDefaultReason(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingRejected, mock.Anything).Return(nil)

	resp, err := f.service.Reject(context.Background(), 42, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRejectionReason, *resp.RejectionReason)
}

func TestReject_OnlyFromPending(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)

	_, err := f.service.Reject(context.Background(), 42, &models.RejectBookingRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.KindInvalidStateTransition, domain.KindOf(err))
}

// ---------- Cancel ----------

func TestCancel_FullRefundTenDaysAhead(t *testing.T) {
	f := newFixture()
	booking := paidBooking(time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC), 100)

	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	f.payments.On("Refund", mock.Anything, mock.MatchedBy(func(req payment.RefundRequest) bool {
		return req.PaymentID == "555" && req.Amount == 10000
	})).Return(&payment.RefundResult{RefundID: "r-1", Status: payment.StatusApproved}, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 100.0, *resp.RefundAmount)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.Equal(t, "r-1", *resp.RefundID)
	assert.Equal(t, testNow, *booking.CancelledAt)
	f.assertExpectations(t)
}

func TestCancel_NoRefundTwelveHoursAhead(t *testing.T) {
	f := newFixture()
	booking := paidBooking(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), 100)

	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{Reason: ptr.Ptr("plans changed")})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 0.0, *resp.RefundAmount)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Nil(t, resp.RefundID)
	assert.Equal(t, "plans changed", *resp.CancellationReason)
	f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCancel_PartialRefund(t *testing.T) {
	f := newFixture()
	// 36 часов до заезда: меньше 3 дней, но больше 24 часов
	booking := paidBooking(time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC), 142.25)

	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	f.payments.On("Refund", mock.Anything, mock.MatchedBy(func(req payment.RefundRequest) bool {
		return req.Amount == 7113
	})).Return(&payment.RefundResult{RefundID: "r-2"}, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, 71.13, *resp.RefundAmount)
	f.assertExpectations(t)
}

func TestCancel_RefundFailureStillCancels(t *testing.T) {
	f := newFixture()
	booking := paidBooking(time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC), 100)

	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	f.payments.On("Refund", mock.Anything, mock.Anything).Return(nil, payment.ErrProvider)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusCancelled && b.RefundID == nil && b.RefundError != nil
	})).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Nil(t, resp.RefundID)
	assert.NotNil(t, resp.RefundError)
	assert.Equal(t, 100.0, *resp.RefundAmount)
	assert.Equal(t, "paid", resp.PaymentStatus)
	f.assertExpectations(t)
}

func TestCancel_UnpaidPendingBooking(t *testing.T) {
	f := newFixture()
	booking := pendingBooking()

	f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 42, &models.CancelBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Nil(t, resp.RefundAmount)
	f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestCancel_WithValidToken(t *testing.T) {
	f := newFixture()
	booking := paidBooking(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), 100)

	f.tokens.On("Verify", "tok").Return(&domain.TokenPayload{BookingID: 7, Type: domain.TokenTypeCancel}, nil)
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, domain.EventBookingCancelled, mock.Anything).Return(nil)

	resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{Token: ptr.Ptr("tok")})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	f.assertExpectations(t)
}

func TestCancel_InvalidTokens(t *testing.T) {
	tests := []struct {
		name    string
		payload *domain.TokenPayload
		err     error
	}{
		{name: "malformed or expired", err: errors.New("token is expired")},
		{name: "other booking", payload: &domain.TokenPayload{BookingID: 8, Type: domain.TokenTypeCancel}},
		{name: "wrong type", payload: &domain.TokenPayload{BookingID: 7, Type: "login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.tokens.On("Verify", "tok").Return(tt.payload, tt.err)

			resp, err := f.service.Cancel(context.Background(), 7, &models.CancelBookingRequest{Token: ptr.Ptr("tok")})

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.Equal(t, domain.KindInvalidToken, domain.KindOf(err))
			f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestCancel_TerminalStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusRejected, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			booking := pendingBooking()
			booking.Status = status
			f.repo.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)

			_, err := f.service.Cancel(context.Background(), 42, &models.CancelBookingRequest{})

			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture()
	long := make([]byte, domain.MaxReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := f.service.Cancel(context.Background(), 42, &models.CancelBookingRequest{Reason: ptr.Ptr(string(long))})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancel_NilRequest(t *testing.T) {
	f := newFixture()

	_, err := f.service.Cancel(context.Background(), 42, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

// ---------- Read operations ----------

func TestGetByID_InvalidID(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetByID(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListByEmail(t *testing.T) {
	f := newFixture()
	f.service.WithListLimit(20)

	f.repo.On("Find", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.Email != nil && *filter.Email == "camille@example.com" && filter.Limit == 20
	})).Return([]*domain.Booking{pendingBooking()}, nil)

	resp, err := f.service.ListByEmail(context.Background(), &models.ListBookingsRequest{Email: " Camille@Example.com ", Limit: 500})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(42), resp.Bookings[0].ID)
	f.assertExpectations(t)
}

func TestListByEmail_RequiresEmail(t *testing.T) {
	f := newFixture()

	_, err := f.service.ListByEmail(context.Background(), &models.ListBookingsRequest{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
