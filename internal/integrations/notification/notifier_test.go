package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            17,
		ServiceID:     domain.ServiceSejour,
		StartDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Quantity:      1,
		Animals:       []domain.Animal{{Name: "Rex", Size: domain.SizeLarge}},
		Contact:       domain.Contact{Name: "Anna", Email: "anna@example.com"},
		Total:         75,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
}

func TestKafkaNotifier_Publishes(t *testing.T) {
	writer := &fakeWriter{}
	n := NewKafkaNotifierWithWriter(writer, time.Second, logger.Nop())

	err := n.Notify(context.Background(), domain.EventBookingConfirmed, testBooking())
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "17", string(msg.Key))

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "booking.confirmed", event.Type)
	assert.Equal(t, int64(17), event.Booking.ID)
	assert.Equal(t, "2025-06-10", event.Booking.StartDate)
	assert.Equal(t, "anna@example.com", event.Booking.ContactEmail)
	assert.NotEmpty(t, event.ID)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	n := NewKafkaNotifierWithWriter(writer, time.Second, logger.Nop())

	err := n.Notify(context.Background(), domain.EventBookingCancelled, testBooking())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestKafkaNotifier_Closed(t *testing.T) {
	writer := &fakeWriter{}
	n := NewKafkaNotifierWithWriter(writer, time.Second, logger.Nop())

	require.NoError(t, n.Close())
	require.NoError(t, n.Close())
	assert.True(t, writer.closed)

	err := n.Notify(context.Background(), domain.EventBookingReceived, testBooking())
	assert.ErrorIs(t, err, ErrNotifierClosed)
}
