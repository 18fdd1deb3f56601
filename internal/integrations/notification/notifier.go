package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// KafkaNotifier публикует события жизненного цикла бронирований в Kafka
// Ключ сообщения = ID бронирования, чтобы события одного бронирования шли по порядку
type KafkaNotifier struct {
	writer       MessageWriter
	writeTimeout time.Duration
	log          Logger

	mu     sync.RWMutex
	closed bool
}

// NewKafkaNotifier создает notifier с писателем kafka-go
func NewKafkaNotifier(brokers []string, topic string, writeTimeout time.Duration, log Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: writeTimeout,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { log.Error("kafka: "+msg, args...) }),
	}
	return NewKafkaNotifierWithWriter(writer, writeTimeout, log)
}

// NewKafkaNotifierWithWriter создает notifier с заданным писателем
func NewKafkaNotifierWithWriter(writer MessageWriter, writeTimeout time.Duration, log Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer:       writer,
		writeTimeout: writeTimeout,
		log:          log,
	}
}

// Notify публикует событие с полной записью бронирования
func (n *KafkaNotifier) Notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierClosed
	}

	msg := Event{
		ID:         uuid.NewString(),
		Type:       string(event),
		OccurredAt: time.Now().UTC(),
		Booking:    newBookingPayload(booking),
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if n.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.writeTimeout)
		defer cancel()
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: value,
		Time:  msg.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event)},
			{Key: "event-id", Value: []byte(msg.ID)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: event=%s booking=%d: %v", ErrPublish, event, booking.ID, err)
	}

	n.log.Info("Notification: published event=%s booking=%d", event, booking.ID)
	return nil
}

// Close закрывает писателя
func (n *KafkaNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	return n.writer.Close()
}

// LogNotifier используется, когда Kafka выключена: событие только логируется
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает notifier без внешней доставки
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify записывает событие в лог
func (n *LogNotifier) Notify(_ context.Context, event domain.BookingEvent, booking *domain.Booking) error {
	n.log.Info("Notification: event=%s booking=%d status=%s (delivery disabled)", event, booking.ID, booking.Status)
	return nil
}

// Close ничего не делает
func (n *LogNotifier) Close() error {
	return nil
}
