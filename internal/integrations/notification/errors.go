package notification

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notification: failed to encode event")

	// ErrPublish возвращается при ошибке отправки события в Kafka
	ErrPublish = errors.New("notification: failed to publish event")

	// ErrNotifierClosed возвращается при отправке через закрытый notifier
	ErrNotifierClosed = errors.New("notification: notifier is closed")
)
