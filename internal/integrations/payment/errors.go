package payment

import "errors"

var (
	// ErrMissingAccessToken возвращается, если не задан токен доступа и не включен mock-режим
	ErrMissingAccessToken = errors.New("payment gateway: missing MERCADOPAGO_ACCESS_TOKEN")

	// ErrNotConfigured возвращается при вызове неинициализированного шлюза
	ErrNotConfigured = errors.New("payment gateway: not configured")

	// ErrInvalidReference возвращается, если ссылка на платёж не является ID MercadoPago
	ErrInvalidReference = errors.New("payment gateway: invalid payment reference")

	// ErrCaptureRejected возвращается, если провайдер не подтвердил списание
	ErrCaptureRejected = errors.New("payment gateway: capture rejected")

	// ErrRefundRejected возвращается, если провайдер отклонил возврат
	ErrRefundRejected = errors.New("payment gateway: refund rejected")

	// ErrProvider возвращается при ошибке вызова провайдера
	ErrProvider = errors.New("payment gateway: provider error")
)
