package token

import "errors"

var (
	// ErrMissingSecret возвращается, если секрет подписи не задан
	ErrMissingSecret = errors.New("token: missing signing secret")

	// ErrInvalidToken токен повреждён, просрочен или подписан другим ключом
	ErrInvalidToken = errors.New("token: invalid token")
)
