package token

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// Claims содержимое токена
type Claims struct {
	BookingID int64  `json:"booking_id"`
	Type      string `json:"type"`
	jwtlib.RegisteredClaims
}

// Signer выпускает и проверяет подписанные HS256 токены
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSigner создает подписчик токенов
func NewSigner(secret, issuer string) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Sign подписывает полезную нагрузку со сроком жизни ttl
func (s *Signer) Sign(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		BookingID: payload.BookingID,
		Type:      payload.Type,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия и возвращает полезную нагрузку
// Тип токена не проверяется: это решает вызывающая сторона
func (s *Signer) Verify(tokenStr string) (*domain.TokenPayload, error) {
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}

	return &domain.TokenPayload{
		BookingID: claims.BookingID,
		Type:      claims.Type,
	}, nil
}
