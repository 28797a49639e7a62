package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"katador_backend/internal/models"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims — утверждения сессионного токена: идентичность плюс роль,
// достаточные для авторизации без обращения к хранилищу.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string             `json:"account_id"`
	Role      models.AccountRole `json:"role"`
	Email     string             `json:"email"`
	Alias     string             `json:"alias"`
}

var (
	secretKey []byte
	tokenTTL  = 24 * time.Hour
)

// Init задает секрет подписи и срок жизни токена из конфигурации
func Init(secret string, ttl time.Duration) {
	secretKey = []byte(secret)
	if ttl != 0 {
		tokenTTL = ttl
	}
}

// GenerateToken подписывает токен HS256 с фиксированным сроком жизни
func GenerateToken(accountID string, role models.AccountRole, email, alias string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		AccountID: accountID,
		Role:      role,
		Email:     email,
		Alias:     alias,
	})

	return token.SignedString(secretKey)
}

// ParseToken проверяет подпись и срок. Истекший токен отличим от
// невалидного: клиенту отдаются разные коды.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
