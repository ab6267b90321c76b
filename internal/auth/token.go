package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// ErrInvalidToken возвращается для поддельного, испорченного или просроченного токена
var ErrInvalidToken = errors.New("auth: invalid token")

const issuer = "smc-space-booking"

// Claims содержимое токена сессии
type Claims struct {
	LoginID    string `json:"loginId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет токены HS256
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создает TokenIssuer
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue выпускает токен для сессии; возвращает токен и момент истечения
func (t *TokenIssuer) Issue(session domain.Session) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := Claims{
		LoginID:    session.LoginID,
		Name:       session.Name,
		Department: session.Department.String(),
		Role:       string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   session.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse проверяет подпись и срок и восстанавливает сессию
func (t *TokenIssuer) Parse(token string) (domain.Session, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: bad subject: %v", ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Session{}, fmt.Errorf("%w: bad role %q", ErrInvalidToken, claims.Role)
	}

	return domain.Session{
		UserID:     userID,
		LoginID:    claims.LoginID,
		Name:       claims.Name,
		Department: domain.ParseDepartment(claims.Department),
		Role:       role,
	}, nil
}
