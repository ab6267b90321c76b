package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Дешевые параметры, чтобы тесты не тормозили
var testParams = Argon2idParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(testParams)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.NoError(t, h.Verify(hash, "password123"))
	assert.ErrorIs(t, h.Verify(hash, "password124"), ErrPasswordMismatch)

	other, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ")
}

func TestPasswordHasherVerifyWithDifferentParams(t *testing.T) {
	hash, err := NewPasswordHasher(testParams).Hash("abc12345")
	require.NoError(t, err)

	assert.NoError(t, NewPasswordHasher(DefaultArgon2idParams).Verify(hash, "abc12345"))
}

func TestPasswordHasherInvalidHash(t *testing.T) {
	h := NewPasswordHasher(testParams)

	assert.ErrorIs(t, h.Verify("plain", "x"), ErrInvalidPasswordHash)
	assert.ErrorIs(t, h.Verify("$bcrypt$v=19$m=1,t=1,p=1$AAAA$AAAA", "x"), ErrInvalidPasswordHash)
	assert.ErrorIs(t, h.Verify("$argon2id$v=18$m=1,t=1,p=1$AAAA$AAAA", "x"), ErrIncompatibleVersion)
	assert.ErrorIs(t, h.Verify("$argon2id$v=19$m=1,t=1,p=1$!!!$AAAA", "x"), ErrInvalidPasswordHash)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	session := domain.Session{
		UserID:     uuid.New(),
		LoginID:    "hong",
		Name:       "홍길동",
		Department: domain.Other("청년부"),
		Role:       domain.RoleUser,
	}

	token, expiresAt, err := issuer.Issue(session)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	session := domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin, Department: domain.Known(domain.DeptClergy)}

	token, _, err := issuer.Issue(session)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenIssuer("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Issuer:  "smc-space-booking",
			Subject: uuid.NewString(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
