package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jakababa94/mandazi-metrics/internal/config"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

func newTestService() *Service {
	users := repository.NewUsers(store.NewMemory())
	cfg := config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewService(users, cfg, nil)
}

func TestSignupLoginRoundtrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	user, token, err := svc.Signup(ctx, "Asha", "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "correct horse")

	loggedIn, token, err := svc.Login(ctx, "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	session, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "asha@example.com", session.Email)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, _, err := svc.Signup(ctx, "Asha", "asha@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Imposter", "asha@example.com", "other password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, _, err := svc.Signup(ctx, "Asha", "asha@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "asha@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, _, err := newTestService().Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, token, err := svc.Signup(ctx, "Asha", "asha@example.com", "correct horse")
	require.NoError(t, err)

	other := newTestService()
	other.cfg.JWTSecret = "different-secret"
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	_, token, err := svc.Signup(ctx, "Asha", "asha@example.com", "correct horse")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}
