package user_services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/user"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return NewAuthService(user.NewGormUserRepository(db), "test-secret", noopLogger{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice_01", "supersecret")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.NotEqual(t, "supersecret", created.Password, "password must be stored hashed")

	account, token, err := svc.Login(ctx, "alice_01", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ab", "supersecret")
	assert.Error(t, err, "username too short")

	_, err = svc.Register(ctx, "has spaces", "supersecret")
	assert.Error(t, err, "username with invalid characters")

	_, err = svc.Register(ctx, "alice_01", "short")
	assert.Error(t, err, "password too short")
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice_01", "othersecret")
	assert.EqualError(t, err, "username already taken")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice_01", "wrongpassword")
	assert.EqualError(t, err, "invalid credentials")

	_, _, err = svc.Login(ctx, "nobody", "supersecret")
	assert.EqualError(t, err, "invalid credentials")

	_, _, err = svc.Login(ctx, "", "")
	assert.Error(t, err)
}

func TestValidateJWTTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.ValidateJWTToken("")
	assert.Error(t, err)

	_, err = svc.ValidateJWTToken("not.a.token")
	assert.Error(t, err)
}
