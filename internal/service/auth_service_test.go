package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenlye/tricore-api/internal/model"
	"github.com/shenlye/tricore-api/internal/repository"
	"github.com/shenlye/tricore-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), testSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	// 用户名或邮箱都可登录
	token, view, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.ID)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	_, _, err = svc.Login(ctx, "alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestRegister_DuplicateUser(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "bob@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(ctx, "other", "bob@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "carol@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 账号不存在与口令错误不可区分
	_, _, err = svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dave", "dave@example.com", "oldpassword")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "oldpassword", "newpassword"))

	_, _, err = svc.Login(ctx, "dave", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "dave", "newpassword")
	assert.NoError(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "adminpass"))

	_, view, err := svc.Login(ctx, "admin", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, view.Role)

	// 已有管理员时重复引导不生效
	require.NoError(t, svc.EnsureAdmin(ctx, "admin2", "admin2@example.com", "otherpass"))
	_, _, err = svc.Login(ctx, "admin2", "otherpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 空口令表示未配置，直接跳过
	require.NoError(t, svc.EnsureAdmin(ctx, "x", "x@example.com", ""))
}
