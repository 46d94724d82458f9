package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/config"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/jwt"
)

func newTestAuthService(t *testing.T) (AuthService, *jwt.Manager, *mockUserRepo) {
	t.Helper()
	authCfg := &config.AuthConfig{
		JWTSecret:               "test-secret-0123456789",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	}
	cfg := &config.Config{Auth: *authCfg}
	users := newMockUserRepo()
	repo := &repository.Repository{User: users}
	jwtMgr := jwt.NewManager(authCfg)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop()), jwtMgr, users
}

func seedUser(t *testing.T, users *mockUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{Name: "测试用户", Email: email, PasswordHash: string(hash), Role: model.RoleMember}
	users.Create(context.Background(), user)
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, users := newTestAuthService(t)
	seedUser(t, users, "a@example.com", "pass1234")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "路人", Email: "a@example.com", Password: "pass1234",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复邮箱期望 ErrEmailTaken，实际=%v", err)
	}
}

func TestLoginAndRefresh(t *testing.T) {
	svc, jwtMgr, users := newTestAuthService(t)
	seedUser(t, users, "a@example.com", "pass1234")
	ctx := context.Background()

	// 错误密码 / 不存在的邮箱统一返回 ErrInvalidCredentials
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码期望 ErrInvalidCredentials，实际=%v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "pass1234"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("不存在的邮箱期望 ErrInvalidCredentials，实际=%v", err)
	}

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "pass1234"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	claims, err := jwtMgr.ParseToken(tokens.AccessToken)
	if err != nil || claims.TokenType != "access" {
		t.Fatalf("access token 解析失败: %v %+v", err, claims)
	}

	// access token 不可用于换发
	if _, err := svc.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken}); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("access token 换发期望 ErrInvalidRefresh，实际=%v", err)
	}

	renewed, err := svc.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh 失败: %v", err)
	}
	if renewed.AccessToken == "" || renewed.User.Email != "a@example.com" {
		t.Errorf("换发结果不完整: %+v", renewed)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, users := newTestAuthService(t)
	user := seedUser(t, users, "a@example.com", "oldpass1")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "nope", NewPassword: "newpass1",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("原密码错误期望 ErrOldPasswordWrong，实际=%v", err)
	}

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "oldpass1", NewPassword: "newpass1",
	}); err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "newpass1"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

func TestMeNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	if _, err := svc.Me(context.Background(), "user-ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
