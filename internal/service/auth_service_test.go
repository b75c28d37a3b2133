package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"classtable/backend/config"
	"classtable/backend/internal/dto"
	"classtable/backend/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-tests",
			AccessTokenTTL:          24 * time.Hour,
			RefreshTokenTTLDefault:  7 * 24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *mockUserRepo) {
	repo, userRepo, _ := newTestRepository()
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo
}

func registerTestUser(t *testing.T, svc AuthService) *dto.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "zhangsan",
		Name:     "张三",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	return resp
}

// ════════════════════════════════════════════════════════════
// Register 测试
// ════════════════════════════════════════════════════════════

func TestAuthService_Register_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()

	resp := registerTestUser(t, svc)
	if resp.ID == "" {
		t.Error("期望返回用户ID")
	}
	if resp.Username != "zhangsan" || resp.Name != "张三" {
		t.Errorf("注册信息不一致: %+v", resp)
	}

	// 密码不得明文落库
	stored, err := userRepo.GetByUsername(context.Background(), "zhangsan")
	if err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Error("密码不应明文存储")
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "zhangsan",
		Name:     "李四",
		Password: "another456",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
	if len(userRepo.users) != 1 {
		t.Errorf("重名注册不应写入，期望1个用户，实际=%d", len(userRepo.users))
	}
}

// ════════════════════════════════════════════════════════════
// Login 测试
// ════════════════════════════════════════════════════════════

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService()
	registered := registerTestUser(t, svc)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("期望返回 Token 对")
	}
	if resp.ExpiresIn != int((24 * time.Hour).Seconds()) {
		t.Errorf("期望 ExpiresIn=86400，实际=%d", resp.ExpiresIn)
	}
	if resp.User.ID != registered.ID || resp.User.Username != "zhangsan" {
		t.Errorf("用户信息不一致: %+v", resp.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := setupTestAuthService()

	// 不存在的用户与密码错误返回同一错误，不泄露用户名是否已注册
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// ChangePassword 测试
// ════════════════════════════════════════════════════════════

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, _ := setupTestAuthService()
	registered := registerTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), registered.ID, &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newsecret456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 旧密码失效，新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "secret123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "newsecret456",
	}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, _ := setupTestAuthService()
	registered := registerTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), registered.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "newsecret456",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}

	// 密码未被覆写
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "secret123",
	}); err != nil {
		t.Errorf("原密码应仍然有效: %v", err)
	}
}

func TestAuthService_ChangePassword_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	err := svc.ChangePassword(context.Background(), "no-such-user", &dto.ChangePasswordRequest{
		OldPassword: "a", NewPassword: "bbbbbb",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// GetCurrentUser / Logout 测试
// ════════════════════════════════════════════════════════════

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, _ := setupTestAuthService()
	registered := registerTestUser(t, svc)

	user, err := svc.GetCurrentUser(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if user.Username != "zhangsan" || user.Name != "张三" {
		t.Errorf("用户信息不一致: %+v", user)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "no-such-user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Redis 不可用时注销降级为空操作
	if err := svc.Logout(context.Background(), "any-token"); err != nil {
		t.Errorf("无 Redis 时 Logout 应为空操作: %v", err)
	}
}
