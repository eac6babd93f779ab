package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

// capturingEmailSender, gönderilen reset token'larını test için saklar.
type capturingEmailSender struct {
	tokens []string
}

func (s *capturingEmailSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	s.tokens = append(s.tokens, token)
	return nil
}

type authFixture struct {
	svc      AuthService
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	resets   *fakeResetRepo
	email    *capturingEmailSender
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		resets:   newFakeResetRepo(),
		email:    &capturingEmailSender{},
	}
	f.svc = NewAuthService(f.users, f.sessions, f.resets, f.email, "test-secret", 15, 7)
	return f
}

// seedUser, bcrypt MinCost ile hash'lenmiş şifreyle kullanıcı ekler —
// testlerde cost=12 beklemeye gerek yok.
func (f *authFixture) seedUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return f.users.add(&models.User{
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		AvatarURL:    "/api/uploads/images/avatar.png",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	})
}

func TestRegisterIssuesValidTokenPair(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &models.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		FullName: "New User",
		Password: "supersecret",
	}, "/api/uploads/images/a.png", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "newuser", resp.User.Username)

	claims, err := f.svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "newuser", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)

	// Refresh token DB'de plaintext DEĞİL hash olarak durur
	_, err = f.sessions.GetByTokenHash(ctx, resp.RefreshToken)
	assert.Error(t, err)
	_, err = f.sessions.GetByTokenHash(ctx, hashToken(resp.RefreshToken))
	assert.NoError(t, err)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), &models.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		FullName: "New User",
		Password: "supersecret",
	}, "", nil)
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	// Yanlış şifre ve var olmayan kullanıcı ayırt edilemez olmalı
	_, wrongPass := f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong-password"}, "", "")
	_, noUser := f.svc.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "wrong-password"}, "", "")

	require.Error(t, wrongPass)
	require.Error(t, noUser)
	assert.True(t, errors.Is(wrongPass, pkg.ErrUnauthorized))
	assert.True(t, errors.Is(noUser, pkg.ErrUnauthorized))
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestLoginByEmailRecordsClientMeta(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "correcthorse"}, "TestAgent/1.0", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	session, err := f.sessions.GetByTokenHash(ctx, hashToken(resp.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, "TestAgent/1.0", session.UserAgent)
	assert.Equal(t, "10.0.0.1", session.IPAddress)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	first, err := f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	require.NoError(t, err)

	second, err := f.svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Rotation: eski refresh token artık geçersiz — ikinci kullanım 401
	_, err = f.svc.RefreshToken(ctx, first.RefreshToken)
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))

	// Yenisi çalışmaya devam eder
	_, err = f.svc.RefreshToken(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.RefreshToken))
	// İkinci logout da sessizce başarılı
	require.NoError(t, f.svc.Logout(ctx, resp.RefreshToken))

	_, err = f.svc.RefreshToken(ctx, resp.RefreshToken)
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
}

func TestChangePasswordPurgesSessions(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{
		OldPassword: "correcthorse",
		NewPassword: "batterystaple",
	})
	require.NoError(t, err)

	// Tüm oturumlar düşmüş olmalı
	_, err = f.svc.RefreshToken(ctx, resp.RefreshToken)
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))

	// Eski şifre artık çalışmaz, yenisi çalışır
	_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
	_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "batterystaple"}, "", "")
	assert.NoError(t, err)
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	err := f.svc.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		OldPassword: "not-my-password",
		NewPassword: "batterystaple",
	})
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	require.NoError(t, f.svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{Email: "alice@example.com"}))
	require.Len(t, f.email.tokens, 1)
	token := f.email.tokens[0]

	err := f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "batterystaple",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "batterystaple"}, "", "")
	assert.NoError(t, err)

	// Token tek kullanımlık — ikinci deneme 401
	err = f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "thirdpassword",
	})
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	// Hesap yoksa da hata dönmez, email gitmez — user enumeration engeli
	err := f.svc.ForgotPassword(context.Background(), &models.ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, f.email.tokens)
}

func TestNewForgotRequestInvalidatesPendingToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	require.NoError(t, f.svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{Email: "alice@example.com"}))
	require.NoError(t, f.svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{Email: "alice@example.com"}))
	require.Len(t, f.email.tokens, 2)

	// İlk token iptal edilmiş, sadece ikincisi çalışır
	err := f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: f.email.tokens[0], NewPassword: "batterystaple"})
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
	err = f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: f.email.tokens[1], NewPassword: "batterystaple"})
	assert.NoError(t, err)
}

func TestValidateAccessTokenRejectsTampered(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser(t, "alice", "alice@example.com", "correcthorse")

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	require.NoError(t, err)

	_, err = f.svc.ValidateAccessToken(resp.AccessToken + "x")
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))

	// Başka secret ile imzalanmış token da reddedilir
	other := NewAuthService(f.users, f.sessions, f.resets, f.email, "other-secret", 15, 7)
	otherResp, err := other.Login(ctx, &models.LoginRequest{Username: "alice", Password: "correcthorse"}, "", "")
	require.NoError(t, err)
	_, err = f.svc.ValidateAccessToken(otherResp.AccessToken)
	assert.True(t, errors.Is(err, pkg.ErrUnauthorized))
}
