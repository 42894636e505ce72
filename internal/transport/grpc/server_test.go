package grpc

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	identityv1 "github.com/mvoronova/identity-service/gen/go/identity"
	"github.com/mvoronova/identity-service/internal/config"
	"github.com/mvoronova/identity-service/internal/directory"
	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/service"
	"github.com/mvoronova/identity-service/internal/storage"
	"github.com/mvoronova/identity-service/mocks"
)

// Файл unit-тестов транспортного слоя (gRPC) для IdentityService.
// Все тесты изолированы: для каждого создаётся отдельный bufconn-сервер.

// testCfg — минимальная конфигурация сервиса для тестов транспорта.
func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		Issuer:          "identity-service",
		Audience:        []string{"api-gateway"},
		AccessTokenTTL:  2 * time.Second,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		RotateWithin:    24 * time.Hour,
		ConfirmTokenTTL: time.Hour,
		ResetTokenTTL:   time.Hour,
	}
}

func testLinks() config.LinksConfig {
	return config.LinksConfig{
		ConfirmRedirectURL:       "http://localhost:3000/confirmed",
		ResetPasswordURL:         "http://localhost:3000/reset-password",
		ExternalLoginRedirectURL: "http://localhost:3000/external",
	}
}

type svcMocks struct {
	dir  *mocks.MockDirectory
	st   *mocks.MockStorage
	sink *mocks.MockSink
}

// newSvcWithMocks — фабрика сервисного слоя с gomock-зависимостями.
func newSvcWithMocks(t *testing.T) (*service.Service, svcMocks, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := svcMocks{
		dir:  mocks.NewMockDirectory(ctrl),
		st:   mocks.NewMockStorage(ctrl),
		sink: mocks.NewMockSink(ctrl),
	}

	return service.New(m.dir, m.st, m.sink, testCfg(), testLinks()), m, ctrl
}

// startGRPC — поднимает bufconn-gRPC-сервер с переданным сервисом
// и возвращает клиент и функцию очистки.
func startGRPC(t *testing.T, svc *service.Service) (identityv1.IdentityServiceClient, func()) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	identityv1.RegisterIdentityServiceServer(s, NewIdentityServer(svc))

	go func() { _ = s.Serve(lis) }()

	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }

	cc, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	cleanup := func() { _ = cc.Close(); s.Stop() }
	return identityv1.NewIdentityServiceClient(cc), cleanup
}

// rtHash — SHA-256 -> base64.RawURLEncoding для plain-refresh токена.
func rtHash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func confirmedUser(email string) *models.User {
	return &models.User{
		ID:             uuid.New(),
		Email:          email,
		EmailConfirmed: true,
		Username:       email,
	}
}

// TestRegister_OK — happy-path регистрации: учётка создаётся неподтверждённой,
// токены не выдаются, возвращается только идентификатор.
func TestRegister_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	m.dir.EXPECT().CreateUser(gomock.Any(), gomock.Any(), "Abcdef1!").Return(nil)
	m.dir.EXPECT().GenerateEmailConfirmationToken(gomock.Any(), gomock.Any()).Return("confirm-tok", nil)
	m.sink.EXPECT().SendConfirmationLink(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	resp, err := client.Register(context.Background(), &identityv1.RegisterRequest{
		Email:           "user@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		ConfirmBaseUrl:  "http://localhost:3000/confirm",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(resp.GetUserId())
	require.NoError(t, parseErr)
}

// TestRegister_SinkFailure_StillOK — сбой доставки письма не проваливает регистрацию.
func TestRegister_SinkFailure_StillOK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	m.dir.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.dir.EXPECT().GenerateEmailConfirmationToken(gomock.Any(), gomock.Any()).Return("confirm-tok", nil)
	m.sink.EXPECT().SendConfirmationLink(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(status.Error(codes.Unavailable, "smtp down"))

	resp, err := client.Register(context.Background(), &identityv1.RegisterRequest{
		Email:           "user@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		ConfirmBaseUrl:  "http://localhost:3000/confirm",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GetUserId())
}

func TestRegister_PasswordMismatch_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	_, err := client.Register(context.Background(), &identityv1.RegisterRequest{
		Email:           "user@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "different",
		ConfirmBaseUrl:  "http://localhost:3000/confirm",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRegister_EmailTaken_AlreadyExists(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.dir.EXPECT().UserByEmail(gomock.Any(), "taken@example.com").
		Return(confirmedUser("taken@example.com"), nil)

	_, err := client.Register(context.Background(), &identityv1.RegisterRequest{
		Email:           "taken@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		ConfirmBaseUrl:  "http://localhost:3000/confirm",
	})
	require.Equal(t, codes.AlreadyExists, status.Code(err))
}

// TestConfirmEmail_OK — подтверждение гасит токен и возвращает redirect
// с access-токеном в query (неявный вход).
func TestConfirmEmail_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	user.EmailConfirmed = false

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().ConfirmEmail(gomock.Any(), user, "confirm-tok").Return(nil)

	resp, err := client.ConfirmEmail(context.Background(), &identityv1.ConfirmEmailRequest{
		Email: "user@example.com",
		Token: "confirm-tok",
	})
	require.NoError(t, err)

	redirect, err := url.Parse(resp.GetRedirectUrl())
	require.NoError(t, err)
	require.Equal(t, "/confirmed", redirect.Path)
	require.NotEmpty(t, redirect.Query().Get("token"))
}

// TestConfirmEmail_BadToken_InvalidArgument — непринятый одноразовый токен
// подтверждения даёт InvalidArgument, а не отказ в аутентификации.
func TestConfirmEmail_BadToken_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	user.EmailConfirmed = false

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().ConfirmEmail(gomock.Any(), user, "bad").Return(directory.ErrInvalidActionToken)

	_, err := client.ConfirmEmail(context.Background(), &identityv1.ConfirmEmailRequest{
		Email: "user@example.com",
		Token: "bad",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestLogin_OK — вход по верным данным возвращает пару токенов.
func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().VerifyPassword(user, "Abcdef1!").Return(true)
	m.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := client.Login(context.Background(), &identityv1.LoginRequest{
		Email: "user@example.com", Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), resp.GetUserId())
	require.NotEmpty(t, resp.GetAccessToken())
	require.NotEmpty(t, resp.GetRefreshToken())
	require.Greater(t, resp.GetAccessExpiresAt(), time.Now().Unix()-1)
}

// TestLogin_WrongPassword_And_UnknownEmail_SameCode — неверный пароль и
// неизвестный email неразличимы для клиента.
func TestLogin_WrongPassword_And_UnknownEmail_SameCode(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().VerifyPassword(user, "wrong").Return(false)

	_, errWrongPW := client.Login(context.Background(), &identityv1.LoginRequest{
		Email: "user@example.com", Password: "wrong",
	})

	m.dir.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	_, errUnknown := client.Login(context.Background(), &identityv1.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})

	require.Equal(t, codes.Unauthenticated, status.Code(errWrongPW))
	require.Equal(t, codes.Unauthenticated, status.Code(errUnknown))
	require.Equal(t, status.Convert(errWrongPW).Code(), status.Convert(errUnknown).Code())
}

// TestLogin_UnconfirmedEmail_InvalidArgument — вход до подтверждения email
// отклоняется даже при верном пароле; код устранимый, InvalidArgument.
func TestLogin_UnconfirmedEmail_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	user.EmailConfirmed = false

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().VerifyPassword(user, "Abcdef1!").Return(true)

	_, err := client.Login(context.Background(), &identityv1.LoginRequest{
		Email: "user@example.com", Password: "Abcdef1!",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestForgotPassword_OK — токен сброса возвращается вызывающему в открытом виде.
func TestForgotPassword_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().GeneratePasswordResetToken(gomock.Any(), user).Return("reset-plain", nil)
	m.sink.EXPECT().SendPasswordResetLink(gomock.Any(), user, gomock.Any()).Return(nil)

	resp, err := client.ForgotPassword(context.Background(), &identityv1.ForgotPasswordRequest{
		Email: "user@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "reset-plain", resp.GetResetToken())
}

// TestForgotPassword_UnknownEmail_NotFound — в отличие от Login, отсутствие
// учётки здесь различимо.
func TestForgotPassword_UnknownEmail_NotFound(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.dir.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	_, err := client.ForgotPassword(context.Background(), &identityv1.ForgotPasswordRequest{
		Email: "ghost@example.com",
	})
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestForgotPassword_UnconfirmedEmail_InvalidArgument — сброс пароля для
// неподтверждённой учётки отклоняется кодом InvalidArgument, не Internal.
func TestForgotPassword_UnconfirmedEmail_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	user.EmailConfirmed = false

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)

	_, err := client.ForgotPassword(context.Background(), &identityv1.ForgotPasswordRequest{
		Email: "user@example.com",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestResetPassword_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().ResetPassword(gomock.Any(), user, "reset-tok", "NewPass1!").Return(nil)

	resp, err := client.ResetPassword(context.Background(), &identityv1.ResetPasswordRequest{
		Email:           "user@example.com",
		Token:           "reset-tok",
		NewPassword:     "NewPass1!",
		ConfirmPassword: "NewPass1!",
	})
	require.NoError(t, err)
	require.True(t, resp.GetOk())
}

func TestResetPassword_BadToken_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().ResetPassword(gomock.Any(), user, "bad", "NewPass1!").
		Return(directory.ErrInvalidActionToken)

	_, err := client.ResetPassword(context.Background(), &identityv1.ResetPasswordRequest{
		Email:           "user@example.com",
		Token:           "bad",
		NewPassword:     "NewPass1!",
		ConfirmPassword: "NewPass1!",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestRefreshSession_NoRotation — до порога ротации возвращается
// предъявленный refresh-токен.
func TestRefreshSession_NoRotation(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	const plain = "plain-refresh"

	m.st.EXPECT().ValidRefreshToken(gomock.Any(), user.ID, rtHash(plain), gomock.Any()).
		Return(&models.RefreshToken{
			RefreshTokenHash: rtHash(plain),
			UserID:           user.ID,
			ExpiresAt:        time.Now().UTC().Add(72 * time.Hour),
		}, nil)
	m.dir.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	resp, err := client.RefreshSession(context.Background(), &identityv1.RefreshSessionRequest{
		UserId:       user.ID.String(),
		RefreshToken: plain,
	})
	require.NoError(t, err)
	require.Equal(t, plain, resp.GetRefreshToken())
	require.NotEmpty(t, resp.GetAccessToken())
}

// TestRefreshSession_Rotation — ближе порога выпускается новый refresh-токен,
// старый отзывается условным UPDATE.
func TestRefreshSession_Rotation(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	const plain = "plain-refresh"

	m.st.EXPECT().ValidRefreshToken(gomock.Any(), user.ID, rtHash(plain), gomock.Any()).
		Return(&models.RefreshToken{
			RefreshTokenHash: rtHash(plain),
			UserID:           user.ID,
			ExpiresAt:        time.Now().UTC().Add(time.Hour),
		}, nil)
	m.dir.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	m.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
	m.st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), rtHash(plain)).Return(true, nil)

	resp, err := client.RefreshSession(context.Background(), &identityv1.RefreshSessionRequest{
		UserId:       user.ID.String(),
		RefreshToken: plain,
	})
	require.NoError(t, err)
	require.NotEqual(t, plain, resp.GetRefreshToken())
	require.NotEmpty(t, resp.GetRefreshToken())
}

// TestRefreshSession_LostRace_Unauthenticated — проигравший гонку ротации
// получает Unauthenticated.
func TestRefreshSession_LostRace_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")
	const plain = "plain-refresh"

	m.st.EXPECT().ValidRefreshToken(gomock.Any(), user.ID, rtHash(plain), gomock.Any()).
		Return(&models.RefreshToken{
			RefreshTokenHash: rtHash(plain),
			UserID:           user.ID,
			ExpiresAt:        time.Now().UTC().Add(time.Hour),
		}, nil)
	m.dir.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	m.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
	m.st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), rtHash(plain)).Return(false, nil)

	_, err := client.RefreshSession(context.Background(), &identityv1.RefreshSessionRequest{
		UserId:       user.ID.String(),
		RefreshToken: plain,
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRefreshSession_UnknownToken_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	uid := uuid.New()

	m.st.EXPECT().ValidRefreshToken(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)

	_, err := client.RefreshSession(context.Background(), &identityv1.RefreshSessionRequest{
		UserId:       uid.String(),
		RefreshToken: "unknown",
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestStartSession_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	m.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := client.StartSession(context.Background(), &identityv1.StartSessionRequest{
		UserId: user.ID.String(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GetAccessToken())
	require.NotEmpty(t, resp.GetRefreshToken())
}

// TestExternalLogin_NewUser — внешний принципал без локальной учётки получает
// новую подтверждённую запись; refresh-токен не выдаётся.
func TestExternalLogin_NewUser(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.dir.EXPECT().UserByEmail(gomock.Any(), "ext@example.com").Return(nil, storage.ErrNotFound)
	m.dir.EXPECT().CreateUser(gomock.Any(), gomock.Any(), "").Return(nil)
	m.dir.EXPECT().ExternalLogins(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.dir.EXPECT().AddExternalLogin(gomock.Any(), gomock.Any(), "google", "sub-123").Return(nil)

	resp, err := client.ExternalLogin(context.Background(), &identityv1.ExternalLoginRequest{
		Provider:    "google",
		ProviderKey: "sub-123",
		Email:       "ext@example.com",
		Username:    "ext",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GetUserId())
	require.NotEmpty(t, resp.GetAccessToken())

	ru, err := url.Parse(resp.GetRedirectUrl())
	require.NoError(t, err)
	require.Equal(t, "/external", ru.Path)
	require.Equal(t, resp.GetAccessToken(), ru.Query().Get("token"))
}

func TestExternalLogin_NoEmailClaim_InvalidArgument(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	_, err := client.ExternalLogin(context.Background(), &identityv1.ExternalLoginRequest{
		Provider:    "google",
		ProviderKey: "sub-123",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRevokeToken_OK(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	const plain = "plain-refresh"

	m.st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), rtHash(plain)).Return(true, nil)

	resp, err := client.RevokeToken(context.Background(), &identityv1.RevokeTokenRequest{
		RefreshToken: plain,
	})
	require.NoError(t, err)
	require.True(t, resp.GetOk())
}

func TestRevokeToken_AlreadyRevoked_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	m.st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := client.RevokeToken(context.Background(), &identityv1.RevokeTokenRequest{
		RefreshToken: "plain-refresh",
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

// TestValidateToken_RoundTrip — access-токен, выданный Login, проходит проверку.
func TestValidateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, m, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	user := confirmedUser("user@example.com")

	m.dir.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	m.dir.EXPECT().VerifyPassword(user, "Abcdef1!").Return(true)
	m.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	login, err := client.Login(context.Background(), &identityv1.LoginRequest{
		Email: "user@example.com", Password: "Abcdef1!",
	})
	require.NoError(t, err)

	resp, err := client.ValidateToken(context.Background(), &identityv1.ValidateTokenRequest{
		AccessToken: login.GetAccessToken(),
	})
	require.NoError(t, err)
	require.True(t, resp.GetValid())
	require.Equal(t, user.ID.String(), resp.GetUserId())
	require.Equal(t, user.Email, resp.GetEmail())
}

// TestValidateToken_Garbage_NotAnRPCError — мусорный токен это {Valid:false},
// а не ошибка RPC.
func TestValidateToken_Garbage_NotAnRPCError(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvcWithMocks(t)
	defer ctrl.Finish()
	client, done := startGRPC(t, svc)
	defer done()

	resp, err := client.ValidateToken(context.Background(), &identityv1.ValidateTokenRequest{
		AccessToken: "not-a-jwt",
	})
	require.NoError(t, err)
	require.False(t, resp.GetValid())
}
