// transport/grpc содержит реализацию gRPC-эндпоинтов IdentityService.
// Здесь выполняется только маппинг данных и ошибок доменного слоя (service) в gRPC.
// Вся валидация и бизнес-логика находятся в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Ошибки сервиса явно транслируются в коды gRPC:
//   - ErrInvalidEmail/ErrPasswordMismatch/ErrWeakPassword/ErrEmptyPassword/
//     ErrInvalidLinkBase/ErrEmptyRefreshToken/ErrEmailNotConfirmed/
//     ErrInvalidConfirmation -> codes.InvalidArgument;
//   - ErrEmailTaken -> codes.AlreadyExists;
//   - ErrUserNotFound -> codes.NotFound;
//   - ErrInvalidCredentials -> codes.Unauthenticated;
//   - ErrInvalidToken/ErrTokenExpired/ErrTokenRevoked -> codes.Unauthenticated;
//   - иные ошибки -> codes.Internal c единым безопасным сообщением;
//   - ValidateToken при невалидном/просроченном токене НЕ возвращает RPC-ошибку, а
//     отдаёт {Valid:false} (контракт эндпоинта).
//
// Безопасность:
//   - Для codes.Internal наружу не утекают детали внутренних ошибок; подробности
//     попадают в логи через интерсепторы на уровне сервера.
package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identityv1 "github.com/mvoronova/identity-service/gen/go/identity"
	"github.com/mvoronova/identity-service/internal/directory"
	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/service"
)

type IdentityServer struct {
	identityv1.UnimplementedIdentityServiceServer
	service *service.Service
}

// NewIdentityServer создаёт gRPC-сервер аутентификации поверх сервисного слоя.
func NewIdentityServer(service *service.Service) *IdentityServer {
	return &IdentityServer{service: service}
}

// Register создаёт неподтверждённую учётку и возвращает её идентификатор.
// Пара токенов не выдаётся: вход возможен только после подтверждения email.
func (s *IdentityServer) Register(ctx context.Context, req *identityv1.RegisterRequest) (*identityv1.RegisterResponse, error) {
	const op = "transport/grpc/server/Register"

	uid, err := s.service.Register(ctx, req.GetEmail(), req.GetPassword(), req.GetConfirmPassword(), req.GetConfirmBaseUrl())
	if err != nil {
		if isValidationErr(err) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrEmailTaken) {
			return nil, status.Errorf(codes.AlreadyExists, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.RegisterResponse{UserId: uid.String()}, nil
}

// ConfirmEmail гасит токен подтверждения и возвращает redirect-ссылку
// с access-токеном (неявный вход).
func (s *IdentityServer) ConfirmEmail(ctx context.Context, req *identityv1.ConfirmEmailRequest) (*identityv1.ConfirmEmailResponse, error) {
	const op = "transport/grpc/server/ConfirmEmail"

	redirect, err := s.service.ConfirmEmail(ctx, req.GetEmail(), req.GetToken())
	if err != nil {
		if isValidationErr(err) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrUserNotFound) {
			return nil, status.Errorf(codes.NotFound, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.ConfirmEmailResponse{RedirectUrl: redirect}, nil
}

// Login аутентифицирует пользователя и возвращает новую пару токенов.
func (s *IdentityServer) Login(ctx context.Context, req *identityv1.LoginRequest) (*identityv1.AuthResponse, error) {
	const op = "transport/grpc/server/Login"

	tokenPair, uid, err := s.service.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		if isValidationErr(err) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return authResponse(uid, tokenPair), nil
}

// ForgotPassword выпускает одноразовый токен сброса пароля.
// В отличие от Login, отсутствие учётки здесь различимо: NotFound.
func (s *IdentityServer) ForgotPassword(ctx context.Context, req *identityv1.ForgotPasswordRequest) (*identityv1.ForgotPasswordResponse, error) {
	const op = "transport/grpc/server/ForgotPassword"

	token, err := s.service.ForgotPassword(ctx, req.GetEmail())
	if err != nil {
		if isValidationErr(err) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrUserNotFound) {
			return nil, status.Errorf(codes.NotFound, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.ForgotPasswordResponse{ResetToken: token}, nil
}

// ResetPassword устанавливает новый пароль по токену сброса.
func (s *IdentityServer) ResetPassword(ctx context.Context, req *identityv1.ResetPasswordRequest) (*identityv1.ResetPasswordResponse, error) {
	const op = "transport/grpc/server/ResetPassword"

	err := s.service.ResetPassword(ctx, req.GetEmail(), req.GetToken(), req.GetNewPassword(), req.GetConfirmPassword())
	if err != nil {
		if isValidationErr(err) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrUserNotFound) {
			return nil, status.Errorf(codes.NotFound, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.ResetPasswordResponse{Ok: true}, nil
}

// RefreshSession обменивает refresh-токен на новую пару с ленивой ротацией.
func (s *IdentityServer) RefreshSession(ctx context.Context, req *identityv1.RefreshSessionRequest) (*identityv1.AuthResponse, error) {
	const op = "transport/grpc/server/RefreshSession"

	uid, err := uuid.Parse(req.GetUserId())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: invalid user_id", op)
	}

	tokenPair, err := s.service.RefreshSession(ctx, uid, req.GetRefreshToken())
	if err != nil {
		if errors.Is(err, service.ErrEmptyRefreshToken) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrInvalidToken) ||
			errors.Is(err, service.ErrTokenExpired) ||
			errors.Is(err, service.ErrTokenRevoked) {
			return nil, status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return authResponse(uid, tokenPair), nil
}

// StartSession выдаёт свежую пару токенов аутентифицированному пользователю.
func (s *IdentityServer) StartSession(ctx context.Context, req *identityv1.StartSessionRequest) (*identityv1.AuthResponse, error) {
	const op = "transport/grpc/server/StartSession"

	uid, err := uuid.Parse(req.GetUserId())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: invalid user_id", op)
	}

	tokenPair, err := s.service.StartSession(ctx, uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, status.Errorf(codes.NotFound, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return authResponse(uid, tokenPair), nil
}

// ExternalLogin сопоставляет внешнего принципала с локальной учёткой.
// Refresh-токен не выдаётся: сессию открывает последующий StartSession.
func (s *IdentityServer) ExternalLogin(ctx context.Context, req *identityv1.ExternalLoginRequest) (*identityv1.ExternalLoginResponse, error) {
	const op = "transport/grpc/server/ExternalLogin"

	principal := &models.ExternalPrincipal{
		Key:       req.GetProviderKey(),
		Email:     req.GetEmail(),
		Username:  req.GetUsername(),
		FirstName: req.GetFirstName(),
		LastName:  req.GetLastName(),
	}

	accessToken, redirectURL, uid, err := s.service.ExternalLoginMerge(ctx, req.GetProvider(), principal)
	if err != nil {
		if isValidationErr(err) || errors.Is(err, service.ErrNoEmailClaim) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrExternalAuthFailed) {
			return nil, status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.ExternalLoginResponse{
		UserId:      uid.String(),
		AccessToken: accessToken,
		RedirectUrl: redirectURL,
	}, nil
}

// RevokeToken отзывает refresh-токен (logout).
func (s *IdentityServer) RevokeToken(ctx context.Context, req *identityv1.RevokeTokenRequest) (*identityv1.RevokeTokenResponse, error) {
	const op = "transport/grpc/server/RevokeToken"

	err := s.service.RevokeToken(ctx, req.GetRefreshToken())
	if err != nil {
		if errors.Is(err, service.ErrEmptyRefreshToken) {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}

		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
			return nil, status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.RevokeTokenResponse{Ok: true}, nil
}

// ValidateToken проверяет access-токен. Невалидный токен — не RPC-ошибка,
// а {Valid:false}: контракт эндпоинта для шлюзов и прокси.
func (s *IdentityServer) ValidateToken(ctx context.Context, req *identityv1.ValidateTokenRequest) (*identityv1.ValidateTokenResponse, error) {
	uid, email, err := s.service.ValidateToken(ctx, req.GetAccessToken())
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
			return &identityv1.ValidateTokenResponse{Valid: false}, nil
		}

		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &identityv1.ValidateTokenResponse{
		Valid:  true,
		UserId: uid.String(),
		Email:  email,
	}, nil
}

// isValidationErr объединяет ошибки входных данных и состояния учётки,
// которые транслируются в codes.InvalidArgument. Сюда же относятся
// неподтверждённый email и непринятый одноразовый токен: это не отказ
// в аутентификации, а причина, которую клиент может устранить.
func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrPasswordMismatch) ||
		errors.Is(err, service.ErrInvalidLinkBase) ||
		errors.Is(err, service.ErrEmailNotConfirmed) ||
		errors.Is(err, service.ErrInvalidConfirmation) ||
		errors.Is(err, directory.ErrInvalidActionToken) ||
		errors.Is(err, directory.ErrWeakPassword) ||
		errors.Is(err, directory.ErrEmptyPassword)
}

func authResponse(uid uuid.UUID, pair *models.TokenPair) *identityv1.AuthResponse {
	return &identityv1.AuthResponse{
		UserId:          uid.String(),
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt.Unix(),
	}
}
