package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mvoronova/identity-service/internal/directory"
	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/pkg/log"
	"github.com/mvoronova/identity-service/internal/pkg/redact"
	"github.com/mvoronova/identity-service/internal/storage"
)

// Login выполняет вход по email+пароль.
// Неизвестный email и неверный пароль дают одну и ту же ошибку
// ErrInvalidCredentials; неподтверждённый email — отдельную
// ErrEmailNotConfirmed (после совпадения пароля это уже не утечка).
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.Login"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.directory.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.directory.VerifyPassword(user, password) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.EmailConfirmed {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailNotConfirmed)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// Register регистрирует нового пользователя с отложенным подтверждением email.
// Пользователь создаётся с email_confirmed=false; ссылка подтверждения
// строится из confirmBaseURL с query-параметрами email и token и уходит
// через NotificationSink. Сбой доставки не считается сбоем регистрации.
func (s *Service) Register(ctx context.Context, email, password, confirmPassword, confirmBaseURL string) (uuid.UUID, error) {
	const op = "service.auth.Register"

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if password != confirmPassword {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	if _, err := url.ParseRequestURI(confirmBaseURL); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidLinkBase)
	}

	_, err = s.directory.UserByEmail(ctx, normEmail)
	if err == nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             uuid.New(),
		Email:          normEmail,
		EmailConfirmed: false,
		Username:       normEmail,
		Roles:          []string{"user"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.directory.CreateUser(ctx, user, password); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.directory.GenerateEmailConfirmationToken(ctx, user)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	link, err := buildLink(confirmBaseURL, normEmail, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidLinkBase)
	}

	// Fire-and-forget: сбой доставки логируется и не влияет на результат.
	if err := s.notifier.SendConfirmationLink(ctx, user, link); err != nil {
		lg.Warn("confirmation_link_dispatch_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
			slog.String("err", err.Error()),
		)
	}

	return user.ID, nil
}

// ConfirmEmail подтверждает email по одноразовому токену. Успешное
// подтверждение одновременно является неявным входом: выпускается
// access-токен, и метод возвращает redirect-URL с ним в query-параметре.
func (s *Service) ConfirmEmail(ctx context.Context, email, token string) (string, error) {
	const op = "service.auth.ConfirmEmail"

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.directory.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.directory.ConfirmEmail(ctx, user, token); err != nil {
		if errors.Is(err, directory.ErrInvalidActionToken) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidConfirmation)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}
	user.EmailConfirmed = true

	accessToken, err := s.generateAccessToken(ctx, user, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	redirect, err := url.Parse(s.links.ConfirmRedirectURL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	q := redirect.Query()
	q.Set("token", accessToken)
	redirect.RawQuery = q.Encode()

	return redirect.String(), nil
}

// ForgotPassword выпускает одноразовый токен сброса пароля и отправляет
// ссылку восстановления. В отличие от Login существование учётной записи
// здесь раскрывается (ErrUserNotFound) — запрос ссылки сброса по определению
// различает известные адреса. Токен возвращается вызывающему в открытом виде —
// поведение исходной системы сохранено намеренно.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	const op = "service.auth.ForgotPassword"

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.directory.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !user.EmailConfirmed {
		return "", fmt.Errorf("%s: %w", op, ErrEmailNotConfirmed)
	}

	token, err := s.directory.GeneratePasswordResetToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	link, err := buildLink(s.links.ResetPasswordURL, normEmail, token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.notifier.SendPasswordResetLink(ctx, user, link); err != nil {
		lg.Warn("password_reset_link_dispatch_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
			slog.String("err", err.Error()),
		)
	}

	return token, nil
}

// ResetPassword устанавливает новый пароль по одноразовому токену сброса.
// Неявного входа нет; refresh-токены, выпущенные под старым паролем,
// этой операцией не отзываются.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword, confirmPassword string) error {
	const op = "service.auth.ResetPassword"

	normEmail, err := validateEmail(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if newPassword != confirmPassword {
		return fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	user, err := s.directory.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.directory.ResetPassword(ctx, user, token, newPassword); err != nil {
		if errors.Is(err, directory.ErrInvalidActionToken) {
			return fmt.Errorf("%s: %w", op, ErrInvalidConfirmation)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RefreshSession выпускает новый access-токен по действующему refresh-токену.
//
// Политика ротации: новый refresh-токен выпускается только если до истечения
// текущего осталось строго меньше cfg.RotateWithin; иначе возвращается
// предъявленный токен. Сессия продлевает свой refresh-токен лишь по мере
// приближения срока — один bearer не живёт бесконечно, но и не меняется
// на каждый вызов.
//
// Порядок ротации: сначала создаётся новый токен, затем старый отзывается
// условным UPDATE. Обрыв между шагами оставляет лишний действующий токен
// (его уберёт janitor по истечении срока), но не осиротевшую сессию.
// Проигравший гонку ротации получает ErrTokenRevoked.
func (s *Service) RefreshSession(ctx context.Context, userID uuid.UUID, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshSession"

	lg := log.From(ctx)

	if refreshToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyRefreshToken)
	}

	hash := hashRefresh(refreshToken)

	// Быстрый отказ по кэшу; положительного решения кэш не принимает.
	if s.revokedInCache(ctx, hash) {
		lg.Warn("refresh_rejected_by_cache", slog.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	now := time.Now().UTC()

	token, err := s.tokens.ValidRefreshToken(ctx, userID, hash, now)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_token_invalid",
				slog.String("op", op),
				slog.String("user_id", userID.String()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.directory.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := s.generateAccessToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair := &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}

	if token.ExpiresAt.Sub(now) >= s.cfg.RotateWithin {
		return pair, nil
	}

	// Ротация: создать новый, затем отозвать старый.
	plain, err := s.generateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	revoked, err := s.tokens.RevokeRefreshTokenIfActive(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !revoked {
		// Конкурентная ротация того же токена: выигрывает один.
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	s.markRevokedInCache(ctx, hash)

	pair.RefreshToken = plain
	return pair, nil
}

// StartSession выпускает начальную пару токенов для уже аутентифицированного
// принципала (после подтверждения email или входа через внешнего провайдера).
// Это создание токенов, а не продление: ротационная логика не применяется.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	const op = "service.auth.StartSession"

	user, err := s.directory.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// ExternalLoginMerge объединяет учётку внешнего провайдера с локальной.
//
// Неподтверждённая локальная регистрация не должна блокировать легитимную
// внешнюю заявку на тот же email: такая запись удаляется и поток идёт по
// пути "не найдено". Сбой удаления прерывает операцию — запись с внешним
// входом поверх чужой неподтверждённой не оставляется.
//
// Refresh-токен в этом потоке не выпускается (поведение исходной системы).
// Вторым значением возвращается redirect-URL (links.ExternalLoginRedirectURL
// с access-токеном в query) — адрес возврата пользователя после входа.
func (s *Service) ExternalLoginMerge(ctx context.Context, provider string, principal *models.ExternalPrincipal) (string, string, uuid.UUID, error) {
	const op = "service.auth.ExternalLoginMerge"

	lg := log.From(ctx)

	if provider == "" || principal == nil || principal.Key == "" {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, ErrExternalAuthFailed)
	}

	if principal.Email == "" {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, ErrNoEmailClaim)
	}

	normEmail, err := validateEmail(principal.Email)
	if err != nil {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, ErrNoEmailClaim)
	}

	user, err := s.directory.UserByEmail(ctx, normEmail)
	switch {
	case err == nil && !user.EmailConfirmed:
		// Устаревшая неподтверждённая регистрация уступает место внешней.
		if delErr := s.directory.DeleteUser(ctx, user.ID); delErr != nil {
			return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, delErr)
		}
		lg.Info("stale_unconfirmed_user_deleted",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		user = nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
	case err != nil:
		user = nil
	}

	if user == nil {
		now := time.Now().UTC()
		user = &models.User{
			ID:             uuid.New(),
			Email:          normEmail,
			EmailConfirmed: true, // email уже проверен провайдером
			Username:       normEmail,
			FirstName:      principal.FirstName,
			LastName:       principal.LastName,
			Roles:          []string{"user"},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if principal.Username != "" {
			user.Username = principal.Username
		}

		if err := s.directory.CreateUser(ctx, user, ""); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
			}

			return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	linked, err := s.hasExternalLogin(ctx, user.ID, provider, principal.Key)
	if err != nil {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !linked {
		if err := s.directory.AddExternalLogin(ctx, user.ID, provider, principal.Key); err != nil {
			// Конкурентная привязка той же пары (provider, key) — не ошибка.
			if !errors.Is(err, storage.ErrAlreadyExists) {
				return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	accessToken, err := s.generateAccessToken(ctx, user, time.Now().UTC())
	if err != nil {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	redirect, err := url.Parse(s.links.ExternalLoginRedirectURL)
	if err != nil {
		return "", "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	q := redirect.Query()
	q.Set("token", accessToken)
	redirect.RawQuery = q.Encode()

	return accessToken, redirect.String(), user.ID, nil
}

// RevokeToken отзывает refresh-токен (logout).
func (s *Service) RevokeToken(ctx context.Context, refreshToken string) error {
	const op = "service.auth.RevokeToken"

	if refreshToken == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyRefreshToken)
	}

	hash := hashRefresh(refreshToken)

	revoked, err := s.tokens.RevokeRefreshTokenIfActive(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if !revoked {
		return fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	s.markRevokedInCache(ctx, hash)

	return nil
}

// ValidateToken проверяет access-токен и возвращает данные пользователя.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, string, error) {
	const op = "service.auth.ValidateToken"

	uid, email, err := s.validateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return uid, email, nil
}

// hasExternalLogin проверяет, привязана ли уже пара (provider, key).
func (s *Service) hasExternalLogin(ctx context.Context, userID uuid.UUID, provider, key string) (bool, error) {
	logins, err := s.directory.ExternalLogins(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, l := range logins {
		if l.Provider == provider && l.ProviderKey == key {
			return true, nil
		}
	}

	return false, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// buildLink дописывает email и token в query-параметры базового URL.
func buildLink(base, email, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("email", email)
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
