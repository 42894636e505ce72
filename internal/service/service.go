// service содержит бизнес-логику identity-сервиса: аутентификацию,
// регистрацию с отложенным подтверждением email, восстановление пароля,
// выпуск и ротацию токенов, объединение внешних учёток с локальными.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные зависимости (Directory, RefreshTokenStorage) потокобезопасны.
//   - Ошибки возвращаются сентинелами и далее маппятся транспортом на gRPC-коды
//     (см. комментарии к переменным ошибок ниже).
//   - Валидность refresh-токена перепроверяется в БД при каждом использовании;
//     Redis-кэш (опциональный) даёт только быстрый отказ по отозванным токенам.
package service

import (
	"errors"

	"github.com/mvoronova/identity-service/internal/cache"
	"github.com/mvoronova/identity-service/internal/config"
	"github.com/mvoronova/identity-service/internal/directory"
	"github.com/mvoronova/identity-service/internal/notify"
	"github.com/mvoronova/identity-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Форма ошибки намеренно одинакова в обоих случаях, чтобы не раскрывать
	// существование учётной записи. Транспорт: codes.Unauthenticated (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed — email учётной записи ещё не подтверждён.
	// Отличается от ErrInvalidCredentials: после совпадения пароля состояние
	// подтверждения не считается чувствительным. Транспорт: codes.InvalidArgument.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи,
	// отсутствует в хранилище или просрочен/отозван на момент предъявления.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — токен отозван (logout/rotation/compromise) и недействителен
	// независимо от срока. Транспорт: codes.Unauthenticated (HTTP 401).
	ErrTokenRevoked = errors.New("token revoked")

	// ErrEmptyRefreshToken — пустая строка вместо refresh-токена.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrEmptyRefreshToken = errors.New("refresh token is empty")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт: codes.AlreadyExists (HTTP 409).
	ErrEmailTaken = errors.New("email already taken")

	// ErrUserNotFound — пользователь не найден по id/email там, где его
	// существование не скрывается. Транспорт: codes.NotFound (HTTP 404).
	ErrUserNotFound = errors.New("user not found")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный refresh-токен.
	// Транспорт: codes.Internal (HTTP 500).
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrPasswordMismatch — password и confirmPassword не совпадают.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidLinkBase — базовый URL для ссылки подтверждения не разбирается.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrInvalidLinkBase = errors.New("invalid link base url")

	// ErrInvalidConfirmation — токен подтверждения/сброса не принят directory.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrInvalidConfirmation = errors.New("invalid confirmation token")

	// ErrExternalAuthFailed — внешний провайдер не подтвердил пользователя
	// (нет principal или стабильного ключа). Транспорт: codes.Unauthenticated.
	ErrExternalAuthFailed = errors.New("external authentication failed")

	// ErrNoEmailClaim — внешний провайдер не передал email-claim.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrNoEmailClaim = errors.New("external principal has no email claim")
)

// Service описывает бизнес-логику identity-сервиса.
type Service struct {
	directory directory.Directory
	tokens    storage.RefreshTokenStorage
	notifier  notify.Sink
	cfg       config.AuthConfig
	links     config.LinksConfig
	rcache    cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(dir directory.Directory, tokens storage.RefreshTokenStorage, notifier notify.Sink, cfg config.AuthConfig, links config.LinksConfig) *Service {
	return &Service{
		directory: dir,
		tokens:    tokens,
		notifier:  notifier,
		cfg:       cfg,
		links:     links,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
