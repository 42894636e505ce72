package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mvoronova/identity-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен/связь).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/refresh-token/external login).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ConfirmUserEmail выставляет email_confirmed=true.
	ConfirmUserEmail(ctx context.Context, id uuid.UUID) error
	// UpdatePasswordHash заменяет хэш пароля пользователя.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	// DeleteUser удаляет пользователя вместе с его токенами и внешними связями.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен в БД.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// ValidRefreshToken находит токен по владельцу и хэшу при условии,
	// что он сейчас действителен (!revoked && expires_at > now).
	// Принадлежность, совпадение и валидность проверяются одним запросом.
	ValidRefreshToken(ctx context.Context, userID uuid.UUID, hash string, now time.Time) (*models.RefreshToken, error)
	// ActiveRefreshTokenByHash находит неотозванный токен по хэшу,
	// когда владелец заранее неизвестен. Срок действия не проверяется:
	// просроченная запись возвращается как есть, решение за вызывающим.
	ActiveRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshTokenIfActive атомарно отзывает токен, если он ещё не отозван.
	// Возвращает (true, nil), если токен был активен и отозван сейчас;
	// (false, nil) — токен существует, но уже отозван; (false, ErrNotFound) — не найден.
	RevokeRefreshTokenIfActive(ctx context.Context, hash string) (bool, error)
	// DeleteExpiredTokens удаляет все просроченные токены (фоновая очистка).
	DeleteExpiredTokens(ctx context.Context, now time.Time) error
}

// ActionTokenStorage выполняет операции над одноразовыми токенами
// подтверждения email и сброса пароля.
type ActionTokenStorage interface {
	// SaveActionToken сохраняет новый одноразовый токен.
	SaveActionToken(ctx context.Context, token *models.ActionToken) error
	// ConsumeActionToken атомарно гасит токен (used=true), если он принадлежит
	// пользователю, соответствует назначению, не просрочен и ещё не использован.
	// Несоответствие любого условия — ErrNotFound.
	ConsumeActionToken(ctx context.Context, userID uuid.UUID, purpose, hash string, now time.Time) error
	// DeleteExpiredActionTokens удаляет просроченные одноразовые токены.
	DeleteExpiredActionTokens(ctx context.Context, now time.Time) error
}

// ExternalLoginStorage выполняет операции над связями с внешними провайдерами.
type ExternalLoginStorage interface {
	// SaveExternalLogin сохраняет связь (provider, provider_key) -> user.
	SaveExternalLogin(ctx context.Context, login *models.ExternalLogin) error
	// ExternalLoginsByUserID возвращает все внешние связи пользователя.
	ExternalLoginsByUserID(ctx context.Context, userID uuid.UUID) ([]models.ExternalLogin, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	RefreshTokenStorage
	ActionTokenStorage
	ExternalLoginStorage
	Close()
}
