package models

import (
	"time"

	"github.com/google/uuid"
)

// Назначения одноразовых токенов.
const (
	// ActionConfirmEmail — подтверждение email после регистрации.
	ActionConfirmEmail = "confirm_email"
	// ActionResetPassword — восстановление пароля.
	ActionResetPassword = "reset_password"
)

// ActionToken — одноразовый токен подтверждения email или сброса пароля.
//
// Как и refresh-токен, хранится в виде SHA-256 хэша; plain-значение уходит
// пользователю в ссылке. Токен одноразовый: погашение (Used=true) выполняется
// атомарным условным UPDATE, повторное предъявление невозможно.
type ActionToken struct {
	TokenHash string
	UserID    uuid.UUID
	Purpose   string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}
