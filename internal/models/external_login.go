package models

import (
	"time"

	"github.com/google/uuid"
)

// ExternalLogin — связь локальной учётной записи с внешним провайдером.
type ExternalLogin struct {
	Provider    string
	ProviderKey string
	UserID      uuid.UUID
	CreatedAt   time.Time
}

// ExternalPrincipal — результат успешного рукопожатия с внешним провайдером.
// Само рукопожатие выполняется вне сервиса; сюда попадают только claims,
// которым провайдер уже поставил подпись. Email считается подтверждённым
// провайдером.
type ExternalPrincipal struct {
	// Key — стабильный идентификатор пользователя у провайдера (subject).
	Key       string
	Email     string
	Username  string
	FirstName string
	LastName  string
}
