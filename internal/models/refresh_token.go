package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken — данные refresh-токена для управления сессиями.
//
// В БД хранится только SHA-256 хэш исходного значения (RefreshTokenHash);
// plain-значение отдаётся клиенту один раз при выпуске. Запись неизменяема
// после создания, единственная допустимая мутация — Revoked=true.
// Токен валиден, если !Revoked && ExpiresAt > now; проверка выполняется
// при каждом использовании и никогда не кэшируется как факт.
type RefreshToken struct {
	RefreshTokenHash string
	UserID           uuid.UUID
	CreatedAt        time.Time
	ExpiresAt        time.Time
	Revoked          bool
}
