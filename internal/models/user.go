package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись пользователя.
//
// Поля профиля (Username, FirstName, LastName) не участвуют в логике
// аутентификации и используются только как payload для claims access-токена.
// PasswordHash принадлежит credential directory и никогда не покидает
// серверную сторону.
type User struct {
	ID             uuid.UUID
	Email          string
	EmailConfirmed bool
	PasswordHash   string
	Username       string
	FirstName      string
	LastName       string
	// Roles — множество имён ролей пользователя; попадает в claims токена.
	Roles     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName возвращает полное имя для claim "name" (может быть пустым).
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return ""
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}
